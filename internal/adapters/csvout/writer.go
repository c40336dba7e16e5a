package csvout

import (
	"encoding/csv"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Writer persists report rows as comma-separated UTF-8 with a byte-order
// mark, which is what spreadsheet tools need to open Chinese text correctly.
type Writer struct{}

func New() *Writer { return &Writer{} }

func (w *Writer) WriteReport(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := transform.NewWriter(f, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(enc)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}
