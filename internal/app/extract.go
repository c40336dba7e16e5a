package app

import (
	"encoding/json"
	"errors"
	"regexp"
)

// ErrNoRecords means no list-shaped payload could be located in a feed body.
var ErrNoRecords = errors.New("no record list found in payload")

// Envelope keys tried, in priority order, when the payload is a JSON object.
var envelopeKeys = []string{"data", "result", "items"}

var (
	arrayOfObjectsRe = regexp.MustCompile(`(?s)(\[\s*\{.*?\}\s*\])`)
	dataFieldRe      = regexp.MustCompile(`(?s)"data"\s*:\s*(\[\s*\{.*?\}\s*\])`)
)

// ExtractRecords recovers an ordered record list from a raw feed body.
// The body is usually JSON but may wrap the list in an envelope object or in
// non-JSON text (a JS assignment, an HTML page), so after strict parsing it
// falls back to scanning for a bracketed array-of-objects substring.
// Elements that are not objects come back as nil maps; Normalize tolerates
// them.
func ExtractRecords(payload string) ([]map[string]any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(payload), &parsed); err == nil {
		switch v := parsed.(type) {
		case []any:
			return toRecords(v), nil
		case map[string]any:
			for _, k := range envelopeKeys {
				if list, ok := v[k].([]any); ok {
					return toRecords(list), nil
				}
			}
		}
	}

	if m := arrayOfObjectsRe.FindStringSubmatch(payload); m != nil {
		var list []any
		if err := json.Unmarshal([]byte(m[1]), &list); err == nil {
			return toRecords(list), nil
		}
	}

	if m := dataFieldRe.FindStringSubmatch(payload); m != nil {
		var list []any
		if err := json.Unmarshal([]byte(m[1]), &list); err == nil {
			return toRecords(list), nil
		}
	}

	return nil, ErrNoRecords
}

func toRecords(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, it := range list {
		rec, _ := it.(map[string]any)
		out = append(out, rec)
	}
	return out
}
