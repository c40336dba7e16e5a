package domain

import "context"

// FeedFetcher retrieves a decoded text payload from an upstream feed.
// A failed fetch is fatal for the run; retry policy belongs to the adapter.
type FeedFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// ReportWriter persists ordered rows as a flat report file.
type ReportWriter interface {
	WriteReport(path string, header []string, rows [][]string) error
}

// Cache stores fetched feed payloads between runs.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Result is one pipeline run's in-memory output, kept for the read API.
type Result struct {
	Hotels    []Merged
	Districts []DistrictRow
}

// DistrictRow is one aggregate bucket in export order.
type DistrictRow struct {
	Name   string
	Hotels int
	Rooms  int
}
