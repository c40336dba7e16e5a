package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"taipei_hotels/internal/adapters/observability"
	"taipei_hotels/internal/domain"
)

var hotelsHeader = []string{"ChineseName", "EnglishName", "ChineseAddress", "EnglishAddress", "Phone", "RoomCount"}
var districtsHeader = []string{"DistrictName", "HotelCount", "RoomCount"}

// DirectoryService runs the bilingual hotel-directory pipeline end to end:
// fetch both feeds, extract record lists, normalize per language, merge,
// aggregate by district, and write the two CSV reports.
type DirectoryService struct {
	fetch  domain.FeedFetcher
	writer domain.ReportWriter
	cache  domain.Cache // optional feed-text cache

	zhURL, enURL            string
	hotelsOut, districtsOut string
	cacheTTLSec             int
}

type DirectoryConfig struct {
	FeedZHURL    string
	FeedENURL    string
	HotelsOut    string
	DistrictsOut string
	CacheTTLSec  int
}

func NewDirectoryService(f domain.FeedFetcher, w domain.ReportWriter, cache domain.Cache, cfg DirectoryConfig) *DirectoryService {
	return &DirectoryService{
		fetch:        f,
		writer:       w,
		cache:        cache,
		zhURL:        cfg.FeedZHURL,
		enURL:        cfg.FeedENURL,
		hotelsOut:    cfg.HotelsOut,
		districtsOut: cfg.DistrictsOut,
		cacheTTLSec:  cfg.CacheTTLSec,
	}
}

// Run executes one pipeline pass. Fetch and extraction failures abort the
// run; from normalization on, nothing fails — gaps become empty cells and are
// reported in the final summary.
func (s *DirectoryService) Run(ctx context.Context) (domain.Result, error) {
	log.Info().Str("zh", s.zhURL).Str("en", s.enURL).Msg("fetching feeds")
	zhRaw, err := s.fetchFeed(ctx, s.zhURL)
	if err != nil {
		return domain.Result{}, fmt.Errorf("fetch zh feed: %w", err)
	}
	enRaw, err := s.fetchFeed(ctx, s.enURL)
	if err != nil {
		return domain.Result{}, fmt.Errorf("fetch en feed: %w", err)
	}
	log.Info().Msg("feeds fetched")

	zhRecs, err := ExtractRecords(zhRaw)
	if err != nil {
		return domain.Result{}, fmt.Errorf("extract zh records: %w", err)
	}
	enRecs, err := ExtractRecords(enRaw)
	if err != nil {
		return domain.Result{}, fmt.Errorf("extract en records: %w", err)
	}
	log.Info().Int("zh", len(zhRecs)).Int("en", len(enRecs)).Msg("records extracted")
	observability.ObserveRecords("extracted", domain.LangZH, len(zhRecs))
	observability.ObserveRecords("extracted", domain.LangEN, len(enRecs))

	zhNorm := NormalizeAll(zhRecs, domain.LangZH)
	enNorm := NormalizeAll(enRecs, domain.LangEN)
	log.Info().Msg("records normalized")

	merged := Merge(zhNorm, enNorm)
	log.Info().Int("merged", len(merged)).Int("en_unmatched", len(enNorm)-matchedEN(merged)).Msg("feeds merged")

	if err := s.writer.WriteReport(s.hotelsOut, hotelsHeader, hotelRows(merged)); err != nil {
		return domain.Result{}, fmt.Errorf("write %s: %w", s.hotelsOut, err)
	}
	log.Info().Str("path", s.hotelsOut).Msg("hotel report written")

	districts := AggregateDistricts(merged)
	if err := s.writer.WriteReport(s.districtsOut, districtsHeader, districtRows(districts)); err != nil {
		return domain.Result{}, fmt.Errorf("write %s: %w", s.districtsOut, err)
	}
	log.Info().Str("path", s.districtsOut).Int("buckets", len(districts)).Msg("district report written")

	s.logSummary(merged)
	return domain.Result{Hotels: merged, Districts: districts}, nil
}

// fetchFeed serves the feed body from the cache when one is configured,
// falling back to a live fetch and repopulating the cache.
func (s *DirectoryService) fetchFeed(ctx context.Context, url string) (string, error) {
	key := "feed:" + url
	if s.cache != nil {
		var body string
		if ok, _ := s.cache.Get(ctx, key, &body); ok {
			return body, nil
		}
	}
	body, err := s.fetch.FetchText(ctx, url)
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, body, s.cacheTTLSec)
	}
	return body, nil
}

func hotelRows(merged []domain.Merged) [][]string {
	rows := make([][]string, 0, len(merged))
	for _, m := range merged {
		rooms := ""
		if m.Rooms != nil {
			rooms = strconv.Itoa(*m.Rooms)
		}
		rows = append(rows, []string{
			orEmpty(m.NameZH),
			orEmpty(m.NameEN),
			orEmpty(m.AddressZH),
			orEmpty(m.AddressEN),
			orEmpty(m.Phone),
			rooms,
		})
	}
	return rows
}

func districtRows(districts []domain.DistrictRow) [][]string {
	rows := make([][]string, 0, len(districts))
	for _, d := range districts {
		rows = append(rows, []string{d.Name, strconv.Itoa(d.Hotels), strconv.Itoa(d.Rooms)})
	}
	return rows
}

// logSummary reports how many merged records are missing each key field.
// Diagnostic only; gaps are expected and never fail the run.
func (s *DirectoryService) logSummary(merged []domain.Merged) {
	var noZHName, noENName, noRooms int
	for _, m := range merged {
		if isBlank(m.NameZH) {
			noZHName++
		}
		if isBlank(m.NameEN) {
			noENName++
		}
		if m.Rooms == nil {
			noRooms++
		}
	}
	log.Info().
		Int("missing_zh_name", noZHName).
		Int("missing_en_name", noENName).
		Int("missing_rooms", noRooms).
		Msg("pipeline summary")
}

func matchedEN(merged []domain.Merged) int {
	n := 0
	for _, m := range merged {
		if !isBlank(m.NameEN) || !isBlank(m.AddressEN) {
			n++
		}
	}
	return n
}

func orEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
