package app

import (
	"sort"

	"taipei_hotels/internal/domain"
)

// AggregateDistricts buckets merged records by district label and sums room
// counts. Records with no district land in the UnknownDistrict bucket; a nil
// room count contributes zero but still counts the hotel. Rows come back
// sorted ascending by label so exports are deterministic.
func AggregateDistricts(rows []domain.Merged) []domain.DistrictRow {
	agg := make(map[string]domain.DistrictStats)
	for _, r := range rows {
		label := domain.UnknownDistrict
		if !isBlank(r.District) {
			label = *r.District
		}
		s := agg[label]
		s.Hotels++
		if r.Rooms != nil {
			s.Rooms += *r.Rooms
		}
		agg[label] = s
	}

	out := make([]domain.DistrictRow, 0, len(agg))
	for name, s := range agg {
		out = append(out, domain.DistrictRow{Name: name, Hotels: s.Hotels, Rooms: s.Rooms})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
