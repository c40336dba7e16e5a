package app

import "taipei_hotels/internal/domain"

// recordIndex holds per-feed lookups by id and by canonical name key.
// Duplicate keys overwrite, last record wins.
type recordIndex struct {
	byID   map[string]domain.Localized
	byName map[string]domain.Localized
}

func indexRecords(rows []domain.Localized) recordIndex {
	idx := recordIndex{
		byID:   make(map[string]domain.Localized, len(rows)),
		byName: make(map[string]domain.Localized, len(rows)),
	}
	for _, r := range rows {
		if r.ID != nil && *r.ID != "" {
			idx.byID[*r.ID] = r
		}
		if r.RawName != nil && *r.RawName != "" {
			idx.byName[NameKey(*r.RawName)] = r
		}
	}
	return idx
}

// Merge joins the Chinese and English record collections into one Merged row
// per Chinese record, in Chinese feed order. Matching tries id first, then
// the canonical name key. English records that match nothing are dropped;
// that asymmetry mirrors the upstream feeds, where the Chinese directory is
// the complete one.
func Merge(zh, en []domain.Localized) []domain.Merged {
	enIdx := indexRecords(en)

	merged := make([]domain.Merged, 0, len(zh))
	for _, cn := range zh {
		out := domain.Merged{
			ID:        cn.ID,
			NameZH:    cn.Name,
			AddressZH: cn.Address,
			District:  cn.District,
			Rooms:     cn.Rooms,
			Phone:     cn.Phone,
		}

		var match *domain.Localized
		if cn.ID != nil && *cn.ID != "" {
			if m, ok := enIdx.byID[*cn.ID]; ok {
				match = &m
			}
		}
		if match == nil && cn.RawName != nil && *cn.RawName != "" {
			if m, ok := enIdx.byName[NameKey(*cn.RawName)]; ok {
				match = &m
			}
		}

		if match != nil {
			out.NameEN = match.Name
			out.AddressEN = match.Address
			if isBlank(out.District) && !isBlank(match.District) {
				out.District = match.District
			}
			if out.Rooms == nil && match.Rooms != nil {
				out.Rooms = match.Rooms
			}
			if isBlank(out.Phone) && !isBlank(match.Phone) {
				out.Phone = match.Phone
			}
		}

		merged = append(merged, out)
	}
	return merged
}

func isBlank(p *string) bool { return p == nil || *p == "" }
