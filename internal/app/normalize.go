package app

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"taipei_hotels/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Per-field, per-language candidate key names, tried in order. The lists mix
// exact historical field names, camelCase, snake_case and natural-language
// phrases because upstream naming has never been consistent. Order matters:
// the first alias present with a non-empty value wins.

var idAliases = []string{"_id", "id", "Id", "ID", "serial_no", "serialNo", "HotelID", "hotel_id"}

var nameAliases = map[string][]string{
	domain.LangZH: {
		"旅宿名稱",
		"name", "Name", "hotel_name", "HotelName", "Hotel_Name",
		"旅館名稱", "中文名稱", "名稱",
		"chs_name", "name_zh", "nameZh", "nameCn", "nameCN", "name_ch",
		"ChineseName",
	},
	domain.LangEN: {
		"hotel name",
		"EnglishName", "name", "Name", "HotelName", "hotel_name",
	},
}

var addressAliases = map[string][]string{
	domain.LangZH: {
		"地址",
		"address", "Address", "addr", "Addr", "HotelAddress",
		"中文地址", "chs_address", "address_zh", "address_ch",
	},
	domain.LangEN: {
		"address",
		"EnglishAddress", "HotelAddress", "addr", "Addr",
	},
}

var phoneAliases = map[string][]string{
	domain.LangZH: {
		"電話或手機號碼",
		"phone", "Phone", "TEL", "Tel", "telephone", "Telephone", "連絡電話", "聯絡電話",
	},
	domain.LangEN: {
		"tel",
		"telephone", "Telephone", "phone", "Phone", "TEL", "Tel",
	},
}

var roomsAliases = map[string][]string{
	domain.LangZH: {
		"房間數",
		"rooms", "Rooms", "roomCount", "room_count",
		"總房間數", "客房數", "total_rooms", "TotalRooms", "TotalNumberOfRooms",
		"rooms_total", "room_total", "RoomNumber", "RoomCount", "RoomTotal",
	},
	domain.LangEN: {
		"the total number of rooms",
		"total number of rooms", "TotalRooms", "total_rooms",
		"rooms", "Rooms", "roomCount", "room_count",
	},
}

var districtAliases = []string{"district", "District", "行政區", "鄉鎮市區", "zone", "area"}

// The twelve Taipei administrative districts, used to infer a district from
// Chinese address text when no alias resolves.
var taipeiDistrictRe = regexp.MustCompile(
	"(中正區|大同區|中山區|松山區|大安區|萬華區|信義區|士林區|北投區|內湖區|南港區|文山區)")

var nonDigitRe = regexp.MustCompile(`[^\d]`)

/********** tiny helpers **********/

// lowerKeyIndex maps each key's lowercase form back to the original key, so
// alias lookup is case-insensitive regardless of upstream casing.
func lowerKeyIndex(rec map[string]any) map[string]string {
	idx := make(map[string]string, len(rec))
	for k := range rec {
		idx[strings.ToLower(k)] = k
	}
	return idx
}

// firstPresent returns the value of the first alias that exists in the record
// with a non-nil, non-empty-string value.
func firstPresent(rec map[string]any, idx map[string]string, aliases []string) any {
	for _, a := range aliases {
		k, ok := idx[strings.ToLower(a)]
		if !ok {
			continue
		}
		v := rec[k]
		if v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v
	}
	return nil
}

func trimmedStr(v any) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(toString(v))
	return &s
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers arrive as float64; render 135.0 as "135".
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// coerceRooms turns a raw room-count value into a non-negative int.
// Numbers are truncated; text has every non-digit stripped first, so
// "120 間" becomes 120. Signs and decimals are discarded on purpose: room
// counts are never negative or fractional, and the lossiness is accepted.
func coerceRooms(v any) *int {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		n := int(t)
		return &n
	case int:
		n := t
		return &n
	}
	digits := nonDigitRe.ReplaceAllString(toString(v), "")
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

/********** record normalizer **********/

// Normalize resolves one raw feed record into a Localized record for lang.
// It never fails: a nil or alias-less record simply yields nil fields.
func Normalize(rec map[string]any, lang string) domain.Localized {
	out := domain.Localized{Lang: lang}
	if rec == nil {
		return out
	}
	idx := lowerKeyIndex(rec)

	out.ID = trimmedStr(firstPresent(rec, idx, idAliases))
	out.Name = trimmedStr(firstPresent(rec, idx, nameAliases[lang]))
	out.Address = trimmedStr(firstPresent(rec, idx, addressAliases[lang]))
	out.Phone = trimmedStr(firstPresent(rec, idx, phoneAliases[lang]))
	out.Rooms = coerceRooms(firstPresent(rec, idx, roomsAliases[lang]))

	out.District = trimmedStr(firstPresent(rec, idx, districtAliases))
	if out.District == nil && lang == domain.LangZH && out.Address != nil {
		// First district name found scanning the address left to right.
		if d := taipeiDistrictRe.FindString(*out.Address); d != "" {
			out.District = &d
		}
	}

	out.RawName = out.Name
	return out
}

// NormalizeAll maps Normalize over a raw record list, preserving order.
func NormalizeAll(recs []map[string]any, lang string) []domain.Localized {
	out := make([]domain.Localized, 0, len(recs))
	for _, r := range recs {
		out = append(out, Normalize(r, lang))
	}
	return out
}
