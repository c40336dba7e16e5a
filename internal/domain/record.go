package domain

// Language tags for the two upstream feeds.
const (
	LangZH = "zh"
	LangEN = "en"
)

// Localized is one hotel record normalized from a single-language feed.
// Every field except Lang is optional; upstream rows can be missing anything.
type Localized struct {
	ID       *string
	Name     *string
	Address  *string
	District *string
	Rooms    *int
	Phone    *string
	Lang     string // LangZH or LangEN

	// RawName is the extracted name before any decoration. It exists only
	// for cross-language matching and is never emitted.
	RawName *string
}

// Merged unifies a Chinese record with at most one matched English record.
// The Chinese feed is authoritative: one Merged per Chinese record, in feed
// order. English records with no Chinese counterpart are dropped.
type Merged struct {
	ID        *string
	NameZH    *string
	NameEN    *string
	AddressZH *string
	AddressEN *string
	District  *string
	Rooms     *int
	Phone     *string
}

// UnknownDistrict is the bucket label for records with no resolvable district.
const UnknownDistrict = "未知/未填"

// DistrictStats aggregates merged records sharing a district label.
type DistrictStats struct {
	Hotels int
	Rooms  int
}

// Article is one forum post scraped from a board index.
type Article struct {
	Title     string
	Likes     int
	Published string
}
