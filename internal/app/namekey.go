package app

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Punctuation ignored when matching names across feeds, in both
	// half-width and full-width forms.
	namePunctRe = regexp.MustCompile(`[．.\-–—_•·,，、!！()?？（）\[\]【】]`)
)

// NameKey reduces a display name to a matching key: full-width spaces become
// regular spaces, all whitespace is then removed entirely, the result is
// lowercased, and a fixed punctuation set is stripped. Two names differing
// only in spacing, case or that punctuation canonicalize identically.
// NameKey is idempotent; a nil-ish empty input yields "".
func NameKey(name string) string {
	s := strings.ReplaceAll(name, "　", " ")
	s = whitespaceRe.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	return namePunctRe.ReplaceAllString(s, "")
}
