// Package culture resolves free-text crop names to icons, categories and colors.
//
// Resolution prefers curated records loaded from a RecordStore and falls back
// to a built-in keyword table. Both are searched with the same accent- and
// case-insensitive key produced by Normalize.
package culture

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented characters and drops the combining marks.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize returns the lookup key for a crop name: lowercased, accents
// stripped and surrounding whitespace trimmed. Normalize is idempotent.
func Normalize(name string) string {
	key, _, err := transform.String(stripMarks, strings.ToLower(name))
	if err != nil {
		// transform only fails on invalid input states; fall back to the
		// lowercase form so lookups still behave.
		key = strings.ToLower(name)
	}
	return strings.TrimSpace(key)
}
