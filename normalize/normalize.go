// Package normalize canonicalizes free text so queries, entity fields,
// and cached search terms compare symmetrically.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize reduces input to its canonical comparable form: diacritics
// stripped, lowercased, anything outside [a-z0-9] replaced with a space,
// whitespace collapsed, trimmed. It is total and idempotent; it never fails.
func Normalize(input string) string {
	stripped, _, err := transform.String(stripMarks, input)
	if err != nil {
		stripped = input
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
