package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Prepare puts raw document text into the form the markers are matched
// against: no byte order mark, LF line endings, NFC composition. Editors
// that save "Seção" decomposed (e + combining cedilla) would otherwise miss
// every section.
func Prepare(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}
