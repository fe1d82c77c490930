package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	itemStart    = regexp.MustCompile(`[0-9]+\.`)
	itemBoundary = regexp.MustCompile(`\n[0-9]+\.`)
)

// Items returns the numbered entries of body in document order, each passed
// through Normalize. An entry runs from "<digits>." to the next line that
// begins with "<digits>." or to the end of body. Numbering is read flat: a
// line starting "1.1" opens a new entry whose text is "1 ...". Entries that
// normalize to the empty string are dropped.
func Items(body string) []string {
	items := []string{}
	for _, raw := range rawItems(body) {
		if item := Normalize(raw); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func rawItems(body string) []string {
	// A single trailing newline never belongs to the last entry.
	end := len(body)
	if strings.HasSuffix(body, "\n") {
		end--
	}

	var raws []string
	pos := 0
	for pos < len(body) {
		loc := itemStart.FindStringIndex(body[pos:])
		if loc == nil {
			break
		}
		textStart := skipSpace(body, pos+loc[1])
		if textStart >= len(body) {
			break
		}

		// Entries hold at least one character, so the boundary search
		// starts one byte past textStart.
		stop := end
		if b := itemBoundary.FindStringIndex(body[textStart+1:]); b != nil && textStart+1+b[0] < stop {
			stop = textStart + 1 + b[0]
		}
		raws = append(raws, body[textStart:stop])
		pos = stop
	}
	return raws
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// Normalize collapses every run of whitespace to a single space and trims
// both ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
