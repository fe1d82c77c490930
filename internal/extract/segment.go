package extract

import (
	"strconv"
	"strings"
)

// Markers that delimit the questionnaire regions.
const (
	SectionMarker  = "Seção"
	ScaleMarker    = "Classificação:"
	ExternalMarker = "As perguntas abaixo"
	ExternalLead   = "Em relação a"
)

// Segment is the raw text of one numbered self-assessment section.
type Segment struct {
	Number int
	Scale  string // Remainder of the "Classificação:" line, unnormalized.
	Body   string // Everything after the scale line up to the segment end.
}

// Segments splits text into the bodies of sections 1..count. A section body
// starts on the line after its "Classificação:" marker and ends at the
// earliest of the next section header, the external-assessment marker, or
// the end of text.
func Segments(text string, count int) []Segment {
	var segs []Segment
	for n := 1; n <= count; n++ {
		seg, ok := findSegment(text, n)
		if !ok {
			// A section that is absent from the document contributes nothing.
			continue
		}
		segs = append(segs, seg)
	}
	return segs
}

func findSegment(text string, n int) (Segment, bool) {
	header := sectionHeader(n)
	head := strings.Index(text, header)
	if head < 0 {
		return Segment{}, false
	}
	scale := indexFrom(text, ScaleMarker, head+len(header))
	if scale < 0 {
		return Segment{}, false
	}
	scaleEnd := scale + len(ScaleMarker)
	nl := indexFrom(text, "\n", scaleEnd)
	if nl < 0 {
		return Segment{}, false
	}

	start := nl + 1
	end := len(text)
	for _, marker := range []string{sectionHeader(n + 1), ExternalMarker} {
		if i := indexFrom(text, marker, start); i >= 0 && i < end {
			end = i
		}
	}

	return Segment{
		Number: n,
		Scale:  text[scaleEnd:nl],
		Body:   text[start:end],
	}, true
}

// External returns the external-assessment region: everything after the
// first ":\n" that follows "Em relação a", which itself follows
// "As perguntas abaixo". ok is false when any of the three is missing.
func External(text string) (body string, ok bool) {
	marker := strings.Index(text, ExternalMarker)
	if marker < 0 {
		return "", false
	}
	lead := indexFrom(text, ExternalLead, marker+len(ExternalMarker))
	if lead < 0 {
		return "", false
	}
	colon := indexFrom(text, ":\n", lead+len(ExternalLead))
	if colon < 0 {
		return "", false
	}
	return text[colon+2:], true
}

func sectionHeader(n int) string {
	return SectionMarker + " " + strconv.Itoa(n)
}

// indexFrom is strings.Index starting at byte offset from.
func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], substr)
	if i < 0 {
		return -1
	}
	return from + i
}
