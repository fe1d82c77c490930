package doctree

import "strings"

// BlockKind classifies a block of document text.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindListItem
)

// Document is a loaded source document.
type Document struct {
	Title  string  // From metadata or filename
	Blocks []Block // Text blocks in reading order
}

// Block is one run of text from the source.
type Block struct {
	Kind BlockKind
	Text string
	Page int // Source page (0 if N/A)
}

// Text flattens the document to the plain text the extractor scans: block
// texts in order, one block per line group.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, b := range d.Blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(b.Text)
	}
	return sb.String()
}

// Add appends a block, skipping text that is blank.
func (d *Document) Add(kind BlockKind, text string, page int) {
	if strings.TrimSpace(text) == "" {
		return
	}
	d.Blocks = append(d.Blocks, Block{Kind: kind, Text: text, Page: page})
}
