package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/questgest/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	root := goldmark.New().Parser().Parse(text.NewReader(src))

	doc := &doctree.Document{
		Title: trimExt(filename, ".md", ".markdown"),
	}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		addMarkdownBlock(doc, n, src)
	}
	return doc, nil
}

func addMarkdownBlock(doc *doctree.Document, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading:
		doc.Add(doctree.KindHeading, inlineText(node, src), 0)
	case *ast.List:
		// The renderer would number ordered items; the ordinal is not part of
		// the item text in the AST, so put it back.
		ordinal := node.Start
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			body := blockText(item, src)
			if node.IsOrdered() {
				body = fmt.Sprintf("%d. %s", ordinal, body)
				ordinal++
			}
			doc.Add(doctree.KindListItem, body, 0)
		}
	case *ast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			addMarkdownBlock(doc, c, src)
		}
	case *ast.ThematicBreak, *ast.HTMLBlock:
		// No question text.
	default:
		doc.Add(doctree.KindParagraph, blockText(n, src), 0)
	}
}

// blockText renders a block node to plain text, one line per source line.
func blockText(n ast.Node, src []byte) string {
	switch n.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		return inlineText(n, src)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return linesText(n, src)
	}

	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); strings.TrimSpace(t) != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// inlineText concatenates the inline text under n, keeping line breaks.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

func linesText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}
