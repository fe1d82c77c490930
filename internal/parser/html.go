package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/questgest/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &doctree.Document{
		Title: trimExt(filename, ".html", ".htm"),
	}
	if title := findTitle(root); title != "" {
		doc.Title = title
	}

	if body := findBody(root); body != nil {
		walkHTML(doc, body)
	} else {
		walkHTML(doc, root)
	}
	return doc, nil
}

func walkHTML(doc *doctree.Document, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		// Loose text in containers such as <div>Seção 1<br>...</div>.
		doc.Add(doctree.KindParagraph, strings.TrimSpace(n.Data), 0)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "nav", "footer", "header", "head", "template":
			return
		case "h1", "h2", "h3", "h4", "h5", "h6":
			doc.Add(doctree.KindHeading, textContent(n), 0)
			return
		case "p", "td", "th", "blockquote", "pre", "dt", "dd":
			doc.Add(doctree.KindParagraph, textContent(n), 0)
			return
		case "ol":
			// Browsers number <ol> items; the numbers are not in the text.
			ordinal := listStart(n)
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "li" {
					doc.Add(doctree.KindListItem, fmt.Sprintf("%d. %s", ordinal, textContent(c)), 0)
					ordinal++
				}
			}
			return
		case "li":
			doc.Add(doctree.KindListItem, textContent(n), 0)
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(doc, c)
	}
}

func listStart(n *html.Node) int {
	for _, a := range n.Attr {
		if a.Key == "start" {
			if v, err := strconv.Atoi(strings.TrimSpace(a.Val)); err == nil {
				return v
			}
		}
	}
	return 1
}

// textContent returns the text under n with <br> rendered as a newline.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			buf.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
