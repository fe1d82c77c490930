package parser

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dgallion1/questgest/internal/doctree"
)

// ErrInvalidUTF8 is returned when a text file is not UTF-8 encoded.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// TextParser handles plain text files. The whole file becomes one block so
// its line structure reaches the extractor untouched.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: %w", filename, ErrInvalidUTF8)
	}

	doc := &doctree.Document{
		Title: trimExt(filename, ".txt"),
	}
	doc.Add(doctree.KindParagraph, string(data), 0)
	return doc, nil
}
