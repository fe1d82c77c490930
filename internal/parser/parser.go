package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/questgest/internal/doctree"
)

// ErrUnsupportedExtension is returned by ForFile for unknown file types.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// Parser converts raw document bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// Options tunes the parsers ForFile hands out.
type Options struct {
	// PDFFallbackPdftotext retries PDFs with the pdftotext binary when the Go
	// reader fails or finds no text.
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions questionnaires can be read from.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func trimExt(filename string, exts ...string) string {
	for _, ext := range exts {
		filename = strings.TrimSuffix(filename, ext)
	}
	return filename
}
