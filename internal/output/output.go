// Package output serializes question lists and run reports to disk.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of a list.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension. Anything that is
// not .yaml or .yml is written as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// EncodeList writes items as an ordered list with two-space indentation.
// Non-ASCII text is written literally and a nil slice encodes as an empty
// list.
func EncodeList(w io.Writer, items []string, format Format) error {
	if items == nil {
		items = []string{}
	}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		return encodeJSON(w, items)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteList encodes items in the format implied by path and writes them
// there, creating parent directories. An existing file is overwritten.
func WriteList(path string, items []string) error {
	var buf bytes.Buffer
	if err := EncodeList(&buf, items, FormatForPath(path)); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

// WriteJSON writes v as indented JSON to path, creating parent directories.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, v); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
