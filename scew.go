// Package scew builds XML document trees from a stream of tokenizer events
// and serializes them back to canonical text. It consumes encoding/xml as
// the tokenizer and keeps parent/child linkage and content accumulation
// correct across arbitrarily chunked input.
package scew

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/felipeprov/scew/errors"
)

// Parse reads a single complete document from r with default options.
func Parse(r io.Reader) (*Document, error) {
	return NewParser().Parse(r)
}

// ParseString parses a document held in a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseBytes parses a document held in a byte slice.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// ParseFile parses the document in the named file.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errors.Error{Code: errors.CodeIO, Err: fmt.Errorf("open %s: %w", path, err)}
	}
	defer f.Close()

	doc, err := NewParser().Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// DocumentString serializes doc to a string with default printing options.
func DocumentString(doc *Document) (string, error) {
	var sb strings.Builder
	if err := NewPrinter(&sb).Print(doc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ElementString serializes a lone element subtree to a string with default
// printing options.
func ElementString(element *Element) (string, error) {
	var sb strings.Builder
	if err := NewPrinter(&sb).PrintElement(element, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}
