package scew

import (
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

type intOption struct {
	value int
	set   bool
}

func (o intOption) resolved() int {
	if !o.set {
		return 0
	}
	return o.value
}

type boolOption struct {
	value bool
	set   bool
}

func (o boolOption) resolvedOr(fallback bool) bool {
	if !o.set {
		return fallback
	}
	return o.value
}

// CharsetReader converts input in a named character set into UTF-8 for the
// tokenizer. It matches the hook of encoding/xml.Decoder.
type CharsetReader func(label string, input io.Reader) (io.Reader, error)

type charsetReaderOption struct {
	value CharsetReader
	set   bool
}

// ParserOptions configures tree building and tokenizer mediation.
type ParserOptions struct {
	trimWhitespace boolOption
	charsetReader  charsetReaderOption
	maxDepth       intOption
	maxAttrs       intOption
	maxContentSize intOption
}

// PrinterOptions configures serializer output.
type PrinterOptions struct {
	indented     boolOption
	indentSpaces intOption
	encoding     encoding.Encoding
}

type resolvedParserOptions struct {
	trimWhitespace bool
	charsetReader  CharsetReader
	limits         buildLimits
}

type resolvedPrinterOptions struct {
	indented     bool
	indentSpaces int
	encoding     encoding.Encoding
}

// NewParserOptions returns a default, valid parser options value.
func NewParserOptions() ParserOptions {
	return ParserOptions{}
}

// NewPrinterOptions returns a default, valid printer options value.
func NewPrinterOptions() PrinterOptions {
	return PrinterOptions{}
}

// Validate validates parser options values.
func (o ParserOptions) Validate() error {
	_, err := o.withDefaults()
	return err
}

// Validate validates printer options values.
func (o PrinterOptions) Validate() error {
	_, err := o.withDefaults()
	return err
}

// WithTrimWhitespace controls trimming of surrounding white space from
// element contents (default true).
func (o ParserOptions) WithTrimWhitespace(value bool) ParserOptions {
	o.trimWhitespace = boolOption{value: value, set: true}
	return o
}

// WithCharsetReader sets the converter used for inputs declaring a non-UTF-8
// encoding. A nil value disables conversion, so such inputs fail
// tokenization.
func (o ParserOptions) WithCharsetReader(value CharsetReader) ParserOptions {
	o.charsetReader = charsetReaderOption{value: value, set: true}
	return o
}

// WithMaxDepth sets the element nesting limit (0 uses default).
func (o ParserOptions) WithMaxDepth(value int) ParserOptions {
	o.maxDepth = intOption{value: value, set: true}
	return o
}

// WithMaxAttrs sets the per-element attribute limit (0 uses default).
func (o ParserOptions) WithMaxAttrs(value int) ParserOptions {
	o.maxAttrs = intOption{value: value, set: true}
	return o
}

// WithMaxContentSize sets the total content bytes limit (0 uses default).
func (o ParserOptions) WithMaxContentSize(value int) ParserOptions {
	o.maxContentSize = intOption{value: value, set: true}
	return o
}

// WithIndented controls pretty-printing (default true). When off, output is
// a single line with no indentation or line breaks.
func (o PrinterOptions) WithIndented(value bool) PrinterOptions {
	o.indented = boolOption{value: value, set: true}
	return o
}

// WithIndentSpaces sets the spaces per nesting level when pretty-printing
// (default 3, 0 keeps line breaks without indentation).
func (o PrinterOptions) WithIndentSpaces(value int) PrinterOptions {
	o.indentSpaces = intOption{value: value, set: true}
	return o
}

// WithEncoding transcodes serializer output into the given character
// encoding. Keeping the document's declared encoding label consistent is the
// caller's responsibility.
func (o PrinterOptions) WithEncoding(value encoding.Encoding) PrinterOptions {
	o.encoding = value
	return o
}

func (o ParserOptions) withDefaults() (resolvedParserOptions, error) {
	limits, err := resolveBuildLimits(
		o.maxDepth.resolved(),
		o.maxAttrs.resolved(),
		o.maxContentSize.resolved(),
	)
	if err != nil {
		return resolvedParserOptions{}, fmt.Errorf("build limits: %w", err)
	}
	reader := CharsetReader(charset.NewReaderLabel)
	if o.charsetReader.set {
		reader = o.charsetReader.value
	}
	return resolvedParserOptions{
		trimWhitespace: o.trimWhitespace.resolvedOr(true),
		charsetReader:  reader,
		limits:         limits,
	}, nil
}

func (o PrinterOptions) withDefaults() (resolvedPrinterOptions, error) {
	spaces := defaultIndentSpaces
	if o.indentSpaces.set {
		spaces = o.indentSpaces.value
	}
	if spaces < 0 {
		return resolvedPrinterOptions{}, fmt.Errorf("indent spaces must be >= 0")
	}
	return resolvedPrinterOptions{
		indented:     o.indented.resolvedOr(true),
		indentSpaces: spaces,
		encoding:     o.encoding,
	}, nil
}
