package scew

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/transform"

	"github.com/felipeprov/scew/errors"
)

const defaultIndentSpaces = 3

// Printer serializes documents and elements as XML text.
//
// Output is canonical and round-trippable: the declaration first, elements
// indented by nesting depth, childless contentless elements in self-closing
// form. Attribute values and contents are written verbatim; this layer does
// not escape. One instance must not be used concurrently.
type Printer struct {
	opts resolvedPrinterOptions
	w    io.Writer
}

// NewPrinter returns a printer writing to w with default options.
func NewPrinter(w io.Writer) *Printer {
	resolved, _ := NewPrinterOptions().withDefaults()
	return &Printer{opts: resolved, w: w}
}

// NewPrinterWithOptions returns a printer writing to w with explicit
// configuration.
func NewPrinterWithOptions(w io.Writer, opts PrinterOptions) (*Printer, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("printer options: %w", err)
	}
	return &Printer{opts: resolved, w: w}, nil
}

// Print serializes the whole document: declaration, then the root element
// recursively.
func (p *Printer) Print(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("document must not be nil")
	}
	if doc.Root() == nil {
		return fmt.Errorf("document has no root element")
	}
	sink, closeSink := p.sink()
	w := &stickyWriter{w: sink}
	p.printDecl(w, doc)
	p.printElement(w, doc.Root(), 0)
	return p.finish(w, closeSink)
}

// PrintElement serializes a single element subtree, indented as if it were
// nested depth levels deep.
func (p *Printer) PrintElement(element *Element, depth int) error {
	if element == nil {
		return fmt.Errorf("element must not be nil")
	}
	if depth < 0 {
		return fmt.Errorf("depth must be >= 0")
	}
	sink, closeSink := p.sink()
	w := &stickyWriter{w: sink}
	p.printElement(w, element, depth)
	return p.finish(w, closeSink)
}

// PrintChildren serializes the child elements of element, each one level
// deeper than the given depth. The element's own tags are not written.
func (p *Printer) PrintChildren(element *Element, depth int) error {
	if element == nil {
		return fmt.Errorf("element must not be nil")
	}
	if depth < 0 {
		return fmt.Errorf("depth must be >= 0")
	}
	sink, closeSink := p.sink()
	w := &stickyWriter{w: sink}
	p.printChildren(w, element, depth)
	return p.finish(w, closeSink)
}

// PrintAttributes serializes all attributes of element in insertion order,
// each in its in-tag form with the leading space.
func (p *Printer) PrintAttributes(element *Element) error {
	if element == nil {
		return fmt.Errorf("element must not be nil")
	}
	sink, closeSink := p.sink()
	w := &stickyWriter{w: sink}
	printAttributes(w, element)
	return p.finish(w, closeSink)
}

// PrintAttribute serializes a single attribute in its in-tag form, leading
// space included.
func (p *Printer) PrintAttribute(attribute Attribute) error {
	sink, closeSink := p.sink()
	w := &stickyWriter{w: sink}
	printAttribute(w, attribute)
	return p.finish(w, closeSink)
}

// sink returns the writer chain for one print call. With an output encoding
// configured the chain ends in a transforming writer that must be closed to
// flush it.
func (p *Printer) sink() (io.Writer, func() error) {
	if p.opts.encoding == nil {
		return p.w, nil
	}
	tw := transform.NewWriter(p.w, p.opts.encoding.NewEncoder())
	return tw, tw.Close
}

func (p *Printer) finish(w *stickyWriter, closeSink func() error) error {
	if w.err != nil {
		if closeSink != nil {
			closeSink()
		}
		return &errors.Error{Code: errors.CodeIO, Err: w.err}
	}
	if closeSink != nil {
		if err := closeSink(); err != nil {
			return &errors.Error{Code: errors.CodeIO, Err: err}
		}
	}
	return nil
}

func (p *Printer) printDecl(w *stickyWriter, doc *Document) {
	w.writeString(`<?xml version="`)
	w.writeString(doc.Version())
	w.writeString(`"`)
	if doc.Encoding() != "" {
		w.writeString(` encoding="`)
		w.writeString(doc.Encoding())
		w.writeString(`"`)
	}
	if doc.Standalone() != StandaloneUnknown {
		w.writeString(` standalone="`)
		w.writeString(doc.Standalone().String())
		w.writeString(`"`)
	}
	w.writeString("?>")
	p.lineBreak(w)
}

func (p *Printer) printElement(w *stickyWriter, element *Element, depth int) {
	p.indent(w, depth)
	w.writeString("<")
	w.writeString(element.name)
	printAttributes(w, element)
	if !element.HasContents() && len(element.children) == 0 {
		w.writeString("/>")
		p.lineBreak(w)
		return
	}

	w.writeString(">")
	if !element.HasContents() {
		p.lineBreak(w)
	}
	p.printChildren(w, element, depth)
	if element.HasContents() {
		w.write(element.contents)
	} else {
		p.indent(w, depth)
	}
	w.writeString("</")
	w.writeString(element.name)
	w.writeString(">")
	p.lineBreak(w)
}

func (p *Printer) printChildren(w *stickyWriter, element *Element, depth int) {
	for _, child := range element.children {
		p.printElement(w, child, depth+1)
	}
}

func printAttributes(w *stickyWriter, element *Element) {
	for _, attribute := range element.attributes {
		printAttribute(w, attribute)
	}
}

func printAttribute(w *stickyWriter, attribute Attribute) {
	w.writeString(" ")
	w.writeString(attribute.name)
	w.writeString(`="`)
	w.writeString(attribute.value)
	w.writeString(`"`)
}

func (p *Printer) indent(w *stickyWriter, depth int) {
	if !p.opts.indented {
		return
	}
	count := depth * p.opts.indentSpaces
	if count == 0 {
		return
	}
	w.writeString(strings.Repeat(" ", count))
}

func (p *Printer) lineBreak(w *stickyWriter) {
	if !p.opts.indented {
		return
	}
	w.writeString("\n")
}

// stickyWriter stops writing after the first sink failure, so one error
// short-circuits the rest of the print.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (w *stickyWriter) writeString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *stickyWriter) write(data []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(data)
}
