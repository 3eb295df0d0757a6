package scew

import (
	"encoding/xml"
	"fmt"
	"io"
	"unicode"

	"github.com/felipeprov/scew/errors"
	"github.com/felipeprov/scew/internal/textpos"
	"github.com/felipeprov/scew/internal/xmldecl"
)

const xmlDeclTarget = "xml"

// Parser incrementally builds document trees from tokenizer events.
//
// The tokenizer is encoding/xml; the parser mediates its raw token stream
// (declaration placement, tag matching, content outside the root) and grows
// the tree with a current-element pointer plus an explicit ancestor stack.
// A Parser is reusable across sequential parses: every parse starts from a
// clean state. One instance must not be used concurrently.
type Parser struct {
	opts resolvedParserOptions

	dec   *xml.Decoder
	index textpos.Index

	doc          *Document
	stack        []*Element
	rootClosed   bool
	started      bool
	sawDecl      bool
	contentTotal int

	// most recent declaration metadata, carried across stream documents
	declVersion    string
	declEncoding   string
	declStandalone Standalone
}

// NewParser returns a parser with default options.
func NewParser() *Parser {
	resolved, _ := NewParserOptions().withDefaults()
	return &Parser{opts: resolved}
}

// NewParserWithOptions returns a parser with explicit configuration.
func NewParserWithOptions(opts ParserOptions) (*Parser, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("parser options: %w", err)
	}
	return &Parser{opts: resolved}, nil
}

// Parse reads a single complete document from r and returns its tree.
// Anything after the root element except white space is an error.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	var result *Document
	err := p.run(r, false, func(doc *Document) error {
		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		line, column := p.index.Position(p.index.Size())
		return nil, &errors.Error{
			Code:    errors.CodeTokenizer,
			Message: "missing root element",
			Line:    line,
			Column:  column,
		}
	}
	return result, nil
}

// ParseStream reads consecutive documents from r, handing each completed
// tree to handler as soon as its root element closes. Each declaration
// attribute persists until a later declaration replaces it, so every
// document carries the most recently declared version, encoding, and
// standalone status. A handler error aborts the parse.
func (p *Parser) ParseStream(r io.Reader, handler func(*Document) error) error {
	if handler == nil {
		return fmt.Errorf("stream handler must not be nil")
	}
	return p.run(r, true, handler)
}

func (p *Parser) run(r io.Reader, stream bool, deliver func(*Document) error) error {
	p.reset()
	p.dec = xml.NewDecoder(textpos.NewReader(r, &p.index))
	p.dec.CharsetReader = p.opts.charsetReader

	for {
		tok, err := p.dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			err = p.wrapHere(errors.CodeTokenizer, err)
			p.reset()
			return err
		}
		if err := p.handleToken(tok, stream, deliver); err != nil {
			p.reset()
			return err
		}
	}
	if cur := p.currentElement(); cur != nil {
		err := p.errorHere(errors.CodeTokenizer, fmt.Sprintf("unexpected end of input inside element %s", cur.name))
		p.reset()
		return err
	}
	return nil
}

// handleToken is the adapter layer: it enforces what the tokenizer contract
// promises the event handlers (declaration placement, matching tags, no
// content outside the root) and discards tokens that carry no tree
// information.
func (p *Parser) handleToken(tok xml.Token, stream bool, deliver func(*Document) error) error {
	switch t := tok.(type) {
	case xml.ProcInst:
		if t.Target != xmlDeclTarget {
			return nil
		}
		if p.sawDecl {
			return p.errorHere(errors.CodeTokenizer, "duplicate xml declaration")
		}
		if p.started || p.rootClosed {
			return p.errorHere(errors.CodeTokenizer, "misplaced xml declaration")
		}
		return p.handleDecl(t)
	case xml.StartElement:
		if p.rootClosed {
			return p.errorHere(errors.CodeTokenizer, fmt.Sprintf("unexpected element %s after document end", rawName(t.Name)))
		}
		return p.handleStart(t)
	case xml.EndElement:
		cur := p.currentElement()
		if cur == nil {
			return p.errorHere(errors.CodeTokenizer, fmt.Sprintf("unexpected end element %s", rawName(t.Name)))
		}
		if name := rawName(t.Name); name != cur.name {
			return p.errorHere(errors.CodeTokenizer, fmt.Sprintf("element %s closed by %s", cur.name, name))
		}
		return p.handleEnd(stream, deliver)
	case xml.CharData:
		if p.currentElement() == nil {
			if isIgnorableOutsideRoot(string(t)) {
				return nil
			}
			return p.errorHere(errors.CodeTokenizer, "unexpected character data outside root element")
		}
		return p.handleCharData(t)
	default:
		// comments and directives carry no tree information
		return nil
	}
}

// handleDecl records declaration metadata and creates the document early, so
// a declaration-only prefix already has a tree to fill in.
func (p *Parser) handleDecl(t xml.ProcInst) error {
	decl, err := xmldecl.Parse(t.Inst)
	if err != nil {
		return p.wrapHere(errors.CodeTokenizer, fmt.Errorf("xml declaration: %w", err))
	}
	p.sawDecl = true
	if decl.Version != "" {
		p.declVersion = decl.Version
	}
	if decl.Encoding != "" {
		p.declEncoding = decl.Encoding
	}
	switch decl.Standalone {
	case "yes":
		p.declStandalone = StandaloneYes
	case "no":
		p.declStandalone = StandaloneNo
	default:
		p.declStandalone = StandaloneUnknown
	}
	p.ensureDocument()
	return nil
}

// handleStart builds the element with its attributes, attaches it to the
// current element when one exists and pushes it onto the ancestor stack. A
// limit failure leaves no partial element behind.
func (p *Parser) handleStart(t xml.StartElement) error {
	name := rawName(t.Name)
	if len(p.stack) >= p.opts.limits.maxDepth {
		return p.errorHere(errors.CodeNoMemory, fmt.Sprintf("element %s exceeds depth limit %d", name, p.opts.limits.maxDepth))
	}
	if len(t.Attr) > p.opts.limits.maxAttrs {
		return p.errorHere(errors.CodeNoMemory, fmt.Sprintf("element %s exceeds attribute limit %d", name, p.opts.limits.maxAttrs))
	}

	element := NewElement(name)
	for _, attr := range t.Attr {
		element.AddAttribute(rawName(attr.Name), attr.Value)
	}
	if cur := p.currentElement(); cur != nil {
		cur.AddElement(element)
	}
	p.stack = append(p.stack, element)
	p.started = true
	return nil
}

// handleCharData appends the chunk to the current element's contents.
// Accumulation is associative: any chunking of the same text produces the
// same contents.
func (p *Parser) handleCharData(data []byte) error {
	cur := p.currentElement()
	if cur == nil {
		return errors.New(errors.CodeInternal, "character data with no open element")
	}
	if p.contentTotal+len(data) > p.opts.limits.maxContentSize {
		return p.errorHere(errors.CodeNoMemory, fmt.Sprintf("contents exceed size limit %d", p.opts.limits.maxContentSize))
	}
	p.contentTotal += len(data)
	cur.appendContents(data)
	return nil
}

// handleEnd finishes the current element and pops it. When the stack
// empties the element is the document root: the tree is completed and, in
// stream mode, handed off so the next document starts fresh.
func (p *Parser) handleEnd(stream bool, deliver func(*Document) error) error {
	cur := p.currentElement()
	if cur == nil {
		return errors.New(errors.CodeInternal, "end event with no open element")
	}
	if p.opts.trimWhitespace {
		cur.trimContents()
	}
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) > 0 {
		return nil
	}

	doc := p.ensureDocument()
	doc.SetRoot(cur)
	p.doc = nil
	if stream {
		p.started = false
		p.sawDecl = false
		p.contentTotal = 0
		return deliver(doc)
	}
	p.rootClosed = true
	return deliver(doc)
}

// ensureDocument lazily creates the document for the current parse,
// populating it from the most recent declaration. Repeated calls within one
// parse return the same instance.
func (p *Parser) ensureDocument() *Document {
	if p.doc == nil {
		p.doc = NewDocument()
		if p.declVersion != "" {
			p.doc.SetVersion(p.declVersion)
		}
		if p.declEncoding != "" {
			p.doc.SetEncoding(p.declEncoding)
		}
		p.doc.SetStandalone(p.declStandalone)
	}
	return p.doc
}

func (p *Parser) currentElement() *Element {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// reset clears all per-parse state so a parse starts clean.
func (p *Parser) reset() {
	p.drain()
	p.doc = nil
	p.rootClosed = false
	p.started = false
	p.sawDecl = false
	p.contentTotal = 0
	p.declVersion = ""
	p.declEncoding = ""
	p.declStandalone = StandaloneUnknown
	p.index.Reset()
	p.dec = nil
}

// drain empties the ancestor stack after abnormal termination, dropping any
// partially built tree.
func (p *Parser) drain() {
	for i := range p.stack {
		p.stack[i] = nil
	}
	p.stack = p.stack[:0]
}

func (p *Parser) errorHere(code errors.Code, message string) error {
	line, column := p.position()
	return &errors.Error{Code: code, Message: message, Line: line, Column: column}
}

func (p *Parser) wrapHere(code errors.Code, err error) error {
	line, column := p.position()
	return &errors.Error{Code: code, Err: err, Line: line, Column: column}
}

func (p *Parser) position() (line, column int) {
	if p.dec == nil {
		return p.index.Position(p.index.Size())
	}
	return p.index.Position(p.dec.InputOffset())
}

// rawName reassembles the verbatim prefixed name the tokenizer split.
func rawName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func isIgnorableOutsideRoot(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
