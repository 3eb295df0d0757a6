package scew

import (
	"bytes"
	"iter"
	"slices"

	"github.com/felipeprov/scew/internal/xiter"
)

// Element is a node of the document tree: a name, optional text contents,
// an ordered attribute list and an ordered child list.
//
// Contents distinguish absent from empty: an element parsed or built without
// text has no contents at all, while SetContents("") gives it empty contents.
// The two serialize differently (self-closing form versus an empty pair of
// tags).
type Element struct {
	name       string
	contents   []byte
	children   []*Element
	attributes []Attribute
	parent     *Element
}

// NewElement returns a detached element with the given name and no
// attributes, children or contents.
func NewElement(name string) *Element {
	return &Element{name: name}
}

// Name returns the element name.
func (e *Element) Name() string {
	return e.name
}

// Contents returns the text contents, or the empty string when absent.
func (e *Element) Contents() string {
	return string(e.contents)
}

// HasContents reports whether the element carries text contents. Empty
// contents set explicitly still count as present.
func (e *Element) HasContents() bool {
	return e.contents != nil
}

// SetContents replaces the element's text contents.
func (e *Element) SetContents(text string) {
	buf := make([]byte, len(text))
	copy(buf, text)
	e.contents = buf
}

// ClearContents removes the element's text contents entirely.
func (e *Element) ClearContents() {
	e.contents = nil
}

// Parent returns the parent element, or nil for a root or detached element.
func (e *Element) Parent() *Element {
	return e.parent
}

// AddElement appends child to the element's child list and returns it. A
// child attached elsewhere is detached from its old parent first.
func (e *Element) AddElement(child *Element) *Element {
	if child.parent != nil {
		child.Detach()
	}
	child.parent = e
	e.children = append(e.children, child)
	return child
}

// NewElement creates an element with the given name, appends it to the child
// list and returns it.
func (e *Element) NewElement(name string) *Element {
	return e.AddElement(NewElement(name))
}

// Detach unlinks the element from its parent. Detaching a parentless element
// is a no-op.
func (e *Element) Detach() {
	if e.parent == nil {
		return
	}
	siblings := e.parent.children
	if i := slices.Index(siblings, e); i >= 0 {
		e.parent.children = slices.Delete(siblings, i, i+1)
	}
	e.parent = nil
}

// AddAttribute appends a name/value pair to the attribute list and returns
// it. Duplicate names are kept; this layer never reduces them.
func (e *Element) AddAttribute(name, value string) Attribute {
	attribute := NewAttribute(name, value)
	e.attributes = append(e.attributes, attribute)
	return attribute
}

// Children yields the child elements in document order.
func (e *Element) Children() iter.Seq[*Element] {
	return xiter.Slice(e.children)
}

// ChildrenByName yields the child elements with the given name in document
// order.
func (e *Element) ChildrenByName(name string) iter.Seq[*Element] {
	return xiter.Filter(e.Children(), func(child *Element) bool {
		return child.name == name
	})
}

// ChildCount returns the number of child elements.
func (e *Element) ChildCount() int {
	return len(e.children)
}

// Child returns the i-th child element, or nil when out of range.
func (e *Element) Child(i int) *Element {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// ChildByName returns the first child element with the given name, or nil.
func (e *Element) ChildByName(name string) *Element {
	for _, child := range e.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// Attributes yields the attributes in insertion order.
func (e *Element) Attributes() iter.Seq[Attribute] {
	return xiter.Slice(e.attributes)
}

// AttributeCount returns the number of attributes.
func (e *Element) AttributeCount() int {
	return len(e.attributes)
}

// Attribute returns the i-th attribute.
func (e *Element) Attribute(i int) (Attribute, bool) {
	if i < 0 || i >= len(e.attributes) {
		return Attribute{}, false
	}
	return e.attributes[i], true
}

// AttributeByName returns the first attribute with the given name.
func (e *Element) AttributeByName(name string) (Attribute, bool) {
	for _, attribute := range e.attributes {
		if attribute.name == name {
			return attribute, true
		}
	}
	return Attribute{}, false
}

// appendContents grows the contents with the next character data chunk.
// Growth is amortized, so accumulation cost is linear in the total size.
func (e *Element) appendContents(data []byte) {
	e.contents = append(e.contents, data...)
}

// trimContents strips leading and trailing white space from the contents.
// Contents that trim to nothing become absent.
func (e *Element) trimContents() {
	if e.contents == nil {
		return
	}
	trimmed := bytes.TrimSpace(e.contents)
	if len(trimmed) == 0 {
		e.contents = nil
		return
	}
	e.contents = trimmed
}
