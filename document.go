package scew

// Standalone is the tri-state standalone status carried by an XML
// declaration.
type Standalone int

const (
	// StandaloneUnknown means the declaration did not state a standalone
	// status, or there was no declaration at all.
	StandaloneUnknown Standalone = iota
	// StandaloneNo means the declaration stated standalone="no".
	StandaloneNo
	// StandaloneYes means the declaration stated standalone="yes".
	StandaloneYes
)

// String returns the declaration spelling of the standalone status.
func (s Standalone) String() string {
	switch s {
	case StandaloneNo:
		return "no"
	case StandaloneYes:
		return "yes"
	default:
		return "unknown"
	}
}

// Document is a complete tree: the declaration metadata plus a single root
// element.
type Document struct {
	version    string
	encoding   string
	standalone Standalone
	root       *Element
}

// NewDocument returns an empty document with version "1.0", no encoding, an
// unknown standalone status and no root.
func NewDocument() *Document {
	return &Document{version: "1.0"}
}

// Version returns the declared XML version.
func (d *Document) Version() string {
	return d.version
}

// SetVersion replaces the declared XML version.
func (d *Document) SetVersion(version string) {
	d.version = version
}

// Encoding returns the declared encoding label, or the empty string when the
// declaration carried none.
func (d *Document) Encoding() string {
	return d.encoding
}

// SetEncoding replaces the declared encoding label.
func (d *Document) SetEncoding(encoding string) {
	d.encoding = encoding
}

// Standalone returns the declared standalone status.
func (d *Document) Standalone() Standalone {
	return d.standalone
}

// SetStandalone replaces the declared standalone status.
func (d *Document) SetStandalone(standalone Standalone) {
	d.standalone = standalone
}

// Root returns the document's root element, or nil when none is set.
func (d *Document) Root() *Element {
	return d.root
}

// SetRoot replaces the document's root element.
func (d *Document) SetRoot(root *Element) {
	d.root = root
}
