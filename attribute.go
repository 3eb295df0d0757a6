package scew

// Attribute is a single name/value pair attached to an element.
//
// Attributes are immutable values; changing one means appending a new pair
// through the owning element.
type Attribute struct {
	name  string
	value string
}

// NewAttribute returns an attribute with the given name and value.
func NewAttribute(name, value string) Attribute {
	return Attribute{name: name, value: value}
}

// Name returns the attribute name.
func (a Attribute) Name() string {
	return a.name
}

// Value returns the attribute value.
func (a Attribute) Value() string {
	return a.value
}
