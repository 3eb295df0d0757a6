// Package xmldecl parses the body of an XML declaration into its version,
// encoding, and standalone fields.
package xmldecl

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	errMissingVersion = errors.New("xml declaration missing version")
	errMalformed      = errors.New("malformed xml declaration")
	errFieldOrder     = errors.New("xml declaration fields out of order")
)

// Decl holds the declaration fields. Encoding and Standalone are empty when
// the declaration omits them; Standalone is otherwise "yes" or "no".
type Decl struct {
	Version    string
	Encoding   string
	Standalone string
}

const (
	fieldNone = iota
	fieldVersion
	fieldEncoding
	fieldStandalone
)

// Parse extracts the fields from the text following the "xml" target of a
// declaration, e.g. `version="1.0" encoding="UTF-8" standalone="yes"`.
// Field order, separation, and literal values are enforced the way a
// conforming tokenizer would.
func Parse(inst []byte) (Decl, error) {
	var decl Decl

	data := inst
	last := fieldNone
	for {
		rest := bytes.TrimLeft(data, " \t\r\n")
		if len(rest) == 0 {
			break
		}
		if last != fieldNone && len(rest) == len(data) {
			// Pseudo-attributes must be whitespace separated.
			return Decl{}, errMalformed
		}
		data = rest

		name, value, remainder, err := scanPseudoAttr(data)
		if err != nil {
			return Decl{}, err
		}
		data = remainder

		field, err := classify(name)
		if err != nil {
			return Decl{}, err
		}
		if field <= last {
			return Decl{}, errFieldOrder
		}
		last = field

		switch field {
		case fieldVersion:
			if !validVersion(value) {
				return Decl{}, fmt.Errorf("invalid xml version %q", value)
			}
			decl.Version = string(value)
		case fieldEncoding:
			if !validEncodingName(value) {
				return Decl{}, fmt.Errorf("invalid encoding name %q", value)
			}
			decl.Encoding = string(value)
		case fieldStandalone:
			switch string(value) {
			case "yes", "no":
				decl.Standalone = string(value)
			default:
				return Decl{}, fmt.Errorf("invalid standalone value %q", value)
			}
		}
	}

	if decl.Version == "" {
		return Decl{}, errMissingVersion
	}
	return decl, nil
}

func classify(name []byte) (int, error) {
	switch string(name) {
	case "version":
		return fieldVersion, nil
	case "encoding":
		return fieldEncoding, nil
	case "standalone":
		return fieldStandalone, nil
	default:
		return fieldNone, fmt.Errorf("unexpected %q in xml declaration", name)
	}
}

func scanPseudoAttr(data []byte) (name, value, rest []byte, err error) {
	name, data = scanName(data)
	if len(name) == 0 {
		return nil, nil, nil, errMalformed
	}
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 || data[0] != '=' {
		return nil, nil, nil, errMalformed
	}
	data = bytes.TrimLeft(data[1:], " \t\r\n")
	if len(data) == 0 {
		return nil, nil, nil, errMalformed
	}
	quote := data[0]
	if quote != '\'' && quote != '"' {
		return nil, nil, nil, errMalformed
	}
	data = data[1:]
	end := bytes.IndexByte(data, quote)
	if end < 0 {
		return nil, nil, nil, errMalformed
	}
	return name, data[:end], data[end+1:], nil
}

func scanName(data []byte) ([]byte, []byte) {
	i := 0
	for i < len(data) && isNameByte(data[i]) {
		i++
	}
	return data[:i], data[i:]
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// validVersion reports whether value matches VersionNum: "1." digits.
func validVersion(value []byte) bool {
	if len(value) < 3 || value[0] != '1' || value[1] != '.' {
		return false
	}
	for _, b := range value[2:] {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}

// validEncodingName reports whether value matches EncName: a letter followed
// by letters, digits, '.', '_', or '-'.
func validEncodingName(value []byte) bool {
	if len(value) == 0 || !isAlpha(value[0]) {
		return false
	}
	for _, b := range value[1:] {
		if !isAlpha(b) && !(b >= '0' && b <= '9') && b != '.' && b != '_' && b != '-' {
			return false
		}
	}
	return true
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
