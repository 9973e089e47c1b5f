package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// TypeKind identifies the base ASN.1 type of an element.
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypeOctetString
	TypeInteger
	TypeNull
	TypeBoolean
	TypeNumericString
	TypeSequence
	TypeChoice
	TypeBitString
	TypeEnumerated
	TypeMapExtension
)

var typeKeywords = [...]string{
	TypeUnknown:       "unknown",
	TypeOctetString:   "OCTET STRING",
	TypeInteger:       "INTEGER",
	TypeNull:          "NULL",
	TypeBoolean:       "BOOLEAN",
	TypeNumericString: "NumericString",
	TypeSequence:      "SEQUENCE",
	TypeChoice:        "CHOICE",
	TypeBitString:     "BIT STRING",
	TypeEnumerated:    "ENUMERATED",
	TypeMapExtension:  "MAP-EXTENSION",
}

// String returns the ASN.1 keyword for the type.
func (k TypeKind) String() string {
	if k >= 0 && int(k) < len(typeKeywords) {
		return typeKeywords[k]
	}
	return fmt.Sprintf("TypeKind(%d)", k)
}

// ParseTypeKind returns the TypeKind for an ASN.1 keyword.
func ParseTypeKind(s string) (TypeKind, bool) {
	for k := TypeOctetString; int(k) < len(typeKeywords); k++ {
		if typeKeywords[k] == s {
			return k, true
		}
	}
	return TypeUnknown, false
}

// MarshalText encodes the type as its keyword.
func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a keyword produced by MarshalText.
func (k *TypeKind) UnmarshalText(text []byte) error {
	v, ok := ParseTypeKind(string(text))
	if !ok {
		return fmt.Errorf("unknown type keyword %q", text)
	}
	*k = v
	return nil
}

// IsConstructed reports whether the type carries a field list.
func (k TypeKind) IsConstructed() bool {
	return k == TypeSequence || k == TypeChoice
}

// HasNamedValues reports whether the type may carry a name(value) list.
func (k TypeKind) HasNamedValues() bool {
	return k == TypeBitString || k == TypeEnumerated
}

// NamedValue is a labeled integer from an ENUMERATED or BIT STRING body.
type NamedValue struct {
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// Element is one parsed type occurrence.
//
// At most one of OfElement, Elements and Values is set. Elements is non-nil
// for every SEQUENCE or CHOICE body; an empty slice is an extension-only
// body ("...").
type Element struct {
	Name       string // field name, empty for argument/result/parameter types
	Tag        *uint32
	Implicit   bool
	Type       TypeKind
	Value      *bool // literal TRUE
	Qualifiers string
	Optional   bool
	OfElement  *Element
	Elements   []*Element
	Values     []NamedValue
}

// Field returns the named member of a SEQUENCE or CHOICE.
func (e *Element) Field(name string) *Element {
	for _, f := range e.Elements {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// NamedValue returns the value with the given name.
func (e *Element) NamedValue(name string) (NamedValue, bool) {
	for _, nv := range e.Values {
		if nv.Name == name {
			return nv, true
		}
	}
	return NamedValue{}, false
}

// elementWire is the encoded shape shared by JSON, YAML and CBOR.
// Elements is a pointer so an empty field list is still emitted.
type elementWire struct {
	Name       string       `json:"name,omitempty" yaml:"name,omitempty"`
	Tag        *uint32      `json:"tag,omitempty" yaml:"tag,omitempty"`
	Implicit   bool         `json:"implicit,omitempty" yaml:"implicit,omitempty"`
	Type       string       `json:"type" yaml:"type"`
	Value      *bool        `json:"value,omitempty" yaml:"value,omitempty"`
	Qualifiers string       `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
	Optional   bool         `json:"optional,omitempty" yaml:"optional,omitempty"`
	OfElement  *Element     `json:"ofElement,omitempty" yaml:"ofElement,omitempty"`
	Elements   *[]*Element  `json:"elements,omitempty" yaml:"elements,omitempty"`
	Values     []NamedValue `json:"values,omitempty" yaml:"values,omitempty"`
}

func (e *Element) wire() elementWire {
	w := elementWire{
		Name:       e.Name,
		Tag:        e.Tag,
		Implicit:   e.Implicit,
		Type:       e.Type.String(),
		Value:      e.Value,
		Qualifiers: e.Qualifiers,
		Optional:   e.Optional,
		OfElement:  e.OfElement,
		Values:     e.Values,
	}
	if e.Elements != nil {
		w.Elements = &e.Elements
	}
	return w
}

// MarshalJSON implements json.Marshaler.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.wire())
}

// MarshalYAML implements yaml.Marshaler.
func (e *Element) MarshalYAML() (any, error) {
	return e.wire(), nil
}

// MarshalCBOR implements cbor.Marshaler.
func (e *Element) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(e.wire())
}
