// Package catalog defines the parsed form of OPERATION and ERROR
// definitions and their serialization.
//
// A Catalog maps definition names to bodies in order of first appearance.
// All values are built once by the parser and not modified afterwards.
package catalog

import (
	"fmt"
	"iter"
)

// Kind distinguishes OPERATION from ERROR definitions.
type Kind int

const (
	KindOperation Kind = iota
	KindError
)

// String returns the ASN.1 keyword for the kind.
func (k Kind) String() string {
	switch k {
	case KindOperation:
		return "OPERATION"
	case KindError:
		return "ERROR"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// MarshalText encodes the kind as its keyword.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// OperationBody is the content of an OPERATION block.
type OperationBody struct {
	Argument *Element   `json:"argument" yaml:"argument"`
	Result   *Element   `json:"result" yaml:"result"`
	Code     *uint32    `json:"code" yaml:"code"`
	Errors   []ErrorRef `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ErrorBody is the content of an ERROR block, or of an error object
// written inline in an operation's ERRORS clause.
type ErrorBody struct {
	Parameter *Element `json:"parameter" yaml:"parameter"`
	Code      *uint32  `json:"code" yaml:"code"`
}

// ErrorRef is one entry of an ERRORS clause: either the name of an error
// defined elsewhere or an inline error body.
type ErrorRef struct {
	Name string     `json:"name,omitempty" yaml:"name,omitempty"`
	Body *ErrorBody `json:"body,omitempty" yaml:"body,omitempty"`
}

// Definition is a named OPERATION or ERROR. Exactly one of Operation and
// Error is set, matching Kind.
type Definition struct {
	Name      string
	Kind      Kind
	Operation *OperationBody
	Error     *ErrorBody
}

// NewOperation returns an OPERATION definition.
func NewOperation(name string, body *OperationBody) *Definition {
	return &Definition{Name: name, Kind: KindOperation, Operation: body}
}

// NewError returns an ERROR definition.
func NewError(name string, body *ErrorBody) *Definition {
	return &Definition{Name: name, Kind: KindError, Error: body}
}

// Body returns the definition's body as *OperationBody or *ErrorBody.
func (d *Definition) Body() any {
	if d.Kind == KindError {
		return d.Error
	}
	return d.Operation
}

// Code returns the definition's opcode, if any.
func (d *Definition) Code() (uint32, bool) {
	var code *uint32
	switch d.Kind {
	case KindOperation:
		if d.Operation != nil {
			code = d.Operation.Code
		}
	case KindError:
		if d.Error != nil {
			code = d.Error.Code
		}
	}
	if code == nil {
		return 0, false
	}
	return *code, true
}

// Catalog is an insertion-ordered mapping from definition name to
// definition.
type Catalog struct {
	defs  []*Definition
	index map[string]int
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Set stores def under def.Name. A name that is already present keeps its
// position and takes the new definition; replaced reports that case.
func (c *Catalog) Set(def *Definition) (replaced bool) {
	if i, ok := c.index[def.Name]; ok {
		c.defs[i] = def
		return true
	}
	c.index[def.Name] = len(c.defs)
	c.defs = append(c.defs, def)
	return false
}

// Has reports whether a definition with the given name exists.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Get returns the definition with the given name.
func (c *Catalog) Get(name string) (*Definition, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.defs[i], true
}

// Operation returns the body of the named OPERATION, or nil.
func (c *Catalog) Operation(name string) *OperationBody {
	if d, ok := c.Get(name); ok && d.Kind == KindOperation {
		return d.Operation
	}
	return nil
}

// Error returns the body of the named ERROR, or nil.
func (c *Catalog) Error(name string) *ErrorBody {
	if d, ok := c.Get(name); ok && d.Kind == KindError {
		return d.Error
	}
	return nil
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Names returns the definition names in order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.defs))
	for i, d := range c.defs {
		names[i] = d.Name
	}
	return names
}

// Definitions returns the definitions in order.
func (c *Catalog) Definitions() []*Definition {
	out := make([]*Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// All iterates over name/definition pairs in order.
func (c *Catalog) All() iter.Seq2[string, *Definition] {
	return func(yield func(string, *Definition) bool) {
		for _, d := range c.defs {
			if !yield(d.Name, d) {
				return
			}
		}
	}
}

// Operations returns the OPERATION definitions in order.
func (c *Catalog) Operations() []*Definition {
	return c.filter(KindOperation)
}

// Errors returns the ERROR definitions in order.
func (c *Catalog) Errors() []*Definition {
	return c.filter(KindError)
}

func (c *Catalog) filter(kind Kind) []*Definition {
	var out []*Definition
	for _, d := range c.defs {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
