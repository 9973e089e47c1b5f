package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the catalog as an object keyed by definition name,
// preserving definition order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range c.defs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(d.Body())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the catalog as an ordered mapping.
func (c *Catalog) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, d := range c.defs {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: d.Name}
		var value yaml.Node
		if err := value.Encode(d.Body()); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, &value)
	}
	return node, nil
}

// definitionWire is one CBOR array entry. CBOR maps have no defined key
// order, so the catalog is encoded as an array of named entries.
type definitionWire struct {
	Name      string         `json:"name"`
	Kind      string         `json:"kind"`
	Operation *OperationBody `json:"operation,omitempty"`
	Error     *ErrorBody     `json:"error,omitempty"`
}

// MarshalCBOR encodes the catalog as an array of
// {name, kind, operation|error} entries in definition order.
func (c *Catalog) MarshalCBOR() ([]byte, error) {
	entries := make([]definitionWire, len(c.defs))
	for i, d := range c.defs {
		entries[i] = definitionWire{
			Name:      d.Name,
			Kind:      d.Kind.String(),
			Operation: d.Operation,
			Error:     d.Error,
		}
	}
	return cbor.Marshal(entries)
}
