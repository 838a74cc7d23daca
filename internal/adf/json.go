package adf

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON decodes a node. A type tag outside the modelled set decodes
// to TypeUnknown with the original bytes kept in Raw.
func (n *Node) UnmarshalJSON(data []byte) error {
	var head struct {
		Type NodeType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("decoding node: %w", err)
	}
	if !head.Type.Known() {
		*n = Node{Type: TypeUnknown, Raw: append(json.RawMessage(nil), data...)}
		return nil
	}
	type plain Node
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decoding %s node: %w", head.Type, err)
	}
	if len(p.Content) == 0 {
		p.Content = nil
	}
	*n = Node(p)
	return nil
}

// MarshalJSON encodes a node; unknown nodes re-emit their original JSON.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.Type == TypeUnknown && len(n.Raw) > 0 {
		return n.Raw, nil
	}
	type plain Node
	if !n.Type.Container() {
		return json.Marshal(plain(n))
	}
	content := n.Content
	if content == nil {
		content = []Node{}
	}
	// The outer Content shadows the embedded one, dropping omitempty.
	return json.Marshal(struct {
		plain
		Content []Node `json:"content"`
	}{plain(n), content})
}

// UnmarshalJSON decodes a mark, mapping unrecognised types to MarkUnknown.
func (m *Mark) UnmarshalJSON(data []byte) error {
	var head struct {
		Type MarkType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("decoding mark: %w", err)
	}
	if !head.Type.Known() {
		*m = Mark{Type: MarkUnknown, Raw: append(json.RawMessage(nil), data...)}
		return nil
	}
	type plain Mark
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decoding %s mark: %w", head.Type, err)
	}
	*m = Mark(p)
	return nil
}

// MarshalJSON encodes a mark; unknown marks re-emit their original JSON.
func (m Mark) MarshalJSON() ([]byte, error) {
	if m.Type == MarkUnknown && len(m.Raw) > 0 {
		return m.Raw, nil
	}
	type plain Mark
	return json.Marshal(plain(m))
}

// Decode parses an ADF JSON document.
func Decode(data []byte) (*Node, error) {
	var doc Node
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// OriginalType returns the type tag an unknown node carried on the wire, or
// the node's own type for modelled nodes.
func (n Node) OriginalType() string {
	if n.Type != TypeUnknown || len(n.Raw) == 0 {
		return string(n.Type)
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(n.Raw, &head); err != nil {
		return string(TypeUnknown)
	}
	return head.Type
}
