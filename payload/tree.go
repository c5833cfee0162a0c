/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrMalformed is returned for payloads that are not shaped like a tree.
var ErrMalformed = errors.New("payload: malformed relationship payload")

// Meta identifies the resource a node was submitted for.
type Meta struct {
	ID     string `json:"id,omitempty"`
	TempID string `json:"temp-id,omitempty"`
	Type   string `json:"type,omitempty"`
}

// UnmarshalJSON accepts "temp-id" or "temp_id", "type" or "jsonapi_type",
// and string or numeric ids.
func (m *Meta) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: meta: %w", ErrMalformed, err)
	}
	var out Meta
	var err error
	if out.ID, err = scalar(raw, "id"); err != nil {
		return err
	}
	if out.TempID, err = scalar(raw, "temp-id", "temp_id"); err != nil {
		return err
	}
	if out.Type, err = scalar(raw, "type", "jsonapi_type"); err != nil {
		return err
	}
	*m = out
	return nil
}

// Node is one submitted related resource.
type Node struct {
	Meta          Meta  `json:"meta"`
	Relationships *Tree `json:"relationships,omitempty"`
}

// Children returns the node's nested tree, never nil.
func (n Node) Children() *Tree {
	if n.Relationships == nil {
		return &Tree{}
	}
	return n.Relationships
}

// Entry is the value of one relationship: a single node or a list of nodes.
type Entry struct {
	nodes []Node
	list  bool
}

// Single returns a to-one entry.
func Single(n Node) Entry {
	return Entry{nodes: []Node{n}}
}

// List returns a to-many entry.
func List(nodes ...Node) Entry {
	return Entry{nodes: slices.Clone(nodes), list: true}
}

// IsList reports whether e is a to-many entry.
func (e Entry) IsList() bool { return e.list }

// IsEmpty reports whether e holds no nodes.
func (e Entry) IsEmpty() bool { return len(e.nodes) == 0 }

// Node returns the node of a to-one entry.
func (e Entry) Node() (Node, bool) {
	if e.list || len(e.nodes) == 0 {
		return Node{}, false
	}
	return e.nodes[0], true
}

// Nodes returns the nodes of e in submission order.
func (e Entry) Nodes() []Node {
	return slices.Clone(e.nodes)
}

// MarshalJSON encodes a to-one entry as an object and a to-many entry as an
// array.
func (e Entry) MarshalJSON() ([]byte, error) {
	if n, ok := e.Node(); ok {
		return json.Marshal(n)
	}
	if e.nodes == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e.nodes)
}

// UnmarshalJSON decodes an object as a to-one entry and an array as a
// to-many entry.
func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return ErrMalformed
	case bytes.Equal(data, []byte("null")):
		*e = Entry{}
		return nil
	case data[0] == '{':
		var n Node
		if err := unmarshal(data, &n); err != nil {
			return err
		}
		*e = Single(n)
		return nil
	case data[0] == '[':
		var nodes []Node
		if err := unmarshal(data, &nodes); err != nil {
			return err
		}
		*e = Entry{nodes: nodes, list: true}
		return nil
	default:
		return fmt.Errorf("%w: entry must be an object or an array", ErrMalformed)
	}
}

// Tree is an ordered mapping from relationship name to Entry. The zero
// value and the nil pointer are empty trees.
type Tree struct {
	names   []string
	entries map[string]Entry
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Set stores e under name, keeping the original position of an existing
// name. It returns t for chaining.
func (t *Tree) Set(name string, e Entry) *Tree {
	if t.entries == nil {
		t.entries = make(map[string]Entry)
	}
	if _, ok := t.entries[name]; !ok {
		t.names = append(t.names, name)
	}
	t.entries[name] = e
	return t
}

// Get returns the entry stored under name.
func (t *Tree) Get(name string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	e, ok := t.entries[name]
	return e, ok
}

// Len returns the number of relationship names.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Names returns the relationship names in insertion order.
func (t *Tree) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.names)
}

// All iterates the entries in insertion order.
func (t *Tree) All() iter.Seq2[string, Entry] {
	return func(yield func(string, Entry) bool) {
		if t == nil {
			return
		}
		for _, name := range t.names {
			if !yield(name, t.entries[name]) {
				return
			}
		}
	}
}

// MarshalJSON encodes t as an object with keys in insertion order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(t.entries[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, preserving key order. Null members are
// dropped; a null document is an empty tree.
func (t *Tree) UnmarshalJSON(data []byte) error {
	out := Tree{}
	err := eachMember(data, func(name string, raw json.RawMessage) error {
		var e Entry
		if err := e.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if !e.list && len(e.nodes) == 0 {
			return nil
		}
		out.Set(name, e)
		return nil
	})
	if err != nil {
		return err
	}
	*t = out
	return nil
}

// Parse decodes a tree from JSON.
func Parse(data []byte) (*Tree, error) {
	t := &Tree{}
	if err := t.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return t, nil
}
