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
	"fmt"
)

// resource is the subset of a JSON:API resource object needed to rebuild the
// relationship tree.
type resource struct {
	meta          Meta
	relationships json.RawMessage
}

func decodeResource(data []byte) (*resource, error) {
	var raw map[string]json.RawMessage
	if err := unmarshal(data, &raw); err != nil {
		return nil, err
	}
	m := &Meta{}
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &resource{meta: *m, relationships: raw["relationships"]}, nil
}

// index finds sideposted resources by type and id or temporary id.
type index map[string]*resource

func key(typ, kind, id string) string { return typ + "\x00" + kind + "\x00" + id }

func (ix index) add(r *resource) {
	if r.meta.ID != "" {
		ix[key(r.meta.Type, "id", r.meta.ID)] = r
	}
	if r.meta.TempID != "" {
		ix[key(r.meta.Type, "temp", r.meta.TempID)] = r
	}
}

func (ix index) find(m Meta) *resource {
	if m.TempID != "" {
		if r, ok := ix[key(m.Type, "temp", m.TempID)]; ok {
			return r
		}
	}
	if m.ID != "" {
		if r, ok := ix[key(m.Type, "id", m.ID)]; ok {
			return r
		}
	}
	return nil
}

// FromDocument builds the relationship tree implied by a JSON:API request
// document: every resource identifier under data.relationships becomes a
// node, and identifiers that match a resource in "included" carry that
// resource's relationships as their nested tree. A document without a
// single primary resource yields an empty tree.
func FromDocument(data []byte) (*Tree, error) {
	var doc struct {
		Data     json.RawMessage   `json:"data"`
		Included []json.RawMessage `json:"included"`
	}
	if err := unmarshal(data, &doc); err != nil {
		return nil, err
	}
	primary := bytes.TrimSpace(doc.Data)
	if len(primary) == 0 || primary[0] != '{' {
		return &Tree{}, nil
	}
	root, err := decodeResource(primary)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}

	ix := index{}
	for i, raw := range doc.Included {
		r, err := decodeResource(raw)
		if err != nil {
			return nil, fmt.Errorf("included[%d]: %w", i, err)
		}
		ix.add(r)
	}

	b := &docBuilder{ix: ix, visiting: map[*resource]bool{root: true}}
	return b.tree(root)
}

type docBuilder struct {
	ix       index
	visiting map[*resource]bool
}

func (b *docBuilder) tree(r *resource) (*Tree, error) {
	t := &Tree{}
	err := eachMember(r.relationships, func(name string, raw json.RawMessage) error {
		var rel struct {
			Data json.RawMessage `json:"data"`
		}
		if err := unmarshal(raw, &rel); err != nil {
			return fmt.Errorf("relationships.%s: %w", name, err)
		}
		d := bytes.TrimSpace(rel.Data)
		switch {
		case len(d) == 0 || bytes.Equal(d, []byte("null")):
			return nil
		case d[0] == '{':
			n, err := b.node(d)
			if err != nil {
				return fmt.Errorf("relationships.%s: %w", name, err)
			}
			t.Set(name, Single(n))
		case d[0] == '[':
			var items []json.RawMessage
			if err := unmarshal(d, &items); err != nil {
				return fmt.Errorf("relationships.%s: %w", name, err)
			}
			nodes := make([]Node, 0, len(items))
			for i, item := range items {
				n, err := b.node(item)
				if err != nil {
					return fmt.Errorf("relationships.%s[%d]: %w", name, i, err)
				}
				nodes = append(nodes, n)
			}
			t.Set(name, List(nodes...))
		default:
			return fmt.Errorf("%w: relationships.%s.data", ErrMalformed, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (b *docBuilder) node(data []byte) (Node, error) {
	var m Meta
	if err := m.UnmarshalJSON(data); err != nil {
		return Node{}, err
	}
	n := Node{Meta: m}
	inc := b.ix.find(m)
	if inc == nil || b.visiting[inc] {
		return n, nil
	}
	b.visiting[inc] = true
	defer delete(b.visiting, inc)

	children, err := b.tree(inc)
	if err != nil {
		return Node{}, err
	}
	if children.Len() > 0 {
		n.Relationships = children
	}
	return n, nil
}
