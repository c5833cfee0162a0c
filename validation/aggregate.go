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

package validation

import (
	"encoding/json"
	"net/http"

	"dirpx.dev/errorable/adapter"
	"dirpx.dev/errorable/apis"
	"dirpx.dev/errorable/code"
	"dirpx.dev/errorable/model"
	"dirpx.dev/errorable/payload"
	"dirpx.dev/errorable/pointer"
)

const (
	// Status is the status of every validation fact.
	Status = http.StatusUnprocessableEntity

	// Title is the title of every validation fact.
	Title = "Validation Error"

	// RelationshipKey nests the meta of facts from related objects.
	RelationshipKey = "relationship"
)

// RelationshipContext names the relationship a related object was reached
// through.
type RelationshipContext struct {
	Name   string
	Type   string
	ID     string
	TempID string
}

// meta renders the context. The permanent id wins over the temporary one;
// only one of "id" and "temp-id" is present.
func (c *RelationshipContext) meta() map[string]any {
	m := map[string]any{"name": c.Name, "type": c.Type}
	switch {
	case c.ID != "":
		m["id"] = c.ID
	case c.TempID != "":
		m["temp-id"] = c.TempID
	}
	return m
}

// Aggregate returns one fact per validation failure of obj and of every
// related object reachable through tree. ctx is nil for the root object.
//
// Objects without a validation concept contribute nothing, not even through
// their relationships. An object with zero failures is still walked into.
// Structurally identical facts reached through different paths are reported
// once, at their first position.
func Aggregate(obj any, tree *payload.Tree, ctx *RelationshipContext) []apis.Fact {
	var facts []apis.Fact
	walk(model.Describe(obj), tree, ctx, &facts)
	return dedupe(facts)
}

// Document aggregates obj against tree and formats the result.
func Document(obj any, tree *payload.Tree) apis.Document {
	return adapter.ToDocument(Aggregate(obj, tree, nil)...)
}

func walk(r apis.Resource, tree *payload.Tree, ctx *RelationshipContext, acc *[]apis.Fact) {
	fails, ok := r.ValidationErrors()
	if !ok {
		return
	}
	for _, ff := range fails {
		for _, f := range ff.Failures {
			*acc = append(*acc, fact(r, ff.Field, f, ctx))
		}
	}

	for name, entry := range tree.All() {
		if entry.IsEmpty() {
			continue
		}
		for _, obj := range r.Related(name) {
			rel := model.Describe(obj)
			node, ok := pick(entry, rel)
			if !ok {
				continue
			}
			child := &RelationshipContext{
				Name:   name,
				Type:   node.Meta.Type,
				ID:     rel.ID(),
				TempID: rel.TempID(),
			}
			if child.Type == "" {
				child.Type = rel.Type()
			}
			walk(rel, node.Relationships, child, acc)
		}
	}
}

func fact(r apis.Resource, field string, f apis.Failure, ctx *RelationshipContext) apis.Fact {
	detail := f.Message
	if field != model.Base {
		detail = r.FullMessage(field, f.Message)
	}

	meta := map[string]any{"attribute": field, "message": f.Message, "code": f.Code}
	if ctx != nil {
		rel := ctx.meta()
		for k, v := range meta {
			rel[k] = v
		}
		meta = map[string]any{RelationshipKey: rel}
	}

	return apis.Fact{
		Code:    code.UnprocessableEntity,
		Status:  Status,
		Title:   Title,
		Detail:  detail,
		Pointer: pointerFor(r, field),
		Meta:    meta,
	}
}

// pointerFor attributes field to a member of the request document. Unknown
// fields fall back to a relationships pointer.
func pointerFor(r apis.Resource, field string) pointer.Pointer {
	switch {
	case r.IsRelationship(field):
		return pointer.Relationship(field)
	case r.HasAttribute(field):
		return pointer.Attribute(field)
	case field == model.Base:
		return pointer.Empty
	default:
		return pointer.Relationship(field)
	}
}

// pick selects the payload node describing rel. A single node describes
// every instance; in a list the temporary id is matched first, then the
// permanent id.
func pick(entry payload.Entry, rel apis.Resource) (payload.Node, bool) {
	if n, ok := entry.Node(); ok {
		return n, true
	}
	nodes := entry.Nodes()
	if tmp := rel.TempID(); tmp != "" {
		for _, n := range nodes {
			if n.Meta.TempID == tmp {
				return n, true
			}
		}
	}
	if id := rel.ID(); id != "" {
		for _, n := range nodes {
			if n.Meta.ID == id {
				return n, true
			}
		}
	}
	return payload.Node{}, false
}

func dedupe(facts []apis.Fact) []apis.Fact {
	seen := make(map[string]struct{}, len(facts))
	out := make([]apis.Fact, 0, len(facts))
	for _, f := range facts {
		// facts whose meta cannot be encoded are never considered equal
		b, err := json.Marshal(adapter.ToErrorObject(f))
		if err == nil {
			if _, dup := seen[string(b)]; dup {
				continue
			}
			seen[string(b)] = struct{}{}
		}
		out = append(out, f)
	}
	return out
}
