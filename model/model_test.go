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

package model

import (
	"testing"

	"dirpx.dev/errorable/apis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type toy struct {
	ID   int    `jsonapi:"primary,toys"`
	Name string `jsonapi:"attr,name"`
	Errors
}

type pet struct {
	ID     string `jsonapi:"primary,pets"`
	TempID string `jsonapi:"client-id"`
	Name   string `jsonapi:"attr,name"`
	Toys   []*toy `jsonapi:"relation,toys"`
	Errors
}

type owner struct {
	ID       uint64 `jsonapi:"primary"`
	Username string `json:"username"`
	Nickname string
	Secret   string `jsonapi:"-"`
	Pet      *pet   `jsonapi:"relation,pet"`
	Friends  []pet  `jsonapi:"relation,friends"`
	Errors
}

func TestDescribe_Tags(t *testing.T) {
	t.Parallel()

	o := &owner{ID: 5, Pet: &pet{TempID: "p1", Toys: []*toy{{ID: 1}, nil, {ID: 2}}}}
	r := Describe(o)

	assert.Same(t, o, r.Object())
	assert.Equal(t, "5", r.ID())
	assert.Equal(t, "", r.TempID())
	assert.Equal(t, "owners", r.Type())

	assert.True(t, r.IsRelationship("pet"))
	assert.True(t, r.IsRelationship("friends"))
	assert.False(t, r.IsRelationship("username"))

	assert.True(t, r.HasAttribute("username"))
	assert.True(t, r.HasAttribute("nickname"))
	assert.False(t, r.HasAttribute("secret"))
	assert.False(t, r.HasAttribute("pet"))

	pets := r.Related("pet")
	require.Len(t, pets, 1)
	assert.Same(t, o.Pet, pets[0])

	p := Describe(pets[0])
	assert.Equal(t, "", p.ID())
	assert.Equal(t, "p1", p.TempID())
	assert.Equal(t, "pets", p.Type())

	toys := p.Related("toys")
	require.Len(t, toys, 2, "nil elements are skipped")
	assert.Equal(t, "2", Describe(toys[1]).ID())

	assert.Nil(t, r.Related("unknown"))
	assert.Equal(t, []string{"pet", "friends"}, Relationships(o))
}

func TestDescribe_ValueSliceElementsAreAddressable(t *testing.T) {
	t.Parallel()

	o := &owner{Friends: []pet{{ID: "a"}, {ID: "b"}}}
	o.Friends[1].Add("name", "can't be blank", "blank")

	friends := Describe(o).Related("friends")
	require.Len(t, friends, 2)

	fails, ok := Describe(friends[1]).ValidationErrors()
	require.True(t, ok)
	assert.Len(t, fails, 1)
}

func TestDescribe_ValidationErrors(t *testing.T) {
	t.Parallel()

	o := &owner{}
	o.Add("username", "can't be blank", "blank")

	fails, ok := Describe(o).ValidationErrors()
	require.True(t, ok)
	assert.Equal(t, []apis.FieldFailures{{Field: "username", Failures: []apis.Failure{{Message: "can't be blank", Code: "blank"}}}}, fails)

	_, ok = Describe(struct{ Name string }{}).ValidationErrors()
	assert.False(t, ok)

	_, ok = Describe(nil).ValidationErrors()
	assert.False(t, ok)
}

func TestDescribe_NonStruct(t *testing.T) {
	t.Parallel()

	r := Describe(42)
	assert.False(t, r.IsRelationship("x"))
	assert.False(t, r.HasAttribute("x"))
	assert.Nil(t, r.Related("x"))
	assert.Equal(t, "", r.ID())
	assert.Equal(t, "", r.Type())
	assert.Equal(t, "X is bad", r.FullMessage("x", "is bad"))
}

type capable struct{}

func (capable) ValidationErrors() []apis.FieldFailures { return nil }
func (capable) IsRelationship(name string) bool { return name == "rel" }
func (capable) HasAttribute(name string) bool { return name == "attr" }
func (capable) FullMessage(field, message string) string { return field + ": " + message }
func (capable) Related(string) []any { return []any{"x"} }
func (capable) ResourceID() string { return "id-1" }
func (capable) ResourceTempID() string { return "tmp-1" }
func (capable) ResourceType() string { return "capables" }

func TestDescribe_CapabilitiesWin(t *testing.T) {
	t.Parallel()

	r := Describe(capable{})
	assert.True(t, r.IsRelationship("rel"))
	assert.True(t, r.HasAttribute("attr"))
	assert.Equal(t, "f: m", r.FullMessage("f", "m"))
	assert.Equal(t, []any{"x"}, r.Related("anything"))
	assert.Equal(t, "id-1", r.ID())
	assert.Equal(t, "tmp-1", r.TempID())
	assert.Equal(t, "capables", r.Type())

	assert.Same(t, r, Describe(r))
}

func TestErrors(t *testing.T) {
	t.Parallel()

	var e Errors
	assert.True(t, e.Empty())

	e.Add("name", "can't be blank", "blank").
		AddBase("is locked", "locked").
		Add("name", "is too short (minimum is 3 characters)", "too_short")

	assert.Equal(t, 3, e.Len())
	fails := e.ValidationErrors()
	require.Len(t, fails, 2)
	assert.Equal(t, "name", fails[0].Field)
	assert.Len(t, fails[0].Failures, 2)
	assert.Equal(t, Base, fails[1].Field)

	fails[0].Failures[0].Message = "mutated"
	assert.Equal(t, "can't be blank", e.On("name")[0].Message)

	var other Errors
	other.Merge(e.ValidationErrors())
	assert.Equal(t, e.ValidationErrors(), other.ValidationErrors())

	e.Clear()
	assert.True(t, e.Empty())
	assert.Nil(t, e.On("name"))
}

func TestHumanize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"username":    "Username",
		"first_name":  "First name",
		"firstName":   "First name",
		"author_id":   "Author",
		"author.name": "Author name",
		"":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Humanize(in), in)
	}
}

func TestFullMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Username can't be blank", FullMessage("username", "can't be blank"))
	assert.Equal(t, "is locked", FullMessage(Base, "is locked"))
}

func TestTypeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "blog_posts", TypeName("BlogPost"))
	assert.Equal(t, "people", TypeName("Person"))
}
