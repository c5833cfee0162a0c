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

package apis

// Failure is one field-level validation failure: a human message such as
// "can't be blank" and its symbolic code such as "blank".
type Failure struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// FieldFailures groups the failures reported for one field, in the order the
// object model reported them.
type FieldFailures struct {
	Field    string    `json:"field"`
	Failures []Failure `json:"failures"`
}

// Validatable is implemented by objects that carry validation failures.
//
// The returned slice preserves the model's natural enumeration order: fields
// in the order they failed, and failures within a field in reporting order.
// Objects that do not implement Validatable contribute no errors at all.
type Validatable interface {
	ValidationErrors() []FieldFailures
}

// Reflector answers the two questions needed to attribute a field failure to
// a pointer, without reflection-based probing:
//
//   - is the field a declared association of the object;
//   - does the object expose a property with that name.
type Reflector interface {
	IsRelationship(name string) bool
	HasAttribute(name string) bool
}

// FullMessager renders a failure message with its field name, e.g.
// ("username", "can't be blank") -> "Username can't be blank".
type FullMessager interface {
	FullMessage(field, message string) string
}

// Identifiable is implemented by objects with a permanent identifier.
// An empty string means "not persisted yet".
type Identifiable interface {
	ResourceID() string
}

// TempIdentifiable is implemented by objects that carry the temporary,
// client-generated identifier they were submitted with.
type TempIdentifiable interface {
	ResourceTempID() string
}

// Typed is implemented by objects that know their JSON:API resource type.
type Typed interface {
	ResourceType() string
}

// RelatedProvider returns the objects currently set on a relationship field.
// A to-one relationship returns at most one element; an unset relationship
// returns nil.
type RelatedProvider interface {
	Related(name string) []any
}

// Resource is the full capability set the validation aggregator consumes.
// model.Describe builds one for any object, preferring the capability
// interfaces above and falling back to struct tags.
type Resource interface {
	Reflector
	FullMessager
	RelatedProvider

	// Object returns the described value.
	Object() any

	// ValidationErrors returns the failures and whether the object has a
	// validation concept at all.
	ValidationErrors() ([]FieldFailures, bool)

	// ID and TempID return the permanent and temporary identifiers.
	ID() string
	TempID() string

	// Type returns the JSON:API type, or "" when unknown.
	Type() string
}
