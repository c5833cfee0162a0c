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

package pointer

import (
	"bytes"
	"encoding"
	"errors"
	"strings"
)

// Pointer is a JSON Pointer (RFC 6901) into a JSON:API request document.
type Pointer string

const (
	// attributesPrefix and relationshipsPrefix are the two members of a
	// resource object that validation failures are attributed to.
	attributesPrefix    = "/data/attributes/"
	relationshipsPrefix = "/data/relationships/"
)

var (
	// ErrPointerInvalid is returned when a value is not a JSON pointer.
	ErrPointerInvalid = errors.New("errorable: invalid pointer")
)

var (
	_ encoding.TextMarshaler   = (*Pointer)(nil)
	_ encoding.TextUnmarshaler = (*Pointer)(nil)
)

// Empty is the zero-value pointer. It marks a non-attributable error.
var Empty Pointer = ""

// escaper applies the RFC 6901 reference-token escaping. Order matters: "~"
// must be escaped before "/" introduces new tildes.
var escaper = strings.NewReplacer("~", "~0", "/", "~1")

// unescaper reverses escaper.
var unescaper = strings.NewReplacer("~1", "/", "~0", "~")

// Attribute returns the pointer to an attribute member, e.g.
// "/data/attributes/username".
func Attribute(name string) Pointer {
	return Pointer(attributesPrefix + escaper.Replace(name))
}

// Relationship returns the pointer to a relationship member, e.g.
// "/data/relationships/pets". Dotted names like "pets.toys" are kept as one
// reference token.
func Relationship(name string) Pointer {
	return Pointer(relationshipsPrefix + escaper.Replace(name))
}

// Parse validates s as a pointer. The empty string is accepted and yields
// Empty.
func Parse(s string) (Pointer, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Pointer(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Pointer {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate checks whether p is a well-formed pointer. Empty is valid.
func Validate(p Pointer) error {
	if p == Empty {
		return nil
	}
	return validate(string(p))
}

// IsAttribute reports whether p points into data.attributes.
func (p Pointer) IsAttribute() bool {
	return strings.HasPrefix(string(p), attributesPrefix)
}

// IsRelationship reports whether p points into data.relationships.
func (p Pointer) IsRelationship() bool {
	return strings.HasPrefix(string(p), relationshipsPrefix)
}

// Segments returns the unescaped reference tokens of p.
// Segments of Empty is nil.
func (p Pointer) Segments() []string {
	if p == Empty {
		return nil
	}
	parts := strings.Split(string(p)[1:], "/")
	for i, s := range parts {
		parts[i] = unescaper.Replace(s)
	}
	return parts
}

// String returns the pointer text.
func (p Pointer) String() string {
	return string(p)
}

// MarshalText implements encoding.TextMarshaler.
func (p Pointer) MarshalText() ([]byte, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	return []byte(p), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pointer) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// validate checks the RFC 6901 grammar: a pointer is a sequence of "/"
// prefixed tokens where "~" only appears as "~0" or "~1".
func validate(s string) error {
	if s[0] != '/' {
		return ErrPointerInvalid
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '~' {
			continue
		}
		if i+1 >= len(s) || (s[i+1] != '0' && s[i+1] != '1') {
			return ErrPointerInvalid
		}
	}
	return nil
}
