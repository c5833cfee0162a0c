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

package code

import (
	"encoding"
	"errors"
	"strconv"
	"strings"
)

// Code is the symbolic name of an HTTP status, such as "not_found" or
// "unprocessable_entity". Values outside the status table are never
// produced by this package.
type Code string

// MaxLength bounds the length of a well-formed name.
const MaxLength = 64

var (
	// ErrCodeInvalid is returned for text that is not a well-formed name:
	// lowercase ASCII letters, digits and underscores, starting with a letter.
	ErrCodeInvalid = errors.New("errorable: invalid code")

	// ErrCodeUnknown is returned for well-formed names and numeric statuses
	// that have no entry in the status table.
	ErrCodeUnknown = errors.New("errorable: unknown code")
)

var (
	_ encoding.TextMarshaler   = Code("")
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty stands for "no symbolic name known" and is omitted from error
// documents.
const Empty Code = ""

// Parse resolves s to a table name. s may be a name in any common spelling
// ("Not Found", "not-found") or a numeric status ("404").
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if n, err := strconv.Atoi(s); err == nil {
		if c, ok := ForStatus(n); ok {
			return c, nil
		}
		return Empty, ErrCodeUnknown
	}
	c := Code(s)
	if err := Validate(c); err != nil {
		return Empty, err
	}
	if _, ok := Status(c); !ok {
		return Empty, ErrCodeUnknown
	}
	return c, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize trims s, lowercases it and turns '-' and ' ' into '_'. The
// result is not guaranteed to be well-formed.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '-' || r == ' ':
			return '_'
		case 'A' <= r && r <= 'Z':
			return r + ('a' - 'A')
		}
		return r
	}, strings.TrimSpace(s))
}

// Validate reports whether c is well-formed. Empty is not.
func Validate(c Code) error {
	if len(c) == 0 || len(c) > MaxLength || c[0] < 'a' || c[0] > 'z' {
		return ErrCodeInvalid
	}
	for i := 1; i < len(c); i++ {
		b := c[i]
		if (b < 'a' || b > 'z') && (b < '0' || b > '9') && b != '_' {
			return ErrCodeInvalid
		}
	}
	return nil
}

// Known reports whether c is in the status table.
func (c Code) Known() bool {
	_, ok := Status(c)
	return ok
}

func (c Code) String() string { return string(c) }

// MarshalText encodes c. Empty encodes as empty text.
func (c Code) MarshalText() ([]byte, error) {
	if c == Empty {
		return []byte{}, nil
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText parses text with Parse. Empty text yields Empty.
func (c *Code) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*c = Empty
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
