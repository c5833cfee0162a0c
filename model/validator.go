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
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
)

// NewValidator returns a validator that reports fields by the names used on
// the wire: the jsonapi tag name, else the json tag name, else the
// snake_cased Go name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return v
}

func fieldName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup(tagName); ok {
		if tag == "-" {
			return "-"
		}
		kind, name, _ := strings.Cut(tag, ",")
		name, _, _ = strings.Cut(name, ",")
		switch kind {
		case kindPrimary:
			return "id"
		case kindAttr, kindRelation:
			if name != "" {
				return name
			}
		}
	}
	if js := jsonName(f); js != "" {
		return js
	}
	if f.Tag.Get("json") == "-" {
		return "-"
	}
	return strcase.ToSnake(f.Name)
}

// Check validates obj with v and returns its failures.
func Check(v *validator.Validate, obj any) (*Errors, error) {
	return FromValidator(v.Struct(obj))
}

// FromValidator converts a validator.ValidationErrors into Errors. A nil err
// yields empty Errors; any other error is returned as is.
func FromValidator(err error) (*Errors, error) {
	out := &Errors{}
	if err == nil {
		return out, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	for _, e := range verrs {
		msg, code := Translate(e)
		out.Add(namespace(e), msg, code)
	}
	return out, nil
}

// namespace strips the root struct name: "Post.author.name" -> "author.name".
func namespace(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

// Translate returns the message and symbolic code for one failed tag.
func Translate(e validator.FieldError) (message, code string) {
	sized := isSized(e.Kind())
	switch e.Tag() {
	case "required", "required_if", "required_unless", "required_with", "required_without":
		return "can't be blank", "blank"
	case "excluded_with", "excluded_without", "isdefault":
		return "must be blank", "present"
	case "email", "url", "uri", "uuid", "uuid4", "e164", "hostname", "ip", "alphanum", "alpha":
		return "is invalid", "invalid"
	case "oneof":
		return "is not included in the list", "inclusion"
	case "eqfield":
		return fmt.Sprintf("doesn't match %s", Humanize(e.Param())), "confirmation"
	case "numeric", "number":
		return "is not a number", "not_a_number"
	case "len":
		if sized {
			return fmt.Sprintf("is the wrong length (should be %s characters)", e.Param()), "wrong_length"
		}
		return fmt.Sprintf("must be equal to %s", e.Param()), "equal_to"
	case "min", "gte":
		if sized {
			return fmt.Sprintf("is too short (minimum is %s characters)", e.Param()), "too_short"
		}
		return fmt.Sprintf("must be greater than or equal to %s", e.Param()), "greater_than_or_equal_to"
	case "max", "lte":
		if sized {
			return fmt.Sprintf("is too long (maximum is %s characters)", e.Param()), "too_long"
		}
		return fmt.Sprintf("must be less than or equal to %s", e.Param()), "less_than_or_equal_to"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param()), "greater_than"
	case "lt":
		return fmt.Sprintf("must be less than %s", e.Param()), "less_than"
	default:
		return "is invalid", "invalid"
	}
}

func isSized(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}
