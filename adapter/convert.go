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

package adapter

import (
	"maps"
	"strconv"

	"dirpx.dev/errorable/apis"
	"dirpx.dev/errorable/pointer"
)

// ToErrorObject converts a normalized Fact into its wire-format error object.
//
// The conversion is pure: code is emitted only when the fact carries one,
// source only when the fact is attributable, and meta is always present so
// that consumers can rely on the member.
func ToErrorObject(f apis.Fact) apis.ErrorObject {
	obj := apis.ErrorObject{
		Code:   string(f.Code),
		Status: strconv.Itoa(f.Status),
		Title:  f.Title,
		Detail: f.Detail,
		Meta:   make(map[string]any, len(f.Meta)),
	}
	if f.Pointer != pointer.Empty {
		obj.Source = &apis.Source{Pointer: f.Pointer.String()}
	}
	maps.Copy(obj.Meta, f.Meta)
	return obj
}

// ToDocument formats every fact, preserving order, into a single document.
// A document without facts still carries an empty, non-nil errors list.
func ToDocument(facts ...apis.Fact) apis.Document {
	doc := apis.Document{Errors: make([]apis.ErrorObject, 0, len(facts))}
	for _, f := range facts {
		doc.Errors = append(doc.Errors, ToErrorObject(f))
	}
	return doc
}
