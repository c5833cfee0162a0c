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
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"
)

const tagName = "jsonapi"

// Tag kinds, following the jsonapi:"<kind>,<name>" convention.
const (
	kindPrimary  = "primary"
	kindAttr     = "attr"
	kindRelation = "relation"
	kindClientID = "client-id"
)

// structInfo is the cached tag layout of one struct type.
type structInfo struct {
	typeName  string
	primary   []int
	clientID  []int
	attrs     map[string][]int
	relations map[string][]int
	relOrder  []string
}

var infoCache sync.Map // reflect.Type -> *structInfo

func infoFor(t reflect.Type) *structInfo {
	if v, ok := infoCache.Load(t); ok {
		return v.(*structInfo)
	}
	info := buildInfo(t)
	v, _ := infoCache.LoadOrStore(t, info)
	return v.(*structInfo)
}

func buildInfo(t reflect.Type) *structInfo {
	info := &structInfo{
		attrs:     map[string][]int{},
		relations: map[string][]int{},
	}
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		tag, hasTag := f.Tag.Lookup(tagName)
		if tag == "-" {
			continue
		}
		kind, name, _ := strings.Cut(tag, ",")
		name, _, _ = strings.Cut(name, ",")

		switch {
		case hasTag && kind == kindPrimary:
			info.primary = f.Index
			info.typeName = name
		case hasTag && kind == kindClientID:
			info.clientID = f.Index
		case hasTag && kind == kindRelation:
			if name == "" {
				name = strcase.ToSnake(f.Name)
			}
			if _, dup := info.relations[name]; !dup {
				info.relOrder = append(info.relOrder, name)
			}
			info.relations[name] = f.Index
		case hasTag && kind == kindAttr:
			if name == "" {
				name = strcase.ToSnake(f.Name)
			}
			info.attrs[name] = f.Index
		default:
			// untagged exported fields are still properties of the object
			snake := strcase.ToSnake(f.Name)
			if _, ok := info.attrs[snake]; !ok {
				info.attrs[snake] = f.Index
			}
			if js := jsonName(f); js != "" {
				if _, ok := info.attrs[js]; !ok {
					info.attrs[js] = f.Index
				}
			}
		}
	}
	if info.typeName == "" {
		info.typeName = TypeName(t.Name())
	}
	return info
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// indirect dereferences pointers down to a struct value.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid() && v.Kind() == reflect.Struct
}

// field returns the struct field at index, or false when an embedded nil
// pointer is on the path.
func field(v reflect.Value, index []int) (reflect.Value, bool) {
	if index == nil {
		return reflect.Value{}, false
	}
	f, err := v.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, false
	}
	return f, true
}

// identifier renders an id-like field; zero values mean "no id".
func identifier(v reflect.Value) string {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.IsZero() {
		return ""
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v.Interface())
}

// related flattens a relationship field into the objects it holds. Pointers
// to addressable values are returned so pointer-receiver methods stay
// reachable.
func related(v reflect.Value) []any {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return []any{v.Interface()}
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			out = append(out, related(v.Index(i))...)
		}
		return out
	case reflect.Struct:
		if v.CanAddr() {
			return []any{v.Addr().Interface()}
		}
		return []any{v.Interface()}
	default:
		return nil
	}
}
