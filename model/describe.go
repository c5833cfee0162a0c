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
	"reflect"

	"dirpx.dev/errorable/apis"
)

// Describe returns the aggregator's view of obj. Capability interfaces
// implemented by obj win over struct tags. A nil obj describes an object
// with no validation concept.
func Describe(obj any) apis.Resource {
	if r, ok := obj.(apis.Resource); ok {
		return r
	}
	d := &described{obj: obj}
	if v, ok := indirect(reflect.ValueOf(obj)); ok {
		d.v = v
		d.info = infoFor(v.Type())
	}
	return d
}

type described struct {
	obj  any
	v    reflect.Value
	info *structInfo
}

func (d *described) Object() any { return d.obj }

func (d *described) ValidationErrors() ([]apis.FieldFailures, bool) {
	if v, ok := d.obj.(apis.Validatable); ok {
		return v.ValidationErrors(), true
	}
	return nil, false
}

func (d *described) IsRelationship(name string) bool {
	if r, ok := d.obj.(apis.Reflector); ok {
		return r.IsRelationship(name)
	}
	if d.info == nil {
		return false
	}
	_, ok := d.info.relations[name]
	return ok
}

func (d *described) HasAttribute(name string) bool {
	if r, ok := d.obj.(apis.Reflector); ok {
		return r.HasAttribute(name)
	}
	if d.info == nil {
		return false
	}
	_, ok := d.info.attrs[name]
	return ok
}

func (d *described) FullMessage(field, message string) string {
	if m, ok := d.obj.(apis.FullMessager); ok {
		return m.FullMessage(field, message)
	}
	return FullMessage(field, message)
}

func (d *described) Related(name string) []any {
	if p, ok := d.obj.(apis.RelatedProvider); ok {
		return p.Related(name)
	}
	if d.info == nil {
		return nil
	}
	f, ok := field(d.v, d.info.relations[name])
	if !ok {
		return nil
	}
	return related(f)
}

func (d *described) ID() string {
	if i, ok := d.obj.(apis.Identifiable); ok {
		return i.ResourceID()
	}
	if d.info == nil {
		return ""
	}
	if f, ok := field(d.v, d.info.primary); ok {
		return identifier(f)
	}
	return ""
}

func (d *described) TempID() string {
	if i, ok := d.obj.(apis.TempIdentifiable); ok {
		return i.ResourceTempID()
	}
	if d.info == nil {
		return ""
	}
	if f, ok := field(d.v, d.info.clientID); ok {
		return identifier(f)
	}
	return ""
}

func (d *described) Type() string {
	if t, ok := d.obj.(apis.Typed); ok {
		return t.ResourceType()
	}
	if d.info == nil {
		return ""
	}
	return d.info.typeName
}

// Relationships returns the tagged relationship names of obj in declaration
// order.
func Relationships(obj any) []string {
	v, ok := indirect(reflect.ValueOf(obj))
	if !ok {
		return nil
	}
	return append([]string(nil), infoFor(v.Type()).relOrder...)
}
