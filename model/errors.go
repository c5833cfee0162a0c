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
	"slices"

	"dirpx.dev/errorable/apis"
)

// Base is the field name of failures that concern the object as a whole.
const Base = "base"

// Errors is an ordered set of field failures. The zero value is empty and
// ready to use. Embed it to make a type apis.Validatable.
type Errors struct {
	fields []apis.FieldFailures
}

var _ apis.Validatable = (*Errors)(nil)

// Add appends a failure for field. Fields keep the position of their first
// failure.
func (e *Errors) Add(field, message, code string) *Errors {
	f := apis.Failure{Message: message, Code: code}
	for i := range e.fields {
		if e.fields[i].Field == field {
			e.fields[i].Failures = append(e.fields[i].Failures, f)
			return e
		}
	}
	e.fields = append(e.fields, apis.FieldFailures{Field: field, Failures: []apis.Failure{f}})
	return e
}

// AddBase appends a failure for the object as a whole.
func (e *Errors) AddBase(message, code string) *Errors {
	return e.Add(Base, message, code)
}

// Merge appends every failure of other.
func (e *Errors) Merge(other []apis.FieldFailures) *Errors {
	for _, ff := range other {
		for _, f := range ff.Failures {
			e.Add(ff.Field, f.Message, f.Code)
		}
	}
	return e
}

// On returns the failures recorded for field.
func (e *Errors) On(field string) []apis.Failure {
	for _, ff := range e.fields {
		if ff.Field == field {
			return slices.Clone(ff.Failures)
		}
	}
	return nil
}

// Len returns the total number of failures.
func (e *Errors) Len() int {
	n := 0
	for _, ff := range e.fields {
		n += len(ff.Failures)
	}
	return n
}

// Empty reports whether no failure was recorded.
func (e *Errors) Empty() bool { return e.Len() == 0 }

// Clear drops every failure.
func (e *Errors) Clear() { e.fields = nil }

// ValidationErrors returns a copy of the failures in recording order.
func (e *Errors) ValidationErrors() []apis.FieldFailures {
	out := make([]apis.FieldFailures, len(e.fields))
	for i, ff := range e.fields {
		out[i] = apis.FieldFailures{Field: ff.Field, Failures: slices.Clone(ff.Failures)}
	}
	return out
}
