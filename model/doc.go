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

// Package model adapts application objects to the capabilities the
// validation aggregator consumes (apis.Resource).
//
// Describe prefers the capability interfaces of package apis. Anything an
// object does not implement is derived from jsonapi struct tags:
//
//	type Post struct {
//		ID       int        `jsonapi:"primary,posts"`
//		TempID   string     `jsonapi:"client-id"`
//		Title    string     `jsonapi:"attr,title"`
//		Author   *User      `jsonapi:"relation,author"`
//		Comments []*Comment `jsonapi:"relation,comments"`
//
//		model.Errors
//	}
//
// Errors is an ordered collection of field failures that objects embed to
// become apis.Validatable. FromValidator converts the output of
// github.com/go-playground/validator into the same shape, with messages and
// codes in the conventional "can't be blank" / "blank" style.
package model
