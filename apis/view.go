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

// ErrorObject is a single JSON:API error object as it goes over the wire.
//
// Field order is significant: existing consumers compare documents textually,
// so members are emitted as code, status, title, detail, source, meta.
type ErrorObject struct {
	// Code is the symbolic status name, e.g. "not_found". Omitted when the
	// status has no symbolic name.
	Code string `json:"code,omitempty" yaml:"code,omitempty"`

	// Status is the HTTP status code as a decimal string.
	Status string `json:"status" yaml:"status"`

	// Title is a short, human-readable summary of the problem.
	Title string `json:"title" yaml:"title"`

	// Detail is a human-readable explanation of this occurrence.
	Detail string `json:"detail" yaml:"detail"`

	// Source points at the offending member. Omitted for errors that are not
	// attributable to one member.
	Source *Source `json:"source,omitempty" yaml:"source,omitempty"`

	// Meta holds non-standard members. It is always present, possibly empty.
	Meta map[string]any `json:"meta" yaml:"meta"`
}

// Source locates the cause of an error inside the request document.
type Source struct {
	// Pointer is a JSON Pointer such as "/data/attributes/username".
	Pointer string `json:"pointer,omitempty" yaml:"pointer,omitempty"`
}

// Document is the top-level error document: {"errors": [...]}.
type Document struct {
	Errors []ErrorObject `json:"errors" yaml:"errors"`
}

// ContentType is the media type of JSON:API documents.
const ContentType = "application/vnd.api+json"
