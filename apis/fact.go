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

import (
	"dirpx.dev/errorable/code"
	"dirpx.dev/errorable/pointer"
)

// Fact is one normalized error entry, produced by the dispatcher for a raised
// error or by the validation aggregator for a field failure.
//
// Facts are transient values. They are formatted into ErrorObject right
// before the document is written and are never stored.
type Fact struct {
	// Code is the symbolic status name. Empty when the status table has no
	// entry for Status.
	Code code.Code

	// Status is the numeric HTTP status.
	Status int

	// Title is a short summary that does not change between occurrences.
	Title string

	// Detail is the occurrence-specific explanation.
	Detail string

	// Pointer locates the offending member of the request document.
	// pointer.Empty means the fact is not attributable.
	Pointer pointer.Pointer

	// Meta carries non-standard members. Validation facts that come from a
	// related object nest everything under a "relationship" key.
	Meta map[string]any
}
