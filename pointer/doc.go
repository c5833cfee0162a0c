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

// Package pointer defines the optional "source.pointer" member of a JSON:API
// error object.
//
// A pointer locates the part of the request document that an error concerns:
//
//   - "/data/attributes/username"
//   - "/data/relationships/pets"
//
// Pointer is intentionally optional: the zero value ("") is allowed and means
// the error is not attributable to a single member, as with whole-object
// ("base") validation failures. Emitters omit the member in that case.
package pointer
