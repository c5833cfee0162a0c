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

// Package code maps numeric HTTP statuses to their symbolic names.
//
// The symbolic name ends up in the "code" member of every error object, e.g.
// 404 becomes "not_found" and 422 becomes "unprocessable_entity". Names are:
//
//   - lowercased;
//   - underscore-separated;
//   - stable across releases, so clients may switch on them.
//
// The table is fixed. A status without an entry (418, for example) has no
// symbolic name, and ForStatus reports that with ok == false rather than
// inventing one.
package code
