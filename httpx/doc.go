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

// Package httpx writes errorable responses with net/http.
//
// Writer turns a raised error or a failed validation into a JSON:API error
// document. Middleware recovers panics through the same path, and Handle
// adapts error-returning handlers:
//
//	w := httpx.Writer{Handler: errorable.New(reg)}
//	mux.Handle("/users", w.Middleware(httpx.Capture(w.Handle(createUser))))
//
//	func createUser(rw http.ResponseWriter, r *http.Request) error {
//		u, err := decode(r)
//		if err != nil {
//			return err
//		}
//		if !u.Valid() {
//			return w.RenderErrorsFor(rw, r, u, httpx.FromRequest())
//		}
//		...
//	}
//
// When handling is disabled the original failure goes to net/http's own
// defaults: panics are re-raised and returned errors become a plain 500.
package httpx
