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

package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"dirpx.dev/errorable"
	"dirpx.dev/errorable/stacktrace"
)

// Writer is a thin adapter that writes dispatch output to an
// http.ResponseWriter.
type Writer struct {
	Handler *errorable.Handler
}

func (w Writer) handler() *errorable.Handler {
	if w.Handler == nil {
		return errorable.New(nil)
	}
	return w.Handler
}

// Write dispatches err and writes the resulting document. When handling is
// disabled nothing is written and err is returned.
func (w Writer) Write(rw http.ResponseWriter, r *http.Request, err error) error {
	resp, err := w.handler().Dispatch(r.Context(), err)
	if err != nil {
		return err
	}
	if resp.IsZero() {
		return nil
	}
	WriteResponse(rw, resp)
	return nil
}

// RenderErrorsFor writes the validation failures of obj as a 422 document.
// rel selects the relationship payload to walk. It returns only errors
// from reading the request payload.
func (w Writer) RenderErrorsFor(rw http.ResponseWriter, r *http.Request, obj any, rel Relationships) error {
	tree, err := rel.Resolve(r)
	if err != nil {
		return err
	}
	WriteResponse(rw, w.handler().RenderErrorsFor(obj, tree))
	return nil
}

// WriteResponse writes resp with the JSON:API content type.
func WriteResponse(rw http.ResponseWriter, resp errorable.Response) {
	rw.Header().Set("Content-Type", resp.ContentType())
	rw.WriteHeader(resp.Status)
	_ = json.NewEncoder(rw).Encode(resp.Document)
}

// HandlerFunc is an http.HandlerFunc that can fail.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Handle adapts fn to http.Handler, writing its errors through w.
func (w Writer) Handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		err := fn(rw, r)
		if err == nil {
			return
		}
		if err := w.Write(rw, r, err); err != nil {
			http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

// Middleware recovers panics in next and writes them as errors. Panics with
// http.ErrAbortHandler, and all panics while handling is disabled, are
// re-raised.
func (w Writer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(v)
			}
			if err := w.Write(rw, r, stacktrace.Recovered(v, 0)); err != nil {
				panic(v)
			}
		}()
		next.ServeHTTP(rw, r)
	})
}
