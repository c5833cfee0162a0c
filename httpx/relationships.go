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
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"

	"dirpx.dev/errorable/payload"
)

// Relationships selects the relationship payload RenderErrorsFor walks.
// The zero value derives it from the request document.
type Relationships struct {
	tree *payload.Tree
	mode relMode
}

type relMode int

const (
	relFromRequest relMode = iota
	relNone
	relTree
)

// FromRequest derives the tree from the request's JSON:API document, as
// captured by Capture.
func FromRequest() Relationships { return Relationships{} }

// NoRelationships walks no relationships.
func NoRelationships() Relationships { return Relationships{mode: relNone} }

// Tree walks t.
func Tree(t *payload.Tree) Relationships { return Relationships{tree: t, mode: relTree} }

// Resolve returns the tree selected by rel for r.
func (rel Relationships) Resolve(r *http.Request) (*payload.Tree, error) {
	switch rel.mode {
	case relNone:
		return nil, nil
	case relTree:
		return rel.tree, nil
	}
	body, ok := Body(r.Context())
	if !ok || len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	return payload.FromDocument(body)
}

type bodyKey struct{}

// MaxBody bounds the request bodies Capture buffers.
const MaxBody = 4 << 20

// Capture buffers JSON request bodies up to MaxBody so that the relationship
// payload can be read after the handler consumed r.Body. Larger bodies are
// handed to next intact but not buffered; FromRequest then finds no payload.
func Capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.Body == nil || !isJSON(r.Header.Get("Content-Type")) {
			next.ServeHTTP(rw, r)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, MaxBody+1))
		if err != nil {
			_ = r.Body.Close()
			http.Error(rw, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if len(body) > MaxBody {
			r.Body = struct {
				io.Reader
				io.Closer
			}{io.MultiReader(bytes.NewReader(body), r.Body), r.Body}
			next.ServeHTTP(rw, r)
			return
		}
		_ = r.Body.Close()
		r = r.WithContext(context.WithValue(r.Context(), bodyKey{}, body))
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(rw, r)
	})
}

// Body returns the request body buffered by Capture.
func Body(ctx context.Context) ([]byte, bool) {
	b, ok := ctx.Value(bodyKey{}).([]byte)
	return b, ok
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/vnd.api+json" || mt == "application/json"
}
