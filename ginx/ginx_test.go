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

package ginx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dirpx.dev/errorable"
	"dirpx.dev/errorable/apis"
	"dirpx.dev/errorable/httpx"
	"dirpx.dev/errorable/logging"
	"dirpx.dev/errorable/model"
	"dirpx.dev/errorable/policy"
	"dirpx.dev/errorable/registry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type conflictError struct{}

func (conflictError) Error() string { return "version mismatch" }

func setup(t *testing.T) (*gin.Engine, *errorable.Handler, *errorable.State) {
	t.Helper()
	s := errorable.NewState()
	s.SetLogger(logging.Nop())
	h := errorable.New(
		registry.MustNew(registry.WithException(conflictError{}, policy.WithStatus(http.StatusConflict))),
		errorable.WithState(s),
	)
	r := gin.New()
	r.Use(Middleware(h))
	r.GET("/conflict", func(c *gin.Context) { _ = c.Error(conflictError{}) })
	r.GET("/panic", func(*gin.Context) { panic(errors.New("boom")) })
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "fine") })
	return r, h, s
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) apis.Document {
	t.Helper()
	assert.Equal(t, apis.ContentType, rec.Header().Get("Content-Type"))
	var doc apis.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	return doc
}

func TestMiddleware_ContextErrors(t *testing.T) {
	t.Parallel()

	r, _, _ := setup(t)
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decode(t, rec).Errors[0].Code)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())
}

func TestMiddleware_Panic(t *testing.T) {
	t.Parallel()

	r, _, s := setup(t)
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, policy.DefaultDetail, decode(t, rec).Errors[0].Detail)

	s.Disable()
	assert.Panics(t, func() { serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil)) })
}

func TestMiddleware_Disabled(t *testing.T) {
	t.Parallel()

	r, _, s := setup(t)
	s.Disable()
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "gin's own default for unwritten responses")
	assert.NotEqual(t, apis.ContentType, rec.Header().Get("Content-Type"))
}

type widget struct {
	Name string `jsonapi:"attr,name"`
	model.Errors
}

func TestRenderErrorsFor(t *testing.T) {
	t.Parallel()

	r, h, _ := setup(t)
	r.POST("/widgets", func(c *gin.Context) {
		w := &widget{}
		w.Add("name", "can't be blank", "blank")
		require.NoError(t, RenderErrorsFor(c, h, w, httpx.NoRelationships()))
	})

	req := httptest.NewRequest(http.MethodPost, "/widgets", strings.NewReader(`{}`))
	rec := serve(r, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	doc := decode(t, rec)
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, "/data/attributes/name", doc.Errors[0].Source.Pointer)
}
