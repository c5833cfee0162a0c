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

// Package ginx plugs errorable into gin.
//
//	r := gin.New()
//	r.Use(ginx.Middleware(h))
//	r.POST("/users", func(c *gin.Context) {
//		if err := create(c); err != nil {
//			_ = c.Error(err)
//		}
//	})
//
// Middleware handles the last error attached with c.Error and any panic.
// With handling disabled it leaves c.Errors to gin and re-raises panics.
package ginx

import (
	"encoding/json"
	"net/http"

	"dirpx.dev/errorable"
	"dirpx.dev/errorable/httpx"
	"dirpx.dev/errorable/stacktrace"
	"github.com/gin-gonic/gin"
)

// Middleware returns gin middleware that writes handled errors through h.
func Middleware(h *errorable.Handler) gin.HandlerFunc {
	if h == nil {
		h = errorable.New(nil)
	}
	return func(c *gin.Context) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			resp, err := h.Dispatch(c.Request.Context(), stacktrace.Recovered(v, 0))
			if err != nil {
				panic(v)
			}
			abort(c, resp)
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		resp, err := h.Dispatch(c.Request.Context(), c.Errors.Last().Err)
		if err != nil || resp.IsZero() {
			return
		}
		abort(c, resp)
	}
}

// RenderErrorsFor writes the validation failures of obj as a 422 document
// and aborts the chain.
func RenderErrorsFor(c *gin.Context, h *errorable.Handler, obj any, rel httpx.Relationships) error {
	tree, err := rel.Resolve(c.Request)
	if err != nil {
		return err
	}
	abort(c, h.RenderErrorsFor(obj, tree))
	return nil
}

func abort(c *gin.Context, resp errorable.Response) {
	body, err := json.Marshal(resp.Document)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(resp.Status, resp.ContentType(), body)
	c.Abort()
}
