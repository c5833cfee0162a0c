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

// Package echox plugs errorable into echo.
//
//	e := echo.New()
//	e.HTTPErrorHandler = echox.ErrorHandler(h, e.DefaultHTTPErrorHandler)
//
// Errors returned by handlers are dispatched through h. While handling is
// disabled they go to the fallback handler instead, normally echo's own.
// RegisterHTTPError teaches a registry to honor the status carried by
// *echo.HTTPError, which the router returns for unknown routes.
package echox

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/errorable"
	"dirpx.dev/errorable/apis"
	"dirpx.dev/errorable/httpx"
	"dirpx.dev/errorable/policy"
	"dirpx.dev/errorable/registry"
	"github.com/labstack/echo/v4"
)

// ErrorHandler returns an echo.HTTPErrorHandler writing documents through h.
func ErrorHandler(h *errorable.Handler, fallback echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	if h == nil {
		h = errorable.New(nil)
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		resp, err := h.Dispatch(c.Request().Context(), err)
		if err != nil {
			if fallback != nil {
				fallback(err, c)
			}
			return
		}
		if resp.IsZero() {
			return
		}
		_ = write(c, resp)
	}
}

// RenderErrorsFor writes the validation failures of obj as a 422 document.
func RenderErrorsFor(c echo.Context, h *errorable.Handler, obj any, rel httpx.Relationships) error {
	tree, err := rel.Resolve(c.Request())
	if err != nil {
		return err
	}
	return write(c, h.RenderErrorsFor(obj, tree))
}

func write(c echo.Context, resp errorable.Response) error {
	body, err := json.Marshal(resp.Document)
	if err != nil {
		return err
	}
	return c.Blob(resp.Status, resp.ContentType(), body)
}

// httpErrorPolicy reads status and detail from *echo.HTTPError.
type httpErrorPolicy struct {
	*policy.Default
}

func (p httpErrorPolicy) StatusCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok && he.Code != 0 {
		return he.Code
	}
	return p.Default.StatusCode(err)
}

func (p httpErrorPolicy) Detail(err error) string {
	if he, ok := err.(*echo.HTTPError); ok && he.Message != nil {
		return fmt.Sprint(he.Message)
	}
	return p.Default.Detail(err)
}

// RegisterHTTPError registers *echo.HTTPError on reg. Its status and
// message become the response status and detail; opts configure the rest.
// Logging is off unless opts turn it on.
func RegisterHTTPError(reg *registry.Registry, opts ...policy.Option) error {
	opts = append([]policy.Option{policy.WithLog(false)}, opts...)
	opts = append(opts, policy.WithHandler(func(o policy.Options) apis.Policy {
		return httpErrorPolicy{policy.NewDefault(o)}
	}))
	return registry.RegisterType[*echo.HTTPError](reg, opts...)
}
