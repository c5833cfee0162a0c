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

package errorable

import (
	"context"
	"maps"

	"dirpx.dev/errorable/adapter"
	"dirpx.dev/errorable/apis"
	"dirpx.dev/errorable/code"
	"dirpx.dev/errorable/logging"
	"dirpx.dev/errorable/payload"
	"dirpx.dev/errorable/policy"
	"dirpx.dev/errorable/registry"
	"dirpx.dev/errorable/stacktrace"
	"dirpx.dev/errorable/validation"
	"go.opentelemetry.io/otel/trace"
)

// Response is the outcome of handling: the status and document to write.
type Response struct {
	Status   int
	Document apis.Document
}

// ContentType returns the JSON:API media type.
func (Response) ContentType() string { return apis.ContentType }

// IsZero reports whether r carries nothing to write.
func (r Response) IsZero() bool { return r.Status == 0 }

// Observer is notified after every handled error and every validation
// render. Observers must not block.
type Observer interface {
	ObserveDispatch(typeName string, status int, registered bool)
	ObserveValidation(status int, facts []apis.Fact)
}

// Handler dispatches errors against one registry.
type Handler struct {
	reg       *registry.Registry
	state     *State
	fallback  apis.Policy
	observers []Observer
}

// Option configures a Handler.
type Option func(*Handler)

// WithState makes the handler read the enabled flag, log sink and cleaner
// from s instead of DefaultState.
func WithState(s *State) Option {
	return func(h *Handler) {
		if s != nil {
			h.state = s
		}
	}
}

// WithFallback replaces the policy used for unregistered errors.
func WithFallback(p apis.Policy) Option {
	return func(h *Handler) {
		if p != nil {
			h.fallback = p
		}
	}
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(h *Handler) {
		if o != nil {
			h.observers = append(h.observers, o)
		}
	}
}

// New returns a handler for reg. A nil registry handles every error with the
// fallback policy.
func New(reg *registry.Registry, opts ...Option) *Handler {
	if reg == nil {
		reg = registry.MustNew()
	}
	h := &Handler{reg: reg, state: defaultState, fallback: policy.New()}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Registry returns the handler's registry.
func (h *Handler) Registry() *registry.Registry { return h.reg }

// State returns the state the handler reads.
func (h *Handler) State() *State { return h.state }

// Fallback returns the policy for unregistered errors.
func (h *Handler) Fallback() apis.Policy { return h.fallback }

// Explain describes how err would be handled.
func (h *Handler) Explain(err error) string {
	inner, _ := stacktrace.Detach(err)
	return h.reg.Explain(inner, h.fallback)
}

// Dispatch handles err. When handling is disabled it returns err itself and
// does nothing else; otherwise the error is consumed and the returned error
// is nil. A nil err yields a zero Response.
//
// Policy hooks run unguarded: a panicking hook is a configuration bug and
// propagates. A panicking log sink is swallowed.
func (h *Handler) Dispatch(ctx context.Context, err error) (Response, error) {
	if h.state.IsDisabled() {
		return Response{}, err
	}
	if err == nil {
		return Response{}, nil
	}

	stack := stacktrace.Extract(err)
	inner, _ := stacktrace.Detach(err)
	typeName := registry.TypeName(inner)

	p, registered := h.reg.Resolve(inner)
	if !registered {
		p = h.fallback
	}

	var backtrace []string
	if p.LogEnabled() || h.reveal(p) {
		backtrace = h.state.Cleaner().Clean(stack).Lines()
	}
	if p.LogEnabled() {
		h.log(ctx, typeName, inner, backtrace)
	}

	status := p.StatusCode(inner)
	c, _ := code.ForStatus(status)

	meta := maps.Clone(p.Meta(inner))
	if meta == nil {
		meta = map[string]any{}
	}
	if h.reveal(p) {
		if backtrace == nil {
			backtrace = []string{}
		}
		meta[policy.RawErrorKey] = map[string]any{
			"message":   inner.Error(),
			"backtrace": backtrace,
		}
	}

	doc := adapter.ToDocument(apis.Fact{
		Code:   c,
		Status: status,
		Title:  p.Title(),
		Detail: p.Detail(inner),
		Meta:   meta,
	})

	for _, o := range h.observers {
		o.ObserveDispatch(typeName, status, registered)
	}
	return Response{Status: status, Document: doc}, nil
}

func (h *Handler) reveal(p apis.Policy) bool {
	if h.state.RevealRawError() {
		return true
	}
	r, ok := p.(apis.RawErrorRevealer)
	return ok && r.RevealRawError()
}

func (h *Handler) log(ctx context.Context, typeName string, err error, backtrace []string) {
	msg := err.Error()
	kv := []any{"type", typeName, "message", msg}
	if len(backtrace) > 0 {
		kv = append(kv, "backtrace", backtrace)
	}
	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			kv = append(kv, "trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
		}
	}
	// logging must never block the response
	_ = logging.Emit(h.state.Logger(), logging.Headline(typeName, msg), kv...)
}

// RenderErrorsFor formats the validation failures of obj and of the related
// objects in tree as a 422 response. A nil tree walks no relationships.
func (h *Handler) RenderErrorsFor(obj any, tree *payload.Tree) Response {
	facts := validation.Aggregate(obj, tree, nil)
	for _, o := range h.observers {
		o.ObserveValidation(validation.Status, facts)
	}
	return Response{Status: validation.Status, Document: adapter.ToDocument(facts...)}
}
