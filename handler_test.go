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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"dirpx.dev/errorable/apis"
	"dirpx.dev/errorable/logging"
	"dirpx.dev/errorable/model"
	"dirpx.dev/errorable/policy"
	"dirpx.dev/errorable/registry"
	"dirpx.dev/errorable/stacktrace"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

type mockLogger struct{ mock.Mock }

func (m *mockLogger) Error(msg any, keyvals ...any) { m.Called(msg, keyvals) }

// keyvals returns the keyvals of the i-th logged entry as a map.
func (m *mockLogger) keyvals(t *testing.T, i int) map[string]any {
	t.Helper()
	require.Greater(t, len(m.Calls), i)
	kv := m.Calls[i].Arguments.Get(1).([]any)
	out := map[string]any{}
	for j := 0; j+1 < len(kv); j += 2 {
		out[kv[j].(string)] = kv[j+1]
	}
	return out
}

type mockObserver struct{ mock.Mock }

func (m *mockObserver) ObserveDispatch(typeName string, status int, registered bool) {
	m.Called(typeName, status, registered)
}

func (m *mockObserver) ObserveValidation(status int, facts []apis.Fact) {
	m.Called(status, facts)
}

type notFoundError struct{ what string }

func (e *notFoundError) Error() string { return e.what + " not found" }

type movedError struct{}

func (movedError) Error() string { return "moved" }

type redirectError struct{}

func (redirectError) Error() string { return "go elsewhere" }

type quotaError struct{ limit int }

func (e quotaError) Error() string { return fmt.Sprintf("quota of %d reached", e.limit) }

type found struct{ *policy.Default }

func (found) StatusCode(error) int { return http.StatusFound }

func newHandler(t *testing.T, opts ...registry.Option) (*Handler, *mockLogger, *State) {
	t.Helper()
	l := &mockLogger{}
	l.On("Error", mock.Anything, mock.Anything).Return()
	s := NewState()
	s.SetLogger(l)
	reg, err := registry.New(opts...)
	require.NoError(t, err)
	return New(reg, WithState(s)), l, s
}

func TestDispatch_Unregistered(t *testing.T) {
	t.Parallel()

	h, l, _ := newHandler(t)
	resp, err := h.Dispatch(context.Background(), errors.New("db exploded"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "application/vnd.api+json", resp.ContentType())
	require.Len(t, resp.Document.Errors, 1)
	e := resp.Document.Errors[0]
	assert.Equal(t, "internal_server_error", e.Code)
	assert.Equal(t, "500", e.Status)
	assert.Equal(t, "Error", e.Title)
	assert.Equal(t, policy.DefaultDetail, e.Detail)
	assert.Nil(t, e.Source)
	assert.Equal(t, map[string]any{}, e.Meta)

	l.AssertNumberOfCalls(t, "Error", 1)
	assert.Contains(t, fmt.Sprint(l.Calls[0].Arguments.Get(0)), "ERROR: *errors.errorString: db exploded")
	kv := l.keyvals(t, 0)
	assert.Equal(t, "*errors.errorString", kv["type"])
	assert.Equal(t, "db exploded", kv["message"])
}

func TestDispatch_StatusAndCode(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t,
		registry.WithException(movedError{}, policy.WithStatus(http.StatusMovedPermanently)),
		registry.WithException(redirectError{}, policy.WithHandler(func(o policy.Options) apis.Policy {
			return found{policy.NewDefault(o)}
		})),
		registry.WithException(quotaError{}, policy.WithStatus(http.StatusTeapot)),
	)

	resp, err := h.Dispatch(context.Background(), movedError{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusMovedPermanently, resp.Status)
	assert.Equal(t, "moved_permanently", resp.Document.Errors[0].Code)

	resp, err = h.Dispatch(context.Background(), redirectError{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "found", resp.Document.Errors[0].Code)
	assert.Equal(t, "302", resp.Document.Errors[0].Status)

	resp, err = h.Dispatch(context.Background(), quotaError{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.Status)
	assert.Empty(t, resp.Document.Errors[0].Code, "no symbolic name for 418")
}

func TestDispatch_LogDisabled(t *testing.T) {
	t.Parallel()

	h, l, _ := newHandler(t, registry.WithException(movedError{}, policy.WithLog(false)))
	_, err := h.Dispatch(context.Background(), movedError{})
	require.NoError(t, err)
	l.AssertNotCalled(t, "Error", mock.Anything, mock.Anything)
}

func TestDispatch_Detail(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t,
		registry.WithException(&notFoundError{}, policy.WithRawMessage()),
		registry.WithException(quotaError{}, policy.WithMessageFunc(func(err error) string {
			return fmt.Sprintf("limit is %d", err.(quotaError).limit)
		})),
		registry.WithException(movedError{}, policy.WithMessage("see Location")),
	)

	resp, _ := h.Dispatch(context.Background(), &notFoundError{what: "user 7"})
	assert.Equal(t, "user 7 not found", resp.Document.Errors[0].Detail)

	resp, _ = h.Dispatch(context.Background(), quotaError{limit: 3})
	assert.Equal(t, "limit is 3", resp.Document.Errors[0].Detail)

	resp, _ = h.Dispatch(context.Background(), movedError{})
	assert.Equal(t, "see Location", resp.Document.Errors[0].Detail)
}

func TestDispatch_Meta(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t, registry.WithException(quotaError{}, policy.WithMeta(func(err error) map[string]any {
		return map[string]any{"limit": err.(quotaError).limit}
	})))

	resp, _ := h.Dispatch(context.Background(), quotaError{limit: 3})
	assert.Equal(t, map[string]any{"limit": 3}, resp.Document.Errors[0].Meta)
}

func TestDispatch_RevealRawError(t *testing.T) {
	t.Parallel()

	h, _, s := newHandler(t, registry.WithException(movedError{}, policy.WithRawError(true)))
	s.SetCleaner(nil)

	resp, _ := h.Dispatch(context.Background(), movedError{})
	raw, ok := resp.Document.Errors[0].Meta[policy.RawErrorKey].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "moved", raw["message"])
	assert.Equal(t, []string{}, raw["backtrace"])

	resp, _ = h.Dispatch(context.Background(), pkgerrors.New("with stack"))
	assert.NotContains(t, resp.Document.Errors[0].Meta, policy.RawErrorKey)

	s.SetRevealRawError(true)
	resp, _ = h.Dispatch(context.Background(), pkgerrors.New("with stack"))
	raw, ok = resp.Document.Errors[0].Meta[policy.RawErrorKey].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "with stack", raw["message"])
	lines := raw["backtrace"].([]string)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "TestDispatch_RevealRawError")
}

// sharedMetaPolicy hands out the same map on every call.
type sharedMetaPolicy struct {
	*policy.Default
	meta map[string]any
}

func (p sharedMetaPolicy) Meta(error) map[string]any { return p.meta }

func TestDispatch_RawErrorDoesNotLeakIntoPolicyMeta(t *testing.T) {
	t.Parallel()

	shared := map[string]any{"k": "v"}
	h, _, s := newHandler(t, registry.WithPolicy(movedError{}, sharedMetaPolicy{
		Default: policy.NewDefault(policy.Defaults()),
		meta:    shared,
	}))

	s.SetRevealRawError(true)
	resp, _ := h.Dispatch(context.Background(), movedError{})
	assert.Contains(t, resp.Document.Errors[0].Meta, policy.RawErrorKey)
	assert.Equal(t, map[string]any{"k": "v"}, shared)

	s.SetRevealRawError(false)
	resp, _ = h.Dispatch(context.Background(), movedError{})
	assert.Equal(t, map[string]any{"k": "v"}, resp.Document.Errors[0].Meta)
}

func TestDispatch_BacktraceLogged(t *testing.T) {
	t.Parallel()

	h, l, _ := newHandler(t)
	_, _ = h.Dispatch(context.Background(), pkgerrors.New("with stack"))

	kv := l.keyvals(t, 0)
	lines, ok := kv["backtrace"].([]string)
	require.True(t, ok)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "TestDispatch_BacktraceLogged")
	for _, line := range lines {
		assert.False(t, strings.Contains(line, "testing.tRunner"), "default cleaner silences the test runner")
	}
}

func TestDispatch_AttachedStackIsTransparent(t *testing.T) {
	t.Parallel()

	h, l, _ := newHandler(t, registry.WithException(movedError{}, policy.WithStatus(http.StatusMovedPermanently)))
	err := stacktrace.Attach(movedError{}, stacktrace.Capture(0))

	resp, dispatchErr := h.Dispatch(context.Background(), err)
	require.NoError(t, dispatchErr)
	assert.Equal(t, http.StatusMovedPermanently, resp.Status)
	assert.Equal(t, "errorable.movedError", l.keyvals(t, 0)["type"])
}

func TestDispatch_Disabled(t *testing.T) {
	t.Parallel()

	h, l, s := newHandler(t)
	s.Disable()
	require.True(t, s.IsDisabled())

	raised := &notFoundError{what: "user"}
	resp, err := h.Dispatch(context.Background(), raised)
	assert.True(t, resp.IsZero())
	assert.Same(t, raised, err)
	l.AssertNotCalled(t, "Error", mock.Anything, mock.Anything)

	s.Enable()
	resp, err = h.Dispatch(context.Background(), raised)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestDispatch_NilError(t *testing.T) {
	t.Parallel()

	h, l, _ := newHandler(t)
	resp, err := h.Dispatch(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, resp.IsZero())
	l.AssertNotCalled(t, "Error", mock.Anything, mock.Anything)
}

type panickySink struct{}

func (panickySink) Error(any, ...any) { panic("sink down") }

func TestDispatch_PanickingSink(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.SetLogger(panickySink{})
	h := New(nil, WithState(s))

	resp, err := h.Dispatch(context.Background(), errors.New("boom"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestDispatch_PanickingHookPropagates(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t, registry.WithException(movedError{}, policy.WithMessageFunc(func(error) string {
		panic("bad hook")
	})))
	assert.PanicsWithValue(t, "bad hook", func() {
		_, _ = h.Dispatch(context.Background(), movedError{})
	})
}

func TestDispatch_TraceIDs(t *testing.T) {
	t.Parallel()

	h, l, _ := newHandler(t)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02},
		SpanID:     trace.SpanID{0x03},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	_, _ = h.Dispatch(ctx, errors.New("boom"))
	kv := l.keyvals(t, 0)
	assert.Equal(t, sc.TraceID().String(), kv["trace_id"])
	assert.Equal(t, sc.SpanID().String(), kv["span_id"])
}

func TestDispatch_Observer(t *testing.T) {
	t.Parallel()

	o := &mockObserver{}
	o.On("ObserveDispatch", "errorable.movedError", http.StatusMovedPermanently, true).Once()
	o.On("ObserveDispatch", "*errors.errorString", http.StatusInternalServerError, false).Once()

	s := NewState()
	s.SetLogger(logging.Nop())
	reg := registry.MustNew(registry.WithException(movedError{}, policy.WithStatus(http.StatusMovedPermanently)))
	h := New(reg, WithState(s), WithObserver(o))

	_, _ = h.Dispatch(context.Background(), movedError{})
	_, _ = h.Dispatch(context.Background(), errors.New("boom"))
	o.AssertExpectations(t)
}

func TestDispatch_Fallback(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.SetLogger(logging.Nop())
	h := New(nil, WithState(s), WithFallback(policy.New(policy.WithStatus(http.StatusBadGateway), policy.WithTitle("Upstream"))))

	resp, _ := h.Dispatch(context.Background(), errors.New("boom"))
	assert.Equal(t, http.StatusBadGateway, resp.Status)
	assert.Equal(t, "bad_gateway", resp.Document.Errors[0].Code)
	assert.Equal(t, "Upstream", resp.Document.Errors[0].Title)
}

func TestDispatch_DerivedRegistries(t *testing.T) {
	t.Parallel()

	parent := registry.MustNew(registry.WithException(movedError{}, policy.WithStatus(http.StatusMovedPermanently)))
	child, err := parent.Derive()
	require.NoError(t, err)
	require.NoError(t, parent.Register(&notFoundError{}, policy.WithStatus(http.StatusNotFound)))

	s := NewState()
	s.SetLogger(logging.Nop())
	resp, _ := New(child, WithState(s)).Dispatch(context.Background(), &notFoundError{})
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	resp, _ = New(child, WithState(s)).Dispatch(context.Background(), movedError{})
	assert.Equal(t, http.StatusMovedPermanently, resp.Status)
}

type account struct {
	Email string `jsonapi:"attr,email"`
	model.Errors
}

func TestRenderErrorsFor(t *testing.T) {
	t.Parallel()

	o := &mockObserver{}
	o.On("ObserveValidation", 422, mock.Anything).Once()
	h := New(nil, WithState(NewState()), WithObserver(o))

	a := &account{}
	a.Add("email", "can't be blank", "blank")
	resp := h.RenderErrorsFor(a, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	out, err := json.Marshal(resp.Document)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":[{"code":"unprocessable_entity","status":"422","title":"Validation Error",
		"detail":"Email can't be blank","source":{"pointer":"/data/attributes/email"},
		"meta":{"attribute":"email","message":"can't be blank","code":"blank"}}]}`, string(out))
	o.AssertExpectations(t)
}

func TestExplain(t *testing.T) {
	t.Parallel()

	h := New(registry.MustNew(registry.WithException(movedError{}, policy.WithStatus(http.StatusMovedPermanently))))
	out := h.Explain(stacktrace.Attach(movedError{}, nil))
	assert.Contains(t, out, `type="errorable.movedError"`)
	assert.Contains(t, out, "source=registered -> 301 moved_permanently")
}

func TestState_Logger(t *testing.T) {
	t.Parallel()

	s := NewState()
	assert.NotNil(t, s.Logger(), "console sink by default")

	l := &mockLogger{}
	s.SetLogger(l)
	assert.Same(t, l, s.Logger())

	s.SetLogger(nil)
	assert.NotSame(t, l, s.Logger())
	assert.NotNil(t, s.Cleaner())
}

// Package-level controls mutate DefaultState, so this test is not parallel.
func TestDefaultStateControls(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() {
		Enable()
		SetLogger(prev)
	})

	Disable()
	assert.True(t, IsDisabled())
	assert.True(t, DefaultState().IsDisabled())

	raised := errors.New("raw")
	_, err := New(nil).Dispatch(context.Background(), raised)
	assert.Same(t, raised, err)

	Enable()
	assert.False(t, IsDisabled())

	l := &mockLogger{}
	l.On("Error", mock.Anything, mock.Anything).Return()
	SetLogger(l)
	resp, err := New(nil).Dispatch(context.Background(), raised)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	l.AssertNumberOfCalls(t, "Error", 1)
}
