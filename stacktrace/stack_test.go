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

package stacktrace

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PkgErrors(t *testing.T) {
	t.Parallel()

	err := pkgerrors.New("boom")
	st := Extract(err)
	require.NotEmpty(t, st)
	assert.Contains(t, st[0].Function, "TestExtract_PkgErrors")
	assert.True(t, strings.HasSuffix(st[0].File, "stack_test.go"))
	assert.Positive(t, st[0].Line)
}

func TestExtract_InnermostWins(t *testing.T) {
	t.Parallel()

	inner := pkgerrors.New("inner")
	innerTop := Extract(inner)[0]

	outer := pkgerrors.Wrap(fmt.Errorf("middle: %w", inner), "outer")
	assert.Equal(t, innerTop, Extract(outer)[0])
}

func TestExtract_None(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Extract(errors.New("plain")))
	assert.Nil(t, Extract(nil))
}

func TestCapture(t *testing.T) {
	t.Parallel()

	st := Capture(0)
	require.NotEmpty(t, st)
	assert.Contains(t, st[0].Function, "TestCapture")
}

func TestStackLines(t *testing.T) {
	t.Parallel()

	st := Stack{{Function: "main.run", File: "/app/main.go", Line: 12}}
	assert.Equal(t, []string{"/app/main.go:12 in main.run"}, st.Lines())
	assert.Equal(t, []string{}, Stack(nil).Lines())
}

func TestAttachDetach(t *testing.T) {
	t.Parallel()

	base := errors.New("plain")
	st := Stack{{Function: "f", File: "f.go", Line: 1}}

	err := Attach(base, st)
	assert.Equal(t, "plain", err.Error())
	assert.True(t, errors.Is(err, base))
	assert.Equal(t, st, Extract(err))

	got, gotStack := Detach(err)
	assert.Same(t, base, got)
	assert.Equal(t, st, gotStack)

	got, gotStack = Detach(base)
	assert.Same(t, base, got)
	assert.Nil(t, gotStack)

	assert.Nil(t, Attach(nil, st))
}

type customErr struct{}

func (customErr) Error() string { return "custom" }

func TestRecovered(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Recovered(nil, 0))

	err := func() (err error) {
		defer func() { err = Recovered(recover(), 0) }()
		panic("kaboom")
	}()
	require.Error(t, err)
	inner, st := Detach(err)
	var pe *PanicError
	require.ErrorAs(t, inner, &pe)
	assert.Equal(t, "kaboom", pe.Value)
	assert.Equal(t, "panic: kaboom", err.Error())
	assert.NotEmpty(t, st)

	err = func() (err error) {
		defer func() { err = Recovered(recover(), 0) }()
		panic(customErr{})
	}()
	inner, _ = Detach(err)
	assert.IsType(t, customErr{}, inner)

	withStack := pkgerrors.New("has stack")
	err = func() (err error) {
		defer func() { err = Recovered(recover(), 0) }()
		panic(withStack)
	}()
	assert.Same(t, withStack, err)
}

func TestCleaner(t *testing.T) {
	t.Parallel()

	c, err := NewCleaner(
		WithSilenced("runtime", "net/http", "github.com/gin-gonic/gin"),
		WithRoot("/src/app/"),
	)
	require.NoError(t, err)

	st := Stack{
		{Function: "dirpx.dev/app/handlers.Create", File: "/src/app/handlers/create.go", Line: 10},
		{Function: "net/http.HandlerFunc.ServeHTTP", File: "/go/src/net/http/server.go", Line: 2200},
		{Function: "net/httptest.NewServer", File: "/go/src/net/http/httptest/server.go", Line: 5},
		{Function: "github.com/gin-gonic/gin.(*Context).Next", File: "/mod/gin/context.go", Line: 1},
		{Function: "runtime.goexit", File: "/go/src/runtime/asm_amd64.s", Line: 1700},
	}
	got := c.Clean(st)
	require.Len(t, got, 2)
	assert.Equal(t, "handlers/create.go", got[0].File)
	assert.Equal(t, "net/httptest.NewServer", got[1].Function)

	// input untouched
	assert.Equal(t, "/src/app/handlers/create.go", st[0].File)
}

func TestCleaner_NilAndInvalid(t *testing.T) {
	t.Parallel()

	var c *Cleaner
	st := Stack{{Function: "runtime.goexit"}}
	assert.Equal(t, st, c.Clean(st))

	_, err := NewCleaner(WithSilenced("a//b"))
	assert.Error(t, err)

	assert.Empty(t, DefaultCleaner().Clean(Stack{{Function: "testing.tRunner"}, {Function: "reflect.Value.Call"}}))
}
