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
	"runtime"

	pkgerrors "github.com/pkg/errors"
)

// Frame is a single resolved call site.
type Frame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// String renders the frame as "file:line in function".
func (f Frame) String() string {
	return fmt.Sprintf("%s:%d in %s", f.File, f.Line, f.Function)
}

// Stack is a slice of frames from the most recent call outward.
type Stack []Frame

// Lines renders every frame with Frame.String.
func (s Stack) Lines() []string {
	if len(s) == 0 {
		return []string{}
	}
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.String()
	}
	return out
}

// stackTracer is the capability exposed by github.com/pkg/errors values.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// framer is the capability exposed by errors built with Attach.
type framer interface {
	Frames() Stack
}

// maxDepth bounds captured stacks.
const maxDepth = 64

// Extract returns the backtrace recorded closest to the origin of err: the
// whole Unwrap chain is walked and the innermost recorded stack wins, since
// that is where the failure started. It returns nil when no stack was
// recorded anywhere in the chain.
func Extract(err error) Stack {
	var out Stack
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch v := e.(type) {
		case framer:
			out = v.Frames()
		case stackTracer:
			out = fromPkgErrors(v.StackTrace())
		}
	}
	return out
}

// Capture records the stack of the calling goroutine, skipping skip frames
// above the caller of Capture.
func Capture(skip int) Stack {
	pc := make([]uintptr, maxDepth)
	// +2 skips runtime.Callers and Capture itself.
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pc[:n])
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		if !more {
			break
		}
	}
	return out
}

func fromPkgErrors(st pkgerrors.StackTrace) Stack {
	out := make(Stack, 0, len(st))
	for _, f := range st {
		// pkg/errors stores return addresses; step back into the call.
		pc := uintptr(f) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			out = append(out, Frame{Function: "unknown", File: "unknown"})
			continue
		}
		file, line := fn.FileLine(pc)
		out = append(out, Frame{Function: fn.Name(), File: file, Line: line})
	}
	return out
}
