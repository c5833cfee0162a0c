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

import "fmt"

// attached carries a stack next to an error that did not record one.
// It is transparent to classification: Detach returns the original error.
type attached struct {
	err   error
	stack Stack
}

func (a *attached) Error() string { return a.err.Error() }
func (a *attached) Unwrap() error { return a.err }
func (a *attached) Frames() Stack { return a.stack }

// Attach returns err carrying stack. A nil err stays nil.
func Attach(err error, stack Stack) error {
	if err == nil {
		return nil
	}
	return &attached{err: err, stack: stack}
}

// Detach undoes Attach. Errors that were not attached are returned as-is
// with a nil stack.
func Detach(err error) (error, Stack) {
	if a, ok := err.(*attached); ok {
		return a.err, a.stack
	}
	return err, nil
}

// PanicError wraps a recovered panic value that was not itself an error.
type PanicError struct {
	Value any
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Recovered converts a value returned by recover() into an error carrying the
// panicking stack. It must be called from the deferred function that
// recovered, so that the stack still includes the panicking frames; skip
// counts extra frames to drop above that function.
//
// Error values are kept as-is, so registry lookups see the type that was
// panicked with. Anything else becomes *PanicError.
func Recovered(v any, skip int) error {
	if v == nil {
		return nil
	}
	err, ok := v.(error)
	if !ok {
		err = &PanicError{Value: v}
	}
	if len(Extract(err)) > 0 {
		return err
	}
	return Attach(err, Capture(skip+1))
}
