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

package apis

// Policy governs how one class of error maps to a response.
//
// The dispatcher calls every hook with the error instance being handled, so
// an implementation may derive its answers from the error. Hooks are expected
// to be pure functions of their input: a panicking hook is a configuration
// bug and is not masked.
//
// A policy is immutable once registered. To change behavior, register a new
// policy for the same error type.
type Policy interface {
	// StatusCode returns the HTTP status for err.
	StatusCode(err error) int

	// Title returns the short, occurrence-independent summary.
	Title() string

	// Detail returns the human-readable explanation for err.
	Detail(err error) string

	// Meta returns the non-standard meta members for err. Implementations
	// return a fresh map on every call; the dispatcher may retain it.
	Meta(err error) map[string]any

	// LogEnabled reports whether errors handled by this policy are logged.
	LogEnabled() bool
}

// RawErrorRevealer is implemented by policies that can opt into exposing the
// raw error message and backtrace in meta.
type RawErrorRevealer interface {
	RevealRawError() bool
}
