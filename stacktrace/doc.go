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

// Package stacktrace recovers backtraces for errors.
//
// Go errors carry no backtrace by themselves. This package reads the one that
// github.com/pkg/errors records (any error exposing StackTrace()), captures
// one for recovered panics, and cleans backtraces before they are logged or
// revealed, in the spirit of a framework backtrace cleaner:
//
//	cleaner, _ := stacktrace.NewCleaner(
//	    stacktrace.WithSilenced("runtime", "testing"),
//	    stacktrace.WithRoot("/src/app"),
//	)
//	lines := cleaner.Clean(stacktrace.Extract(err)).Lines()
package stacktrace
