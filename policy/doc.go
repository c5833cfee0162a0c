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

// Package policy implements the exception policy: the record that decides
// the status, title, detail and meta emitted for one error type.
//
// Policies are built from functional options. The zero configuration is the
// built-in fallback: status 500, title "Error", a fixed generic detail that
// reveals nothing about the failure, empty meta, and logging on.
//
//	p := policy.New(
//		policy.WithStatus(http.StatusNotFound),
//		policy.WithTitle("Not Found"),
//		policy.WithRawMessage(),
//	)
//
// Custom strategies are plugged in with WithHandler. A handler receives the
// resolved Options and returns any apis.Policy; embedding *Default and
// overriding a single hook is the usual shape:
//
//	type redirect struct{ *policy.Default }
//
//	func (redirect) StatusCode(error) int { return http.StatusFound }
//
//	policy.New(policy.WithHandler(func(o policy.Options) apis.Policy {
//		return redirect{policy.NewDefault(o)}
//	}))
package policy
