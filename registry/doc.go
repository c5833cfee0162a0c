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

// Package registry maps error types to exception policies.
//
// # Overview
//
// A Registry is owned by one handling scope, for example one HTTP API or one
// gRPC service. Each entry binds the exact dynamic type of an error value to
// an apis.Policy:
//
//	reg, err := registry.New(
//		registry.WithException(&NotFoundError{},
//			policy.WithStatus(http.StatusNotFound),
//			policy.WithTitle("Not Found"),
//			policy.WithRawMessage(),
//		),
//		registry.WithExceptionType[*RateLimitError](policy.WithStatus(http.StatusTooManyRequests)),
//	)
//
// # Resolution model
//
// Resolve matches the runtime type of the error exactly. It does not walk
// wrapped errors or related types: an error wrapped with fmt.Errorf has type
// *fmt.wrapError and resolves to nothing. Unresolved errors fall back to the
// process-wide default policy held by the dispatcher, never to a parent
// registry.
//
// # Derivation
//
// Derive copies the current entries into a new, independent Registry. Later
// registrations on either side are invisible to the other; the policies
// themselves are immutable and shared.
//
//	base, _ := registry.New(registry.WithException(&NotFoundError{}, ...))
//	admin, _ := base.Derive(registry.WithException(&ForbiddenError{}, ...))
//
// # Diagnostics
//
// Explain returns a human-readable trace of how an error resolves.
package registry
