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

// Package errorable turns Go errors into JSON:API error documents.
//
// # Overview
//
// A Handler owns a registry.Registry that binds error types to policies.
// Dispatch resolves the policy for a raised error, logs it, and returns the
// status and document to write:
//
//	reg := registry.MustNew(
//		registry.WithException(&NotFoundError{},
//			policy.WithStatus(http.StatusNotFound),
//			policy.WithRawMessage(),
//		),
//	)
//	h := errorable.New(reg)
//
//	resp, err := h.Dispatch(ctx, raised)
//	if err != nil {
//		// handling is disabled: let the framework deal with err
//	}
//	// write resp.Document with resp.Status
//
// Unregistered error types fall back to the process-wide default policy:
// 500, title "Error" and a generic detail that reveals nothing.
//
// RenderErrorsFor formats the validation failures of an object and of the
// related objects submitted with it as a 422 document; see package
// validation.
//
// # Process state
//
// Handling can be switched off process-wide with Disable, in which case
// Dispatch hands the error back untouched and logs nothing. The log sink is
// replaceable with SetLogger. Both live in a State; handlers use
// DefaultState unless given another one with WithState, which keeps tests
// isolated from each other.
package errorable
