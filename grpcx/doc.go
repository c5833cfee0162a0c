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

// Package grpcx maps errorable documents onto gRPC statuses.
//
// The server interceptors dispatch every error a handler returns or panics
// with. The status code is derived from the document's HTTP status; the
// document itself travels in the status details:
//
//   - errdetails.ErrorInfo per error object (reason = upper-cased code);
//   - errdetails.BadRequest listing every error object with a pointer;
//   - errdetails.DebugInfo when the raw error was revealed;
//   - structpb.Struct per error object, which ExtractDocument reads back.
//
// Errors that already carry a gRPC status pass through untouched, and so do
// all errors while handling is disabled.
package grpcx
