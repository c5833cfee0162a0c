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

package grpcx

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// byHTTP maps HTTP statuses to the closest canonical gRPC code.
var byHTTP = map[int]codes.Code{
	// 4xx: client, protocol or resource problems.
	http.StatusBadRequest:            codes.InvalidArgument,
	http.StatusUnauthorized:          codes.Unauthenticated,
	http.StatusForbidden:             codes.PermissionDenied,
	http.StatusNotFound:              codes.NotFound,
	http.StatusMethodNotAllowed:      codes.Unimplemented,
	http.StatusRequestTimeout:        codes.DeadlineExceeded,
	http.StatusConflict:              codes.Aborted,
	http.StatusGone:                  codes.NotFound, // gRPC has no 410
	http.StatusPreconditionFailed:    codes.FailedPrecondition,
	http.StatusUnprocessableEntity:   codes.InvalidArgument,
	http.StatusTooEarly:              codes.FailedPrecondition,
	http.StatusPreconditionRequired:  codes.FailedPrecondition,
	http.StatusTooManyRequests:       codes.ResourceExhausted,
	http.StatusRequestEntityTooLarge: codes.ResourceExhausted,
	499:                              codes.Canceled, // nginx "client closed request"

	// 5xx: server, dependency or transient problems.
	http.StatusInternalServerError: codes.Internal,
	http.StatusNotImplemented:      codes.Unimplemented,
	http.StatusBadGateway:          codes.Unavailable,
	http.StatusServiceUnavailable:  codes.Unavailable,
	http.StatusGatewayTimeout:      codes.DeadlineExceeded,
	http.StatusInsufficientStorage: codes.ResourceExhausted,
}

// CodeFor returns the gRPC code for an HTTP status. Unlisted 4xx statuses
// map to FailedPrecondition, unlisted 5xx to Internal and anything else to
// Unknown.
func CodeFor(status int) codes.Code {
	if c, ok := byHTTP[status]; ok {
		return c
	}
	switch {
	case status >= 400 && status < 500:
		return codes.FailedPrecondition
	case status >= 500 && status < 600:
		return codes.Internal
	default:
		return codes.Unknown
	}
}
