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

package code

import "net/http"

// Informational and success names.
const (
	Continue                    Code = "continue"
	SwitchingProtocols          Code = "switching_protocols"
	Processing                  Code = "processing"
	EarlyHints                  Code = "early_hints"
	OK                          Code = "ok"
	Created                     Code = "created"
	Accepted                    Code = "accepted"
	NonAuthoritativeInformation Code = "non_authoritative_information"
	NoContent                   Code = "no_content"
	ResetContent                Code = "reset_content"
	PartialContent              Code = "partial_content"
	MultiStatus                 Code = "multi_status"
	AlreadyReported             Code = "already_reported"
	IMUsed                      Code = "im_used"
)

// Redirection names.
const (
	MultipleChoices   Code = "multiple_choices"
	MovedPermanently  Code = "moved_permanently"
	Found             Code = "found"
	SeeOther          Code = "see_other"
	NotModified       Code = "not_modified"
	UseProxy          Code = "use_proxy"
	TemporaryRedirect Code = "temporary_redirect"
	PermanentRedirect Code = "permanent_redirect"
)

// Client error names.
const (
	BadRequest                   Code = "bad_request"
	Unauthorized                 Code = "unauthorized"
	PaymentRequired              Code = "payment_required"
	Forbidden                    Code = "forbidden"
	NotFound                     Code = "not_found"
	MethodNotAllowed             Code = "method_not_allowed"
	NotAcceptable                Code = "not_acceptable"
	ProxyAuthenticationRequired  Code = "proxy_authentication_required"
	RequestTimeout               Code = "request_timeout"
	Conflict                     Code = "conflict"
	Gone                         Code = "gone"
	LengthRequired               Code = "length_required"
	PreconditionFailed           Code = "precondition_failed"
	PayloadTooLarge              Code = "payload_too_large"
	URITooLong                   Code = "uri_too_long"
	UnsupportedMediaType         Code = "unsupported_media_type"
	RangeNotSatisfiable          Code = "range_not_satisfiable"
	ExpectationFailed            Code = "expectation_failed"
	MisdirectedRequest           Code = "misdirected_request"
	UnprocessableEntity          Code = "unprocessable_entity"
	Locked                       Code = "locked"
	FailedDependency             Code = "failed_dependency"
	TooEarly                     Code = "too_early"
	UpgradeRequired              Code = "upgrade_required"
	PreconditionRequired         Code = "precondition_required"
	TooManyRequests              Code = "too_many_requests"
	RequestHeaderFieldsTooLarge  Code = "request_header_fields_too_large"
	UnavailableForLegalReasons   Code = "unavailable_for_legal_reasons"
)

// Server error names.
const (
	InternalServerError           Code = "internal_server_error"
	NotImplemented                Code = "not_implemented"
	BadGateway                    Code = "bad_gateway"
	ServiceUnavailable            Code = "service_unavailable"
	GatewayTimeout                Code = "gateway_timeout"
	HTTPVersionNotSupported       Code = "http_version_not_supported"
	VariantAlsoNegotiates         Code = "variant_also_negotiates"
	InsufficientStorage           Code = "insufficient_storage"
	LoopDetected                  Code = "loop_detected"
	BandwidthLimitExceeded        Code = "bandwidth_limit_exceeded"
	NotExtended                   Code = "not_extended"
	NetworkAuthenticationRequired Code = "network_authentication_required"
)

// byStatus is the status table. 418 and the unassigned 306 are deliberately
// absent.
var byStatus = map[int]Code{
	http.StatusContinue:           Continue,
	http.StatusSwitchingProtocols: SwitchingProtocols,
	http.StatusProcessing:         Processing,
	http.StatusEarlyHints:         EarlyHints,

	http.StatusOK:                   OK,
	http.StatusCreated:              Created,
	http.StatusAccepted:             Accepted,
	http.StatusNonAuthoritativeInfo: NonAuthoritativeInformation,
	http.StatusNoContent:            NoContent,
	http.StatusResetContent:         ResetContent,
	http.StatusPartialContent:       PartialContent,
	http.StatusMultiStatus:          MultiStatus,
	http.StatusAlreadyReported:      AlreadyReported,
	http.StatusIMUsed:               IMUsed,

	http.StatusMultipleChoices:   MultipleChoices,
	http.StatusMovedPermanently:  MovedPermanently,
	http.StatusFound:             Found,
	http.StatusSeeOther:          SeeOther,
	http.StatusNotModified:       NotModified,
	http.StatusUseProxy:          UseProxy,
	http.StatusTemporaryRedirect: TemporaryRedirect,
	http.StatusPermanentRedirect: PermanentRedirect,

	http.StatusBadRequest:                   BadRequest,
	http.StatusUnauthorized:                 Unauthorized,
	http.StatusPaymentRequired:              PaymentRequired,
	http.StatusForbidden:                    Forbidden,
	http.StatusNotFound:                     NotFound,
	http.StatusMethodNotAllowed:             MethodNotAllowed,
	http.StatusNotAcceptable:                NotAcceptable,
	http.StatusProxyAuthRequired:            ProxyAuthenticationRequired,
	http.StatusRequestTimeout:               RequestTimeout,
	http.StatusConflict:                     Conflict,
	http.StatusGone:                         Gone,
	http.StatusLengthRequired:               LengthRequired,
	http.StatusPreconditionFailed:           PreconditionFailed,
	http.StatusRequestEntityTooLarge:        PayloadTooLarge,
	http.StatusRequestURITooLong:            URITooLong,
	http.StatusUnsupportedMediaType:         UnsupportedMediaType,
	http.StatusRequestedRangeNotSatisfiable: RangeNotSatisfiable,
	http.StatusExpectationFailed:            ExpectationFailed,
	http.StatusMisdirectedRequest:           MisdirectedRequest,
	http.StatusUnprocessableEntity:          UnprocessableEntity,
	http.StatusLocked:                       Locked,
	http.StatusFailedDependency:             FailedDependency,
	http.StatusTooEarly:                     TooEarly,
	http.StatusUpgradeRequired:              UpgradeRequired,
	http.StatusPreconditionRequired:         PreconditionRequired,
	http.StatusTooManyRequests:              TooManyRequests,
	http.StatusRequestHeaderFieldsTooLarge:  RequestHeaderFieldsTooLarge,
	http.StatusUnavailableForLegalReasons:   UnavailableForLegalReasons,

	http.StatusInternalServerError:           InternalServerError,
	http.StatusNotImplemented:                NotImplemented,
	http.StatusBadGateway:                    BadGateway,
	http.StatusServiceUnavailable:            ServiceUnavailable,
	http.StatusGatewayTimeout:                GatewayTimeout,
	http.StatusHTTPVersionNotSupported:       HTTPVersionNotSupported,
	http.StatusVariantAlsoNegotiates:         VariantAlsoNegotiates,
	http.StatusInsufficientStorage:           InsufficientStorage,
	http.StatusLoopDetected:                  LoopDetected,
	509:                                      BandwidthLimitExceeded,
	http.StatusNotExtended:                   NotExtended,
	http.StatusNetworkAuthenticationRequired: NetworkAuthenticationRequired,
}

// byName is the inverse of byStatus, built once at init.
var byName = func() map[Code]int {
	m := make(map[Code]int, len(byStatus))
	for s, c := range byStatus {
		m[c] = s
	}
	return m
}()

// ForStatus returns the symbolic name for an HTTP status.
// ok is false when the table has no entry for status.
func ForStatus(status int) (c Code, ok bool) {
	c, ok = byStatus[status]
	return c, ok
}

// Status returns the HTTP status for a symbolic name.
func Status(c Code) (status int, ok bool) {
	status, ok = byName[c]
	return status, ok
}
