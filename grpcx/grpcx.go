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
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dirpx.dev/errorable"
	"dirpx.dev/errorable/apis"
	"dirpx.dev/errorable/policy"
	"dirpx.dev/errorable/stacktrace"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/structpb"
)

// Domain is the ErrorInfo domain of every detail produced here.
const Domain = "errorable"

// UnaryServerInterceptor dispatches handler errors and panics through h.
func UnaryServerInterceptor(h *errorable.Handler) grpc.UnaryServerInterceptor {
	if h == nil {
		h = errorable.New(nil)
	}
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if v := recover(); v != nil {
				err = convert(ctx, h, stacktrace.Recovered(v, 0), v)
			}
		}()
		resp, err = handler(ctx, req)
		if err != nil {
			return nil, convert(ctx, h, err, nil)
		}
		return resp, nil
	}
}

// StreamServerInterceptor dispatches stream handler errors and panics
// through h.
func StreamServerInterceptor(h *errorable.Handler) grpc.StreamServerInterceptor {
	if h == nil {
		h = errorable.New(nil)
	}
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if v := recover(); v != nil {
				err = convert(ss.Context(), h, stacktrace.Recovered(v, 0), v)
			}
		}()
		if err = handler(srv, ss); err != nil {
			return convert(ss.Context(), h, err, nil)
		}
		return nil
	}
}

// convert dispatches err. panicked is the recovered value, if any; it is
// re-raised when handling is disabled.
func convert(ctx context.Context, h *errorable.Handler, err error, panicked any) error {
	if _, ok := err.(interface{ GRPCStatus() *gstatus.Status }); ok {
		return err
	}
	resp, err := h.Dispatch(ctx, err)
	if err != nil {
		if panicked != nil {
			panic(panicked)
		}
		return err
	}
	if resp.IsZero() {
		return nil
	}
	return ToStatus(resp).Err()
}

// ToStatus builds the gRPC status for resp. The status message is the
// detail of the first error object, or its title when the detail is empty.
func ToStatus(resp errorable.Response) *gstatus.Status {
	msg := ""
	if len(resp.Document.Errors) > 0 {
		first := resp.Document.Errors[0]
		msg = first.Detail
		if msg == "" {
			msg = first.Title
		}
	}
	base := gstatus.New(CodeFor(resp.Status), msg)

	details := make([]protoadapt.MessageV1, 0, 2*len(resp.Document.Errors)+2)
	var violations []*errdetails.BadRequest_FieldViolation
	var debug *errdetails.DebugInfo

	for _, e := range resp.Document.Errors {
		details = append(details, errorInfo(e))
		if e.Source != nil && e.Source.Pointer != "" {
			violations = append(violations, &errdetails.BadRequest_FieldViolation{
				Field:       e.Source.Pointer,
				Description: e.Detail,
			})
		}
		if debug == nil {
			debug = debugInfo(e)
		}
		if s, err := toStruct(e); err == nil {
			details = append(details, s)
		}
	}
	if len(violations) > 0 {
		details = append(details, &errdetails.BadRequest{FieldViolations: violations})
	}
	if debug != nil {
		details = append(details, debug)
	}

	with, err := base.WithDetails(details...)
	if err != nil {
		return base
	}
	return with
}

func errorInfo(e apis.ErrorObject) *errdetails.ErrorInfo {
	md := map[string]string{"status": e.Status, "title": e.Title}
	if e.Source != nil && e.Source.Pointer != "" {
		md["pointer"] = e.Source.Pointer
	}
	return &errdetails.ErrorInfo{
		Reason:   strings.ToUpper(e.Code),
		Domain:   Domain,
		Metadata: md,
	}
}

func debugInfo(e apis.ErrorObject) *errdetails.DebugInfo {
	raw, ok := e.Meta[policy.RawErrorKey].(map[string]any)
	if !ok {
		return nil
	}
	info := &errdetails.DebugInfo{Detail: fmt.Sprint(raw["message"])}
	if lines, ok := raw["backtrace"].([]string); ok {
		info.StackEntries = lines
	}
	return info
}

// toStruct encodes e through its JSON form.
func toStruct(e apis.ErrorObject) (*structpb.Struct, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// ExtractDocument reads the document carried by a status error produced by
// the interceptors.
func ExtractDocument(err error) (apis.Document, bool) {
	if err == nil {
		return apis.Document{}, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return apis.Document{}, false
	}
	doc := apis.Document{Errors: []apis.ErrorObject{}}
	for _, d := range st.Details() {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		b, err := json.Marshal(s.AsMap())
		if err != nil {
			continue
		}
		var e apis.ErrorObject
		if err := json.Unmarshal(b, &e); err != nil {
			continue
		}
		doc.Errors = append(doc.Errors, e)
	}
	return doc, len(doc.Errors) > 0
}
