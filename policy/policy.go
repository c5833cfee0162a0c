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

package policy

import (
	"maps"
	"net/http"

	"dirpx.dev/errorable/apis"
)

const (
	// DefaultStatus is the status of unregistered errors.
	DefaultStatus = http.StatusInternalServerError

	// DefaultTitle is the title of unregistered errors.
	DefaultTitle = "Error"

	// DefaultDetail is the detail used unless a policy opts into another
	// message source.
	DefaultDetail = "We've notified our engineers and hope to address this issue shortly."

	// RawErrorKey is the reserved meta key carrying the raw message and
	// backtrace when a policy reveals raw errors.
	RawErrorKey = "__raw_error__"
)

// MessageSource tells where the detail text comes from.
type MessageSource int

const (
	// MessageDefault uses DefaultDetail.
	MessageDefault MessageSource = iota
	// MessageLiteral uses Options.Message verbatim.
	MessageLiteral
	// MessageRaw uses the error's own message.
	MessageRaw
	// MessageFunc calls Options.MessageFunc with the error.
	MessageFunc
)

func (s MessageSource) String() string {
	switch s {
	case MessageLiteral:
		return "literal"
	case MessageRaw:
		return "raw"
	case MessageFunc:
		return "func"
	default:
		return "default"
	}
}

// Constructor builds a policy from resolved options.
type Constructor func(Options) apis.Policy

// Options is the resolved configuration of one policy.
type Options struct {
	Status         int
	Title          string
	Source         MessageSource
	Message        string
	MessageFunc    func(error) string
	MetaFunc       func(error) map[string]any
	Log            bool
	RevealRawError bool
	Handler        Constructor
}

// Defaults returns the options of the built-in fallback policy.
func Defaults() Options {
	return Options{
		Status: DefaultStatus,
		Title:  DefaultTitle,
		Source: MessageDefault,
		Log:    true,
	}
}

// Resolve applies opts on top of Defaults.
func Resolve(opts ...Option) Options {
	o := Defaults()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// New resolves opts and constructs the policy, through the handler when one
// was given.
func New(opts ...Option) apis.Policy {
	o := Resolve(opts...)
	if o.Handler != nil {
		if p := o.Handler(o); p != nil {
			return p
		}
	}
	return NewDefault(o)
}

// Default is the standard policy implementation. Custom handlers embed it
// and override individual hooks.
type Default struct {
	opts Options
}

var _ apis.Policy = (*Default)(nil)

// NewDefault returns the standard policy for o.
func NewDefault(o Options) *Default {
	if o.Status == 0 {
		o.Status = DefaultStatus
	}
	return &Default{opts: o}
}

// StatusCode returns the configured status.
func (d *Default) StatusCode(error) int { return d.opts.Status }

// Title returns the configured title.
func (d *Default) Title() string { return d.opts.Title }

// Detail returns the detail text for err according to the message source.
func (d *Default) Detail(err error) string {
	switch d.opts.Source {
	case MessageRaw:
		if err == nil {
			return ""
		}
		return err.Error()
	case MessageFunc:
		if d.opts.MessageFunc != nil {
			return d.opts.MessageFunc(err)
		}
	case MessageLiteral:
		return d.opts.Message
	}
	return DefaultDetail
}

// Meta returns a fresh map holding the meta hook's result, or an empty map.
func (d *Default) Meta(err error) map[string]any {
	out := map[string]any{}
	if d.opts.MetaFunc != nil {
		maps.Copy(out, d.opts.MetaFunc(err))
	}
	return out
}

// LogEnabled reports whether handled errors are logged.
func (d *Default) LogEnabled() bool { return d.opts.Log }

// RevealRawError reports whether the raw message and backtrace are added to
// meta under RawErrorKey.
func (d *Default) RevealRawError() bool { return d.opts.RevealRawError }

// Options returns a copy of the resolved options.
func (d *Default) Options() Options { return d.opts }
