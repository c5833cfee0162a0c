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

// Option configures a policy at registration time.
type Option func(*Options)

// WithStatus sets the HTTP status.
func WithStatus(status int) Option {
	return func(o *Options) { o.Status = status }
}

// WithTitle sets the title.
func WithTitle(title string) Option {
	return func(o *Options) { o.Title = title }
}

// WithMessage uses msg verbatim as the detail.
func WithMessage(msg string) Option {
	return func(o *Options) {
		o.Source = MessageLiteral
		o.Message = msg
	}
}

// WithRawMessage uses the error's own message as the detail.
func WithRawMessage() Option {
	return func(o *Options) { o.Source = MessageRaw }
}

// WithMessageFunc derives the detail from the error.
func WithMessageFunc(fn func(error) string) Option {
	return func(o *Options) {
		o.Source = MessageFunc
		o.MessageFunc = fn
	}
}

// WithMeta derives extra meta members from the error.
func WithMeta(fn func(error) map[string]any) Option {
	return func(o *Options) { o.MetaFunc = fn }
}

// WithLog toggles logging of handled errors.
func WithLog(on bool) Option {
	return func(o *Options) { o.Log = on }
}

// WithRawError toggles embedding of the raw message and backtrace in meta.
func WithRawError(on bool) Option {
	return func(o *Options) { o.RevealRawError = on }
}

// WithHandler replaces the default constructor.
func WithHandler(c Constructor) Option {
	return func(o *Options) { o.Handler = c }
}
