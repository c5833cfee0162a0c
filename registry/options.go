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

package registry

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/errorable/apis"
	"dirpx.dev/errorable/policy"
)

var (
	// ErrNilPrototype is returned when a registration names no type.
	ErrNilPrototype = errors.New("registry: nil error prototype")

	// ErrInterfaceType is returned when a registration names an interface
	// type; no runtime value has an interface as its dynamic type.
	ErrInterfaceType = errors.New("registry: interface types never match")

	// ErrNilPolicy is returned by WithPolicy for a nil policy.
	ErrNilPolicy = errors.New("registry: nil policy")
)

type registration struct {
	typ    reflect.Type
	policy apis.Policy
	err    error
}

// builder collects registrations before they are committed to a Registry.
type builder struct {
	regs []registration
}

// Option adds registrations at build time.
type Option func(*builder)

// WithException registers the dynamic type of proto with a policy built from
// opts.
func WithException(proto error, opts ...policy.Option) Option {
	return func(b *builder) {
		if proto == nil {
			b.regs = append(b.regs, registration{err: ErrNilPrototype})
			return
		}
		b.regs = append(b.regs, registration{typ: reflect.TypeOf(proto), policy: policy.New(opts...)})
	}
}

// WithExceptionType registers E with a policy built from opts.
func WithExceptionType[E error](opts ...policy.Option) Option {
	return func(b *builder) {
		b.regs = append(b.regs, typed(reflect.TypeFor[E](), policy.New(opts...)))
	}
}

// WithPolicy registers the dynamic type of proto with a prebuilt policy.
func WithPolicy(proto error, p apis.Policy) Option {
	return func(b *builder) {
		switch {
		case proto == nil:
			b.regs = append(b.regs, registration{err: ErrNilPrototype})
		case p == nil:
			b.regs = append(b.regs, registration{err: fmt.Errorf("%w for %s", ErrNilPolicy, reflect.TypeOf(proto))})
		default:
			b.regs = append(b.regs, registration{typ: reflect.TypeOf(proto), policy: p})
		}
	}
}

func typed(t reflect.Type, p apis.Policy) registration {
	if t.Kind() == reflect.Interface {
		return registration{err: fmt.Errorf("%w: %s", ErrInterfaceType, t)}
	}
	return registration{typ: t, policy: p}
}

// build applies opts and returns the registrations in order, or the joined
// errors of every invalid one.
func build(opts []Option) ([]registration, error) {
	b := &builder{}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	var errs []error
	for _, r := range b.regs {
		if r.err != nil {
			errs = append(errs, r.err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b.regs, nil
}
