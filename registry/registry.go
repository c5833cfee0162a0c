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
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"dirpx.dev/errorable/apis"
	"dirpx.dev/errorable/code"
	"dirpx.dev/errorable/policy"
)

// Registry maps exact error types to policies. It is safe for concurrent
// use; registration normally happens once at startup.
type Registry struct {
	mu       sync.RWMutex
	policies map[reflect.Type]apis.Policy
	// order keeps first-registration order for Types and Explain output.
	order []reflect.Type
}

// New returns a registry holding the registrations in opts. Later
// registrations for the same type replace earlier ones.
func New(opts ...Option) (*Registry, error) {
	regs, err := build(opts)
	if err != nil {
		return nil, err
	}
	r := &Registry{policies: make(map[reflect.Type]apis.Policy, len(regs))}
	r.commit(regs)
	return r, nil
}

// MustNew is New that panics on error.
func MustNew(opts ...Option) *Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) commit(regs []registration) {
	for _, reg := range regs {
		if _, ok := r.policies[reg.typ]; !ok {
			r.order = append(r.order, reg.typ)
		}
		r.policies[reg.typ] = reg.policy
	}
}

// Register binds the dynamic type of proto to a policy built from opts,
// silently replacing any previous binding.
func (r *Registry) Register(proto error, opts ...policy.Option) error {
	return r.Apply(WithException(proto, opts...))
}

// RegisterType binds E to a policy built from opts.
func RegisterType[E error](r *Registry, opts ...policy.Option) error {
	return r.Apply(WithExceptionType[E](opts...))
}

// Apply commits opts atomically: either every registration is stored or,
// on error, none is.
func (r *Registry) Apply(opts ...Option) error {
	regs, err := build(opts)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.policies == nil {
		r.policies = make(map[reflect.Type]apis.Policy, len(regs))
	}
	r.commit(regs)
	return nil
}

// Derive returns an independent copy of r with opts applied on top. A nil
// registry derives an empty one.
func (r *Registry) Derive(opts ...Option) (*Registry, error) {
	if r == nil {
		return New(opts...)
	}
	regs, err := build(opts)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	child := &Registry{
		policies: make(map[reflect.Type]apis.Policy, len(r.policies)+len(regs)),
		order:    slices.Clone(r.order),
	}
	for t, p := range r.policies {
		child.policies[t] = p
	}
	r.mu.RUnlock()
	child.commit(regs)
	return child, nil
}

// Resolve returns the policy registered for the exact dynamic type of err.
// A nil registry or a nil error resolves to nothing.
func (r *Registry) Resolve(err error) (apis.Policy, bool) {
	if r == nil || err == nil {
		return nil, false
	}
	return r.Lookup(reflect.TypeOf(err))
}

// Lookup returns the policy registered for t.
func (r *Registry) Lookup(t reflect.Type) (apis.Policy, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.policies[t]
	return p, ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.policies)
}

// Types returns the registered types in first-registration order.
func (r *Registry) Types() []reflect.Type {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Explain produces a textual trace of how err resolves against r, using
// fallback for unregistered types.
//
// Example output:
//
//	type="*app.NotFoundError"
//	policy: source=registered -> 404 not_found
//	title="Not Found" detail="user 7 not found" log=true
func (r *Registry) Explain(err error, fallback apis.Policy) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "type=%q\n", TypeName(err))

	p, ok := r.Resolve(err)
	source := "registered"
	if !ok {
		p, source = fallback, "fallback"
	}
	if p == nil {
		_, _ = fmt.Fprint(&b, "policy: source=none")
		return b.String()
	}

	status := p.StatusCode(err)
	c, known := code.ForStatus(status)
	if !known {
		c = "-"
	}
	_, _ = fmt.Fprintf(&b, "policy: source=%s -> %d %s\n", source, status, c)
	_, _ = fmt.Fprintf(&b, "title=%q detail=%q log=%t", p.Title(), p.Detail(err), p.LogEnabled())
	return b.String()
}

// TypeName returns the name of the dynamic type of err, e.g.
// "*errors.errorString", or "<nil>".
func TypeName(err error) string {
	if err == nil {
		return "<nil>"
	}
	return reflect.TypeOf(err).String()
}
