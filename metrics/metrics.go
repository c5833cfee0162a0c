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

package metrics

import (
	"net/http"
	"strconv"

	"dirpx.dev/errorable/apis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every series.
const DefaultNamespace = "errorable"

// Option configures a Recorder.
type Option func(*config)

type config struct {
	namespace   string
	constLabels prometheus.Labels
}

// WithNamespace replaces DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(c *config) { c.namespace = ns }
}

// WithConstLabels attaches labels to every series, e.g. the service name.
func WithConstLabels(l prometheus.Labels) Option {
	return func(c *config) { c.constLabels = l }
}

// Recorder counts dispatches and validation renders.
type Recorder struct {
	gatherer   prometheus.Gatherer
	dispatched *prometheus.CounterVec
	renders    *prometheus.CounterVec
	facts      *prometheus.CounterVec
}

// New registers the recorder's collectors with reg. A nil reg uses a fresh
// private registry.
func New(reg prometheus.Registerer, opts ...Option) (*Recorder, error) {
	c := config{namespace: DefaultNamespace}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := &Recorder{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   c.namespace,
			Name:        "dispatched_total",
			Help:        "Errors turned into error documents, by Go type and status.",
			ConstLabels: c.constLabels,
		}, []string{"type", "status", "registered"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   c.namespace,
			Name:        "validation_renders_total",
			Help:        "Validation error documents rendered.",
			ConstLabels: c.constLabels,
		}, []string{"status"}),
		facts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   c.namespace,
			Name:        "validation_facts_total",
			Help:        "Validation failures rendered, by machine code.",
			ConstLabels: c.constLabels,
		}, []string{"code"}),
	}
	for _, col := range []prometheus.Collector{r.dispatched, r.renders, r.facts} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		r.gatherer = g
	}
	return r, nil
}

// ObserveDispatch counts one dispatched error.
func (r *Recorder) ObserveDispatch(typeName string, status int, registered bool) {
	r.dispatched.WithLabelValues(typeName, strconv.Itoa(status), strconv.FormatBool(registered)).Inc()
}

// ObserveValidation counts one render and each of its facts.
func (r *Recorder) ObserveValidation(status int, facts []apis.Fact) {
	r.renders.WithLabelValues(strconv.Itoa(status)).Inc()
	for _, f := range facts {
		r.facts.WithLabelValues(factCode(f.Meta)).Inc()
	}
}

// factCode finds the machine code, which sits under "relationship" for
// failures of related objects.
func factCode(meta map[string]any) string {
	for meta != nil {
		if c, ok := meta["code"].(string); ok {
			return c
		}
		meta, _ = meta["relationship"].(map[string]any)
	}
	return ""
}

// Handler serves the registry the recorder was registered with. It falls
// back to the default gatherer when that registry cannot be gathered.
func (r *Recorder) Handler() http.Handler {
	if r.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
