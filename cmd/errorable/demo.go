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

package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"dirpx.dev/errorable"
	"dirpx.dev/errorable/config"
	"dirpx.dev/errorable/httpx"
	"dirpx.dev/errorable/metrics"
	"dirpx.dev/errorable/model"
	"dirpx.dev/errorable/policy"
	"dirpx.dev/errorable/registry"
)

type widgetNotFoundError struct{ id string }

func (e *widgetNotFoundError) Error() string { return fmt.Sprintf("widget %s not found", e.id) }

type malformedError struct{ cause error }

func (e *malformedError) Error() string { return "malformed document: " + e.cause.Error() }

type widget struct {
	ID     string  `jsonapi:"primary,widgets"`
	TempID string  `jsonapi:"client-id"`
	Name   string  `jsonapi:"attr,name" validate:"required"`
	Parts  []*part `jsonapi:"relation,parts"`
	model.Errors
}

type part struct {
	ID     string `jsonapi:"primary,parts"`
	TempID string `jsonapi:"client-id"`
	Name   string `jsonapi:"attr,name" validate:"required,min=2"`
	model.Errors
}

type resourceObject struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	TempID     string            `json:"temp-id"`
	Attributes map[string]string `json:"attributes"`
}

type widgetDocument struct {
	Data struct {
		resourceObject
		Relationships struct {
			Parts struct {
				Data []resourceObject `json:"data"`
			} `json:"parts"`
		} `json:"relationships"`
	} `json:"data"`
	Included []resourceObject `json:"included"`
}

// demoBindings binds configuration names to the demo error types.
func demoBindings() config.Bindings {
	return config.Bindings{
		"widget_not_found": &widgetNotFoundError{},
		"malformed":        &malformedError{},
	}
}

// demoRegistry registers the demo error types with their built-in policies.
func demoRegistry() *registry.Registry {
	return registry.MustNew(
		registry.WithException(&widgetNotFoundError{},
			policy.WithStatus(http.StatusNotFound),
			policy.WithTitle("Widget Missing"),
			policy.WithRawMessage(),
			policy.WithLog(false),
		),
		registry.WithException(&malformedError{},
			policy.WithStatus(http.StatusBadRequest),
			policy.WithTitle("Malformed Document"),
			policy.WithRawMessage(),
			policy.WithLog(false),
		),
	)
}

type demo struct {
	w        httpx.Writer
	validate *validator.Validate
	widgets  map[string]string
}

func newRouter(h *errorable.Handler, rec *metrics.Recorder) http.Handler {
	d := &demo{
		w:        httpx.Writer{Handler: h},
		validate: model.NewValidator(),
		widgets:  map[string]string{"1": "sprocket"},
	}

	r := chi.NewRouter()
	r.Use(d.w.Middleware, httpx.Capture)
	if rec != nil {
		r.Handle("/metrics", rec.Handler())
	}
	r.Method(http.MethodGet, "/widgets/{id}", d.w.Handle(d.show))
	r.Method(http.MethodPost, "/widgets", d.w.Handle(d.create))
	r.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("demo panic")
	})
	r.NotFound(func(rw http.ResponseWriter, r *http.Request) {
		_ = d.w.Write(rw, r, &widgetNotFoundError{id: r.URL.Path})
	})
	return r
}

func (d *demo) show(rw http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	name, ok := d.widgets[id]
	if !ok {
		return &widgetNotFoundError{id: id}
	}
	rw.Header().Set("Content-Type", "application/vnd.api+json")
	return json.NewEncoder(rw).Encode(map[string]any{
		"data": map[string]any{"type": "widgets", "id": id, "attributes": map[string]string{"name": name}},
	})
}

func (d *demo) create(rw http.ResponseWriter, r *http.Request) error {
	var doc widgetDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		return &malformedError{cause: err}
	}

	included := map[string]resourceObject{}
	for _, inc := range doc.Included {
		included[inc.Type+"/"+inc.ID+"/"+inc.TempID] = inc
	}

	w := &widget{ID: doc.Data.ID, TempID: doc.Data.TempID, Name: doc.Data.Attributes["name"]}
	valid := d.check(w, &w.Errors)
	for _, ref := range doc.Data.Relationships.Parts.Data {
		obj := included[ref.Type+"/"+ref.ID+"/"+ref.TempID]
		p := &part{ID: ref.ID, TempID: ref.TempID, Name: obj.Attributes["name"]}
		valid = d.check(p, &p.Errors) && valid
		w.Parts = append(w.Parts, p)
	}
	if !valid {
		return d.w.RenderErrorsFor(rw, r, w, httpx.FromRequest())
	}

	rw.Header().Set("Content-Type", "application/vnd.api+json")
	rw.WriteHeader(http.StatusCreated)
	return json.NewEncoder(rw).Encode(map[string]any{
		"data": map[string]any{"type": "widgets", "attributes": map[string]string{"name": w.Name}},
	})
}

// check validates obj and records its failures in errs.
func (d *demo) check(obj any, errs *model.Errors) bool {
	found, err := model.Check(d.validate, obj)
	if err != nil {
		errs.AddBase(err.Error(), "invalid")
		return false
	}
	errs.Merge(found.ValidationErrors())
	return found.Empty()
}
