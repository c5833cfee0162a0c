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

// Package metrics counts handled errors with Prometheus.
//
// Recorder implements errorable.Observer:
//
//	reg := prometheus.NewRegistry()
//	rec, err := metrics.New(reg)
//	h := errorable.New(r, errorable.WithObserver(rec))
//	http.Handle("/metrics", rec.Handler())
//
// Series:
//
//	errorable_dispatched_total{type, status, registered}
//	errorable_validation_renders_total{status}
//	errorable_validation_facts_total{code}
package metrics
