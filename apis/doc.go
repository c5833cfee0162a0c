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

// Package apis defines the public Go-level contracts for errorable.
//
// The goal of this package is to provide *small, composable* interfaces and
// view types that the rest of the module (registry, dispatcher, aggregator,
// transport adapters) and user code can depend on without importing each
// other:
//
//   - Policy is the strategy that turns one error into status/title/detail/meta;
//   - Fact is one normalized error entry before formatting;
//   - ErrorObject and Document are the JSON:API wire shapes;
//   - Validatable, Reflector, Identifiable and friends are the capabilities
//     an object model exposes so that validation failures can be attributed.
//
// This package must remain lightweight and should not introduce heavy
// dependencies, so it only contains interfaces and very small view types.
package apis
