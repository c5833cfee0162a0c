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

// Package validation turns field-level validation failures of an object and
// of the related objects a client submitted with it into error facts.
//
// Aggregate walks the object first and then, for every relationship named
// in the payload tree, each related instance currently set on the object.
// Every failure becomes one 422 fact whose pointer tells the client which
// member of its request was wrong:
//
//	/data/relationships/<field>  the field is a declared association
//	/data/attributes/<field>     the field is a property of the object
//	(none)                       the failure is on "base"
//	/data/relationships/<field>  anything else, e.g. a dotted nested name
//
// Facts from related objects nest their meta under "relationship" together
// with the relationship name, the related type and the id (or temp-id) the
// client used, so the client can locate the offending sideposted resource.
package validation
