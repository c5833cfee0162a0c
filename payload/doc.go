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

// Package payload models the relationship payload a client submits with a
// write: which related resources were sent under which relationship, and
// the identifiers they were sent with.
//
// A Tree maps relationship names to an Entry, which is either a single Node
// (to-one) or a list of Nodes (to-many). Each Node carries its identifying
// Meta and the nested Tree of its own relationships. Key order is preserved
// from the JSON input because it decides the order of reported errors.
//
//	{
//	  "pets": [
//	    {"meta": {"temp-id": "p1", "type": "pets"},
//	     "relationships": {"toys": {"meta": {"id": "9", "type": "toys"}}}}
//	  ]
//	}
//
// FromDocument derives the same structure from a JSON:API request document
// with sideposted resources in "included".
package payload
