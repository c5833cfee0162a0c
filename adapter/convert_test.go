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

package adapter

import (
	"encoding/json"
	"testing"

	"dirpx.dev/errorable/apis"
	"dirpx.dev/errorable/code"
	"dirpx.dev/errorable/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToErrorObject_Exception(t *testing.T) {
	t.Parallel()

	obj := ToErrorObject(apis.Fact{
		Code:   code.InternalServerError,
		Status: 500,
		Title:  "Error",
		Detail: "boom",
	})

	b, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t,
		`{"code":"internal_server_error","status":"500","title":"Error","detail":"boom","meta":{}}`,
		string(b))
}

func TestToErrorObject_MemberOrderWithSource(t *testing.T) {
	t.Parallel()

	obj := ToErrorObject(apis.Fact{
		Code:    code.UnprocessableEntity,
		Status:  422,
		Title:   "Validation Error",
		Detail:  "Username can't be blank",
		Pointer: pointer.Attribute("username"),
		Meta:    map[string]any{"attribute": "username", "message": "can't be blank", "code": "blank"},
	})

	b, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t,
		`{"code":"unprocessable_entity","status":"422","title":"Validation Error",`+
			`"detail":"Username can't be blank","source":{"pointer":"/data/attributes/username"},`+
			`"meta":{"attribute":"username","code":"blank","message":"can't be blank"}}`,
		string(b))
}

func TestToErrorObject_MissingCodeIsOmitted(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(ToErrorObject(apis.Fact{Status: 418, Title: "Error"}))
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"code"`)
	assert.Contains(t, string(b), `"status":"418"`)
}

func TestToErrorObject_CopiesMeta(t *testing.T) {
	t.Parallel()

	meta := map[string]any{"a": 1}
	obj := ToErrorObject(apis.Fact{Status: 500, Meta: meta})
	obj.Meta["b"] = 2
	assert.NotContains(t, meta, "b")
}

func TestToDocument(t *testing.T) {
	t.Parallel()

	empty := ToDocument()
	require.NotNil(t, empty.Errors)
	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, `{"errors":[]}`, string(b))

	doc := ToDocument(apis.Fact{Status: 400, Detail: "one"}, apis.Fact{Status: 400, Detail: "two"})
	require.Len(t, doc.Errors, 2)
	assert.Equal(t, "one", doc.Errors[0].Detail)
	assert.Equal(t, "two", doc.Errors[1].Detail)
}
