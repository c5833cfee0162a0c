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

package model

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

// Humanize turns a field name into a label: "first_name" and "firstName"
// become "First name", "author_id" becomes "Author", and a dotted nested
// name such as "author.name" becomes "Author name".
func Humanize(field string) string {
	s := strings.ReplaceAll(field, ".", "_")
	s = strings.TrimSuffix(strcase.ToSnake(s), "_id")
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// FullMessage renders "<Humanized field> <message>"; failures on Base are
// returned unchanged.
func FullMessage(field, message string) string {
	if field == Base {
		return message
	}
	label := Humanize(field)
	if label == "" {
		return message
	}
	return label + " " + message
}

// TypeName derives a resource type from a Go type name: "BlogPost" becomes
// "blog_posts".
func TypeName(goName string) string {
	return inflection.Plural(strcase.ToSnake(goName))
}
