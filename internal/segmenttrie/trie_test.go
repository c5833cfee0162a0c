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

package segmenttrie

import "testing"

func TestInsertAndMatch_Simple(t *testing.T) {
	tr := New[int]('/')
	must(t, tr.Insert("runtime", 1))
	must(t, tr.Insert("net/http", 2))
	must(t, tr.Insert("github.com/gin-gonic/gin", 3))

	if v, ok, p := tr.MatchWithPattern("runtime/gopanic"); !ok || v != 1 || p != "runtime" {
		t.Fatalf("match runtime/gopanic => ok=%v v=%v p=%q; want ok=true v=1 p=runtime", ok, v, p)
	}
	if v, ok, p := tr.MatchWithPattern("net/http/HandlerFunc/ServeHTTP"); !ok || v != 2 || p != "net/http" {
		t.Fatalf("match net/http => ok=%v v=%v p=%q; want 2, net/http", ok, v, p)
	}
	if v, ok := tr.Match("github.com/gin-gonic/gin/(*Context)/Next"); !ok || v != 3 {
		t.Fatalf("match gin => ok=%v v=%v; want 3", ok, v)
	}
	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tr.Len())
	}
}

func TestSegmentBoundary(t *testing.T) {
	tr := New[int]('/')
	must(t, tr.Insert("net/http", 1))

	if _, ok := tr.Match("net/httptest/Server"); ok {
		t.Fatalf("unexpected match across segment boundary")
	}
	if _, ok := tr.Match("net"); ok {
		t.Fatalf("a shorter key must not match a longer prefix")
	}
}

func TestWildcard_OneSegment(t *testing.T) {
	tr := New[int]('.')
	must(t, tr.Insert("auth.*.verify", 498))
	must(t, tr.Insert("auth.jwt.verify", 401)) // exact should beat wildcard at same depth

	if v, ok, p := tr.MatchWithPattern("auth.jwt.verify"); !ok || v != 401 || p != "auth.jwt.verify" {
		t.Fatalf("exact must win over wildcard, got ok=%v v=%v p=%q", ok, v, p)
	}
	if v, ok, p := tr.MatchWithPattern("auth.saml.verify.token"); !ok || v != 498 || p != "auth.*.verify" {
		t.Fatalf("wildcard match failed: ok=%v v=%v p=%q", ok, v, p)
	}
	if _, ok, _ := tr.MatchWithPattern("auth.verify"); ok {
		t.Fatalf("wildcard should not match zero segments")
	}
}

func TestLPM_PrefersDeeperEvenIfExactBranchExists(t *testing.T) {
	tr := New[int]('.')
	must(t, tr.Insert("a.*.c", 7))
	must(t, tr.Insert("a.b", 1))

	if v, ok, p := tr.MatchWithPattern("a.b.c"); !ok || v != 7 || p != "a.*.c" {
		t.Fatalf("LPM must choose wildcard path: ok=%v v=%v p=%q", ok, v, p)
	}
}

func TestInsert_Replaces(t *testing.T) {
	tr := New[string]('/')
	must(t, tr.Insert("testing", "old"))
	must(t, tr.Insert("testing", "new"))

	if v, _ := tr.Match("testing/tRunner"); v != "new" {
		t.Fatalf("second insert must replace value, got %q", v)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
}

func TestInvalidInputs(t *testing.T) {
	tr := New[int]('/')
	if err := tr.Insert("", 1); err == nil {
		t.Fatalf("empty prefix must be invalid")
	}
	if err := tr.Insert("a//b", 1); err == nil {
		t.Fatalf("empty segment must be invalid")
	}
	if err := tr.Insert("*", 1); err == nil {
		t.Fatalf("wildcard-only prefix must be invalid")
	}
	if err := tr.Insert("*/*", 1); err == nil {
		t.Fatalf("wildcard-only prefix must be invalid")
	}

	must(t, tr.Insert("a/b", 1))
	if _, ok := tr.Match("a//b"); ok {
		t.Fatalf("match should be false for a key with an empty segment")
	}

	var nilTrie *Trie[int]
	if _, ok := nilTrie.Match("a"); ok {
		t.Fatalf("nil trie must not match")
	}
	if err := nilTrie.Insert("a", 1); err == nil {
		t.Fatalf("insert into nil trie must fail")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
