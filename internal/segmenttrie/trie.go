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

import (
	"errors"
	"strings"
)

// Wildcard is the segment that matches exactly one arbitrary segment.
const Wildcard = "*"

// Trie is a segment-aware prefix index for separator-delimited keys such as
// "runtime/debug" or "github.com/gin-gonic/gin". Each node represents one
// segment; the wildcard "*" matches exactly one segment. The trie supports
// longest-prefix-match (LPM) with segment boundaries, so a more specific rule
// wins over a shorter one and "net/ht" never matches "net/http".
type Trie[T any] struct {
	// sep separates segments in both prefixes and keys.
	sep byte
	// children contains next segments, including "*" for a single-segment wildcard.
	children map[string]*Trie[T]
	// hasVal marks that this node carries a value for the prefix ending here.
	hasVal bool
	val    T
	// pattern is the prefix as inserted, set only when hasVal=true.
	pattern string
}

var (
	// ErrInvalidPrefix is returned when inserting a prefix that is empty,
	// has empty segments, or consists only of wildcards.
	ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")
)

// New creates an empty trie whose keys are split on sep.
func New[T any](sep byte) *Trie[T] {
	return &Trie[T]{sep: sep, children: make(map[string]*Trie[T])}
}

// Insert adds a prefix to the trie and associates it with val. Inserting the
// same prefix twice replaces the value.
//
// Examples with sep='/':
//
//	"runtime"
//	"net/http"
//	"github.com/*/gin"
//
// A prefix made only of "*" segments is rejected, because it is too generic.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil {
		return ErrInvalidPrefix
	}
	if prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, string(t.sep))

	allWild := true
	for _, s := range segs {
		if s == "" {
			return ErrInvalidPrefix
		}
		if s != Wildcard {
			allWild = false
		}
	}
	if allWild {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		child, exists := cur.children[s]
		if !exists {
			child = New[T](t.sep)
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Len returns the number of stored prefixes.
func (t *Trie[T]) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	if t.hasVal {
		n++
	}
	for _, c := range t.children {
		n += c.Len()
	}
	return n
}

// Match finds the best (deepest) prefix match for key.
// It returns (value, true) on success, or the zero value and false.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(key)
	return v, ok
}

// MatchWithPattern returns the value and the stored prefix of the deepest
// match. Both exact segment matches and "*" wildcard branches are explored,
// so a deeper wildcard rule beats a shallower exact one.
func (t *Trie[T]) MatchWithPattern(key string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	bestDepth := -1
	var best *Trie[T]

	var dfs func(n *Trie[T], off, depth int)
	dfs = func(n *Trie[T], off, depth int) {
		if n.hasVal && depth > bestDepth {
			bestDepth = depth
			best = n
		}
		if off >= len(key) {
			return
		}
		i := strings.IndexByte(key[off:], t.sep)
		if i == 0 {
			return // empty segment => stop this path
		}
		end := len(key)
		if i > 0 {
			end = off + i
		}
		seg := key[off:end] // substring; no heap alloc
		nextOff := end
		if nextOff < len(key) {
			nextOff++
		}

		if next, ok := n.children[seg]; ok {
			dfs(next, nextOff, depth+1)
		}
		if next, ok := n.children[Wildcard]; ok {
			dfs(next, nextOff, depth+1)
		}
	}

	dfs(t, 0, 0)
	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}
