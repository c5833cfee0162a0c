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

package stacktrace

import (
	"fmt"
	"strings"

	"dirpx.dev/errorable/internal/segmenttrie"
)

// Cleaner filters and rewrites backtraces before they reach operators or
// clients.
//
// Silencers drop frames whose function belongs to a silenced package prefix;
// matching respects path segments, so "net/http" silences
// "net/http.(*conn).serve" but not "net/httptest.NewServer". The root filter
// trims a directory prefix from file paths.
type Cleaner struct {
	silencers *segmenttrie.Trie[struct{}]
	root      string
}

// CleanerOption configures a Cleaner.
type CleanerOption func(*cleanerConfig)

type cleanerConfig struct {
	silenced []string
	root     string
}

// WithSilenced adds package prefixes whose frames are dropped.
func WithSilenced(prefixes ...string) CleanerOption {
	return func(c *cleanerConfig) { c.silenced = append(c.silenced, prefixes...) }
}

// WithRoot trims dir from the beginning of file paths.
func WithRoot(dir string) CleanerOption {
	return func(c *cleanerConfig) { c.root = strings.TrimSuffix(dir, "/") + "/" }
}

// DefaultSilenced lists the packages silenced by DefaultCleaner.
var DefaultSilenced = []string{"runtime", "testing", "reflect"}

// NewCleaner builds a Cleaner. It fails when a silencer is malformed.
func NewCleaner(opts ...CleanerOption) (*Cleaner, error) {
	var cfg cleanerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &Cleaner{silencers: segmenttrie.New[struct{}]('/'), root: cfg.root}
	for _, p := range cfg.silenced {
		if err := c.silencers.Insert(functionKey(p), struct{}{}); err != nil {
			return nil, fmt.Errorf("stacktrace: silencer %q: %w", p, err)
		}
	}
	return c, nil
}

// DefaultCleaner silences the Go runtime, testing and reflect frames.
func DefaultCleaner() *Cleaner {
	c, err := NewCleaner(WithSilenced(DefaultSilenced...))
	if err != nil {
		panic(err)
	}
	return c
}

// Clean returns a filtered copy of s. A nil Cleaner returns s unchanged.
func (c *Cleaner) Clean(s Stack) Stack {
	if c == nil || len(s) == 0 {
		return s
	}
	out := make(Stack, 0, len(s))
	for _, f := range s {
		if _, silenced := c.silencers.Match(functionKey(f.Function)); silenced {
			continue
		}
		if c.root != "/" && c.root != "" {
			f.File = strings.TrimPrefix(f.File, c.root)
		}
		out = append(out, f)
	}
	return out
}

// functionKey turns "github.com/pkg/errors.New" into "github/com/pkg/errors/New"
// so that package paths and symbol names share one separator.
func functionKey(fn string) string {
	return strings.ReplaceAll(fn, ".", "/")
}
