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

package errorable

import (
	"sync/atomic"

	"dirpx.dev/errorable/logging"
	"dirpx.dev/errorable/stacktrace"
)

// State is the process-wide switchboard: the enabled flag, the log sink,
// the backtrace cleaner and the default for revealing raw errors. All
// accessors are safe for concurrent use.
type State struct {
	disabled  atomic.Bool
	revealRaw atomic.Bool
	logger    atomic.Pointer[loggerBox]
	cleaner   atomic.Pointer[stacktrace.Cleaner]
}

// loggerBox gives atomic.Pointer a single concrete type to hold.
type loggerBox struct {
	l logging.Logger
}

// NewState returns an enabled state logging to the stdout console sink.
func NewState() *State {
	s := &State{}
	s.cleaner.Store(stacktrace.DefaultCleaner())
	return s
}

var defaultState = NewState()

// DefaultState returns the state used by handlers built without WithState.
func DefaultState() *State { return defaultState }

// Enable turns handling on.
func (s *State) Enable() { s.disabled.Store(false) }

// Disable turns handling off: Dispatch returns errors untouched.
func (s *State) Disable() { s.disabled.Store(true) }

// IsDisabled reports whether handling is off.
func (s *State) IsDisabled() bool { return s.disabled.Load() }

// SetLogger replaces the log sink. A nil sink restores the console sink.
func (s *State) SetLogger(l logging.Logger) {
	if l == nil {
		s.logger.Store(nil)
		return
	}
	s.logger.Store(&loggerBox{l: l})
}

// Logger returns the log sink, creating the console sink on first use.
func (s *State) Logger() logging.Logger {
	if b := s.logger.Load(); b != nil {
		return b.l
	}
	b := &loggerBox{l: logging.Default()}
	if s.logger.CompareAndSwap(nil, b) {
		return b.l
	}
	return s.logger.Load().l
}

// SetCleaner replaces the backtrace cleaner. A nil cleaner keeps every
// frame.
func (s *State) SetCleaner(c *stacktrace.Cleaner) { s.cleaner.Store(c) }

// Cleaner returns the backtrace cleaner.
func (s *State) Cleaner() *stacktrace.Cleaner { return s.cleaner.Load() }

// SetRevealRawError sets whether every dispatched error carries its raw
// message and backtrace in meta, regardless of policy.
func (s *State) SetRevealRawError(on bool) { s.revealRaw.Store(on) }

// RevealRawError reports the process-wide raw error default.
func (s *State) RevealRawError() bool { return s.revealRaw.Load() }

// Enable turns handling on for DefaultState.
func Enable() { defaultState.Enable() }

// Disable turns handling off for DefaultState.
func Disable() { defaultState.Disable() }

// IsDisabled reports whether handling is off for DefaultState.
func IsDisabled() bool { return defaultState.IsDisabled() }

// SetLogger replaces the log sink of DefaultState.
func SetLogger(l logging.Logger) { defaultState.SetLogger(l) }

// Logger returns the log sink of DefaultState.
func Logger() logging.Logger { return defaultState.Logger() }
