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

package config

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"sort"
	"strings"

	"dirpx.dev/errorable"
	"dirpx.dev/errorable/code"
	"dirpx.dev/errorable/logging"
	"dirpx.dev/errorable/policy"
	"dirpx.dev/errorable/registry"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "ERRORABLE"

var (
	// ErrUnknownType is returned by Apply for an exception name with no
	// bound Go type.
	ErrUnknownType = errors.New("config: exception has no bound type")

	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config is the complete configuration.
type Config struct {
	Enabled        bool                 `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	RevealRawError bool                 `mapstructure:"reveal_raw_error" json:"reveal_raw_error" yaml:"reveal_raw_error"`
	Log            Log                  `mapstructure:"log" json:"log" yaml:"log"`
	Exceptions     map[string]Exception `mapstructure:"exceptions" json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
}

// Log configures the console sink.
type Log struct {
	Format    string `mapstructure:"format" json:"format" yaml:"format"`
	Level     string `mapstructure:"level" json:"level" yaml:"level"`
	Timestamp bool   `mapstructure:"timestamp" json:"timestamp" yaml:"timestamp"`
}

// Exception is one registration. Zero fields keep the policy defaults.
type Exception struct {
	Status           int            `mapstructure:"status" json:"status,omitempty" yaml:"status,omitempty"`
	Title            string         `mapstructure:"title" json:"title,omitempty" yaml:"title,omitempty"`
	Message          string         `mapstructure:"message" json:"message,omitempty" yaml:"message,omitempty"`
	MessageFromError bool           `mapstructure:"message_from_error" json:"message_from_error,omitempty" yaml:"message_from_error,omitempty"`
	Log              *bool          `mapstructure:"log" json:"log,omitempty" yaml:"log,omitempty"`
	RevealRawError   bool           `mapstructure:"reveal_raw_error" json:"reveal_raw_error,omitempty" yaml:"reveal_raw_error,omitempty"`
	Meta             map[string]any `mapstructure:"meta" json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Options converts e into policy options.
func (e Exception) Options() []policy.Option {
	var opts []policy.Option
	if e.Status != 0 {
		opts = append(opts, policy.WithStatus(e.Status))
	}
	if e.Title != "" {
		opts = append(opts, policy.WithTitle(e.Title))
	}
	switch {
	case e.MessageFromError:
		opts = append(opts, policy.WithRawMessage())
	case e.Message != "":
		opts = append(opts, policy.WithMessage(e.Message))
	}
	if e.Log != nil {
		opts = append(opts, policy.WithLog(*e.Log))
	}
	if e.RevealRawError {
		opts = append(opts, policy.WithRawError(true))
	}
	if len(e.Meta) > 0 {
		meta := maps.Clone(e.Meta)
		opts = append(opts, policy.WithMeta(func(error) map[string]any { return meta }))
	}
	return opts
}

// Default returns the configuration used when nothing is read. The
// environment is not consulted.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		panic(err)
	}
	return c
}

func setDefaults(v *viper.Viper) {
	defaults := map[string]any{
		"enabled":          true,
		"reveal_raw_error": false,
		"log.format":       string(logging.FormatText),
		"log.level":        "error",
		"log.timestamp":    true,
	}
	for k, value := range defaults {
		v.SetDefault(k, value)
	}
}

// Load applies defaults and environment overrides to v and decodes it.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return c, nil
}

// Read reads the file at path. The format follows the extension.
func Read(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Load(v)
}

// ReadNamed looks for a file called name (any supported extension) in
// paths, then in "." and "configs".
func ReadNamed(name string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(name)
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("configs")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", name, err)
	}
	return Load(v)
}

// Validate reports every problem in c, joined.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, err)
	}
	for _, name := range c.Names() {
		e := c.Exceptions[name]
		if e.Status != 0 && (e.Status < 400 || e.Status > 599) {
			errs = append(errs, fmt.Errorf("exceptions.%s.status: %d is not an error status", name, e.Status))
		} else if e.Status != 0 && !hasName(e.Status) && e.Title == "" {
			errs = append(errs, fmt.Errorf("exceptions.%s: status %d has no name; a title is required", name, e.Status))
		}
		if e.MessageFromError && e.Message != "" {
			errs = append(errs, fmt.Errorf("exceptions.%s: message and message_from_error are exclusive", name))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

func hasName(status int) bool {
	_, ok := code.ForStatus(status)
	return ok
}

// Logger builds the console sink described by c.Log, writing to w.
func (c *Config) Logger(w io.Writer) logging.Logger {
	f, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		f = logging.FormatText
	}
	return logging.New(w,
		logging.WithFormat(f),
		logging.WithLevel(c.Log.Level),
		logging.WithTimestamp(c.Log.Timestamp),
	)
}

// Names returns the exception names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Exceptions))
	for name := range c.Exceptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exception returns the named registration. Names match case-insensitively,
// since viper lower-cases keys.
func (c *Config) Exception(name string) (Exception, bool) {
	if e, ok := c.Exceptions[name]; ok {
		return e, true
	}
	for k, e := range c.Exceptions {
		if strings.EqualFold(k, name) {
			return e, true
		}
	}
	return Exception{}, false
}

// Bindings maps exception names to a prototype of the Go error type they
// configure.
type Bindings map[string]error

func (b Bindings) lookup(name string) (error, bool) {
	if proto, ok := b[name]; ok {
		return proto, true
	}
	for k, proto := range b {
		if strings.EqualFold(k, name) {
			return proto, true
		}
	}
	return nil, false
}

// Apply registers every configured exception in reg and applies the global
// settings to state. Registrations are all-or-nothing; state is touched
// only when they succeed. A nil state leaves global settings alone.
func Apply(c *Config, reg *registry.Registry, state *errorable.State, b Bindings) error {
	if err := c.Validate(); err != nil {
		return err
	}

	opts := make([]registry.Option, 0, len(c.Exceptions))
	var missing []error
	for _, name := range c.Names() {
		proto, ok := b.lookup(name)
		if !ok {
			missing = append(missing, fmt.Errorf("%w: %q", ErrUnknownType, name))
			continue
		}
		opts = append(opts, registry.WithException(proto, c.Exceptions[name].Options()...))
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}
	if err := reg.Apply(opts...); err != nil {
		return fmt.Errorf("config: register: %w", err)
	}

	if state == nil {
		return nil
	}
	if c.Enabled {
		state.Enable()
	} else {
		state.Disable()
	}
	state.SetRevealRawError(c.RevealRawError)
	state.SetLogger(c.Logger(os.Stdout))
	return nil
}
