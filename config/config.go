/*
   Copyright 2025 The DIRPX Authors.

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
	"dirpx.dev/pmx/apis"
)

// Defaults applied by DefaultConfig and restored by options given an out of
// range value.
const (
	// DefaultIncludeBuiltins lets diagnostics name a builtin view type
	// ("string", "int") instead of printing its raw reflect form.
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap is how many pointer/slice/array/chan/map layers are
	// peeled off a handler type before it is keyed in the registry.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem keys a map[K]V handler type by V.
	DefaultMapPreferElem = true
	// DefaultLogLevel keeps the module silent unless asked otherwise.
	DefaultLogLevel = "disabled"
)

// Option adjusts an apis.Config while NewConfig builds it.
type Option func(*apis.Config)

// DefaultConfig returns the configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
		LogLevel:        DefaultLogLevel,
	}
}

// NewConfig applies opts, in order, on top of DefaultConfig.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, apply := range opts {
		apply(&cfg)
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// WithIncludeBuiltins controls whether mismatch diagnostics name builtin view
// types. When off they fall back to the reflect form, e.g. "[]string".
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) { c.IncludeBuiltins = include }
}

// WithMaxUnwrap limits how deep handler types are unwrapped when keyed, so
// that *Button, []*Button and Button share one registration. A negative
// depth restores the default; zero is kept and read as the default by the
// registry.
func WithMaxUnwrap(depth int) Option {
	return func(c *apis.Config) {
		c.MaxUnwrap = depth
		if depth < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
		}
	}
}

// WithMapPreferElem picks the side of a map[K]V handler type that is keyed:
// V when true, K otherwise. The other side is used when the preferred one
// has no named type.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) { c.MapPreferElem = prefer }
}

// WithLogLevel sets the zerolog level name. An empty level restores the
// default.
func WithLogLevel(level string) Option {
	return func(c *apis.Config) {
		c.LogLevel = level
		if level == "" {
			c.LogLevel = DefaultLogLevel
		}
	}
}
