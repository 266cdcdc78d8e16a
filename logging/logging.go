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

// Package logging owns the zerolog logger used across pmx.
//
// The logger is disabled until Configure is called, so importing pmx never
// writes to the process' stderr on its own.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"dirpx.dev/pmx/apis"
)

// root is the module-wide base logger.
var root atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.Nop()
	root.Store(&l)
}

// Configure installs a console logger on stderr at cfg.LogLevel.
func Configure(cfg apis.Config) {
	ConfigureWriter(cfg, zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	})
}

// ConfigureWriter installs a logger writing to w at cfg.LogLevel.
// An unknown or empty level disables logging.
func ConfigureWriter(cfg apis.Config, w io.Writer) {
	level := ParseLevel(cfg.LogLevel)
	if level == zerolog.Disabled {
		l := zerolog.Nop()
		root.Store(&l)
		return
	}

	l := zerolog.New(w).Level(level).With().Timestamp().Str("lib", "pmx").Logger()
	// Add caller information for debug and trace levels
	if level <= zerolog.DebugLevel {
		l = l.With().Caller().Logger()
	}
	root.Store(&l)
	l.Debug().Str("level", level.String()).Msg("Logger initialized")
}

// ParseLevel maps a level name to a zerolog level. Unknown names and the
// empty string map to zerolog.Disabled.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.Disabled
	}
	return level
}

// Logger returns a contextualized logger with the given component name.
func Logger(component string) zerolog.Logger {
	return root.Load().With().Str("component", component).Logger()
}
