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

package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/pmx/config"
	"dirpx.dev/pmx/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want zerolog.Level
	}{
		{"trace", "trace", zerolog.TraceLevel},
		{"debug upper case", "DEBUG", zerolog.DebugLevel},
		{"padded info", " info ", zerolog.InfoLevel},
		{"disabled", "disabled", zerolog.Disabled},
		{"empty disables", "", zerolog.Disabled},
		{"unknown disables", "chatty", zerolog.Disabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	var buf bytes.Buffer
	logging.ConfigureWriter(config.DefaultConfig(), &buf)

	l := logging.Logger("test")
	l.Error().Msg("should not be written")

	assert.Zero(t, buf.Len())
}

func TestConfigureWriter_LevelAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logging.ConfigureWriter(config.NewConfig(config.WithLogLevel("info")), &buf)
	t.Cleanup(func() { logging.ConfigureWriter(config.DefaultConfig(), &bytes.Buffer{}) })

	l := logging.Logger("mapper")
	l.Debug().Msg("below level")
	l.Info().Str("key", "text").Msg("above level")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.NotContains(t, out, "below level")
	assert.Contains(t, out, "above level")
	assert.Contains(t, out, `"component":"mapper"`)
	assert.Contains(t, out, `"lib":"pmx"`)
}
