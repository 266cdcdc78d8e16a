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
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"dirpx.dev/pmx/apis"
)

// EnvPrefix is the default prefix for environment overrides.
const EnvPrefix = "PMX_"

// FromEnv returns the default configuration overlaid with environment
// variables carrying prefix (EnvPrefix when empty):
//
//	PMX_INCLUDE_BUILTINS=false
//	PMX_MAX_UNWRAP=4
//	PMX_MAP_PREFER_ELEM=false
//	PMX_LOG_LEVEL=debug
//
// Extra options are applied after the environment.
func FromEnv(prefix string, opts ...Option) (apis.Config, error) {
	if prefix == "" {
		prefix = EnvPrefix
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}), nil)
	if err != nil {
		return apis.Config{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	var envOpts []Option
	if k.Exists("include_builtins") {
		envOpts = append(envOpts, WithIncludeBuiltins(k.Bool("include_builtins")))
	}
	if k.Exists("max_unwrap") {
		envOpts = append(envOpts, WithMaxUnwrap(k.Int("max_unwrap")))
	}
	if k.Exists("map_prefer_elem") {
		envOpts = append(envOpts, WithMapPreferElem(k.Bool("map_prefer_elem")))
	}
	if k.Exists("log_level") {
		envOpts = append(envOpts, WithLogLevel(strings.ToLower(k.String("log_level"))))
	}

	return NewConfig(append(envOpts, opts...)...), nil
}
