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

package builder

import (
	"dirpx.dev/pmx/apis"
	"dirpx.dev/pmx/logging"
	"dirpx.dev/pmx/registry"
	"dirpx.dev/pmx/resolver"
	"dirpx.dev/pmx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds a new apis.Registry for cfg. Entries of a previous
// registry are carried over; those its new normalization rules reject are
// dropped and logged.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if preg == nil {
		return nreg
	}
	logger := logging.Logger("builder")
	for _, e := range preg.Entries() {
		if err := nreg.Register(e.Type, e.Mapper); err != nil {
			logger.Warn().
				Stringer("handler", e.Type).
				Err(err).
				Msg("Dropped mapper while rebuilding registry")
		}
	}
	return nreg
}

// BuildResolver builds a resolver that prefers handlers carrying their own
// mapper and falls back to reg.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver) apis.Resolver {
	return resolver.New(
		strategy.NewProviderStrategy(),
		strategy.NewRegistryStrategy(reg),
	)
}
