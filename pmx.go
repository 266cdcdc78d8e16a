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

package pmx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/pmx/apis"
	"dirpx.dev/pmx/builder"
	"dirpx.dev/pmx/config"
	"dirpx.dev/pmx/logging"
	uref "dirpx.dev/pmx/utils/reflect"
)

// init publishes the initial snapshot. Configuration comes from PMX_*
// environment variables, falling back to defaults if they cannot be read.
func init() {
	cfg, err := config.FromEnv(config.EnvPrefix)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	logging.Configure(cfg)

	b := builder.New()
	s := &state{cfg: cfg, bld: b}
	s.reg = b.BuildRegistry(cfg, nil)
	s.res = b.BuildResolver(cfg, s.reg, nil)
	st.Store(s)
}

var (
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.New("pmx: builder returned nil registry")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("pmx: builder returned nil resolver")
)

// Define registers m as the process-wide mapper of handler type H.
// Pointer and value forms of H share the registration.
func Define[H any](m apis.Mapper) error {
	return st.Load().reg.Register(reflect.TypeFor[H](), m)
}

// MustDefine is Define that panics on error. Meant for package init.
func MustDefine[H any](m apis.Mapper) {
	if err := Define[H](m); err != nil {
		panic(err)
	}
}

// MapperFor returns the mapper serving handler h, or nil if there is none.
func MapperFor(h apis.Handler) apis.Mapper {
	s := st.Load()
	return s.res.Resolve(h, s.cfg)
}

// UpdateProperty dispatches a single property change to h's mapper.
// Handlers without a mapper, unknown keys and nil views are ignored.
func UpdateProperty(h apis.Handler, v apis.View, key string) {
	if uref.IsNil(v) {
		return
	}
	if m := MapperFor(h); m != nil {
		m.UpdateProperty(h, v, key)
	}
}

// UpdateProperties runs a full refresh of v through h's mapper.
// Handlers without a mapper and nil views are ignored.
func UpdateProperties(h apis.Handler, v apis.View) {
	if uref.IsNil(v) {
		return
	}
	if m := MapperFor(h); m != nil {
		m.UpdateProperties(h, v)
	}
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the global configuration, reconfigures logging and
// rebuilds the unpinned registry and resolver.
func SetConfig(cfg apis.Config) {
	logging.Configure(cfg)
	publish(func(s *state) {
		s.cfg = cfg
		s.rebuild()
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs reg as the global registry and pins it.
// The resolver is rebuilt against it unless pinned. Nil is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	publish(func(s *state) {
		s.reg, s.preg = reg, true
		if !s.pres {
			s.res = s.bld.BuildResolver(s.cfg, reg, s.res)
		}
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs res as the global resolver and pins it. Nil is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	publish(func(s *state) {
		s.res, s.pres = res, true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the global builder and rebuilds the unpinned layers
// with it. Nil is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	publish(func(s *state) {
		s.bld = b
		s.rebuild()
	})
}

// SetAll replaces every component at once and resets both pins unless reg
// or res are given, in which case they are installed pinned. Nil cfg or bld
// leave the current value. Mainly used by tests to get a clean snapshot.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	if cfg != nil {
		logging.Configure(*cfg)
	}
	publish(func(s *state) {
		if cfg != nil {
			s.cfg = *cfg
		}
		if bld != nil {
			s.bld = bld
		}
		s.preg, s.pres = reg != nil, res != nil
		if reg != nil {
			s.reg = reg
		}
		if res != nil {
			s.res = res
		}
		s.rebuild()
	})
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool { return st.Load().preg }

// PinRegistry stops the global registry from being rebuilt.
func PinRegistry() { publish(func(s *state) { s.preg = true }) }

// UnpinRegistry lets the global registry be rebuilt again.
func UnpinRegistry() { publish(func(s *state) { s.preg = false }) }

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool { return st.Load().pres }

// PinResolver stops the global resolver from being rebuilt.
func PinResolver() { publish(func(s *state) { s.pres = true }) }

// UnpinResolver lets the global resolver be rebuilt again.
func UnpinResolver() { publish(func(s *state) { s.pres = false }) }

// buildMu serializes writers so we never publish partially-built snapshots.
var buildMu sync.Mutex

// st is the current global snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store; never
// mutate a published state. Writers copy, modify and swap.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg is the handler type -> mapper registry.
	reg apis.Registry
	// res finds the mapper of a handler.
	res apis.Resolver
	// bld builds reg and res.
	bld apis.Builder
	// preg indicates whether reg is pinned.
	preg bool
	// pres indicates whether res is pinned.
	pres bool
}

// rebuild rebuilds the unpinned layers with the snapshot's builder.
func (s *state) rebuild() {
	if !s.preg {
		s.reg = s.bld.BuildRegistry(s.cfg, s.reg)
	}
	if !s.pres {
		s.res = s.bld.BuildResolver(s.cfg, s.reg, s.res)
	}
}

// publish copies the current snapshot, applies mutate and stores the result.
func publish(mutate func(s *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	mutate(&next)

	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(&next)
}
