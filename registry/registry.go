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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/pmx/apis"
	"dirpx.dev/pmx/config"
	"dirpx.dev/pmx/logging"
	uref "dirpx.dev/pmx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("pmx(registry): nil reflect.Type provided")
	// ErrNilMapper is returned when a nil mapper is provided.
	ErrNilMapper = errors.New("pmx(registry): nil mapper provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a handler type with a different mapper.
	ErrConflictingRegistration = errors.New("pmx(registry): conflicting handler registration")
)

// New constructs a Registry that normalizes handler types according to cfg.
// Only MaxUnwrap and MapPreferElem are used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps normalized handler types to their mapper.
	m sync.Map // map[reflect.Type]apis.Mapper
	// count tracks the number of registered entries.
	count int
}

// Register associates the nearest named type of t with m.
// It is idempotent for the same (type, mapper) pair.
func (r *registry) Register(t reflect.Type, m apis.Mapper) error {
	if t == nil {
		return ErrNilType
	}
	if uref.IsNil(m) {
		return ErrNilMapper
	}

	// *Handler and Handler share one key.
	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(b); ok {
		return sameMapper(old.(apis.Mapper), m)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(b); ok {
		return sameMapper(old.(apis.Mapper), m)
	}

	r.m.Store(b, m)
	r.count++

	logger := logging.Logger("registry")
	logger.Debug().
		Stringer("handler", b).
		Type("mapper", m).
		Msg("Mapper registered")
	return nil
}

// sameMapper reports a conflict unless m is the mapper already stored.
// Mappers whose dynamic value cannot be compared always conflict.
func sameMapper(old, m apis.Mapper) error {
	if reflect.ValueOf(old).Comparable() && old == m {
		return nil
	}
	return ErrConflictingRegistration
}

// Lookup returns the mapper registered for a handler type.
func (r *registry) Lookup(t reflect.Type) (apis.Mapper, bool) {
	if t == nil {
		return nil, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(nt); ok {
		return v.(apis.Mapper), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:   key.(reflect.Type),
			Mapper: value.(apis.Mapper),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
