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

package mapper

import (
	"reflect"
	"slices"
	"sync/atomic"

	"dirpx.dev/pmx/apis"
	"dirpx.dev/pmx/logging"
	uref "dirpx.dev/pmx/utils/reflect"
)

// NewTyped returns an empty Typed mapper without a chain.
func NewTyped[V any]() *Typed[V] {
	return &Typed[V]{}
}

// NewChained returns an empty Typed mapper that falls back to chained.
func NewChained[V any](chained apis.Mapper) *Typed[V] {
	m := &Typed[V]{}
	m.SetChained(chained)
	return m
}

// Typed is a mapper whose actions are written against view type V, with an
// optional fallback mapper consulted on a local miss.
type Typed[V any] struct {
	// t holds the local registrations.
	t table
	// chained is the fallback mapper. Not owned.
	chained apis.Mapper
	// cache holds the merged key sets; stale once its stamp differs from
	// Version().
	cache atomic.Pointer[keyCache]
	// scoped holds the lazily created Actions, keyed by their view type.
	scoped map[reflect.Type]any
}

// Ensure Typed implements apis.Mapper.
var _ apis.Mapper = (*Typed[any])(nil)

// Chained returns the fallback mapper, or nil.
func (m *Typed[V]) Chained() apis.Mapper {
	return m.chained
}

// SetChained replaces the fallback mapper and recomputes the merged key set.
// Chaining a mapper to itself panics with ErrSelfChain; longer cycles are
// not detected.
func (m *Typed[V]) SetChained(chained apis.Mapper) {
	if uref.IsNil(chained) {
		chained = nil
	}
	if self, ok := chained.(*Typed[V]); ok && self == m {
		panic(ErrSelfChain)
	}
	m.chained = chained
	m.t.rev = stamps.Add(1)
	m.refresh()

	logger := logging.Logger("mapper")
	logger.Debug().
		Stringer("view", reflect.TypeFor[V]()).
		Bool("chained", chained != nil).
		Msg("Mapper chain reassigned")
}

// Set registers a bulk-eligible action for key, replacing any previous one.
func (m *Typed[V]) Set(key string, action func(apis.Handler, V)) {
	m.Add(key, action, true)
}

// Add registers action for key with an explicit bulk flag.
func (m *Typed[V]) Add(key string, action func(apis.Handler, V), bulk bool) {
	m.put(key, bind(key, action), bulk)
}

// put stores a bound action and warms the key cache, so that readers after
// registration only ever load it.
func (m *Typed[V]) put(key string, action apis.Action, bulk bool) {
	m.t.put(key, action, bulk)
	m.refresh()
}

// Actions returns the scoped action mapper for V itself.
func (m *Typed[V]) Actions() *Actions[V, V] {
	return ActionsFor[V](m)
}

// UpdateProperty runs the action for key, falling back along the chain.
// Unknown keys and nil views are ignored.
func (m *Typed[V]) UpdateProperty(h apis.Handler, v apis.View, key string) {
	if uref.IsNil(v) {
		return
	}
	m.resolve(key, h, v)
}

// UpdateProperties runs the action of every key in Keys once. Local
// registrations shadow those of the chain.
func (m *Typed[V]) UpdateProperties(h apis.Handler, v apis.View) {
	if uref.IsNil(v) {
		return
	}
	for _, key := range m.refresh().keys {
		m.resolve(key, h, v)
	}
}

func (m *Typed[V]) resolve(key string, h apis.Handler, v apis.View) {
	if action, ok := m.t.lookup(key); ok {
		action(h, v)
		return
	}
	if m.chained != nil {
		m.chained.UpdateProperty(h, v, key)
		return
	}
	traceMiss(key, v)
}

// Keys returns the key set UpdateProperties walks. Without a chain that is
// every local key; with a chain it is the local bulk-eligible keys plus the
// chain's BulkKeys.
func (m *Typed[V]) Keys() []string {
	return slices.Clone(m.refresh().keys)
}

// BulkKeys returns the local bulk-eligible keys plus the chain's BulkKeys.
func (m *Typed[V]) BulkKeys() []string {
	return slices.Clone(m.refresh().bulk)
}

// Count returns the size of Keys.
func (m *Typed[V]) Count() int {
	return len(m.refresh().keys)
}

// Has reports whether key is registered locally.
func (m *Typed[V]) Has(key string) bool {
	_, ok := m.t.entries[key]
	return ok
}

// Version returns the largest revision stamp along the chain.
func (m *Typed[V]) Version() uint64 {
	v := m.t.rev
	if m.chained != nil {
		v = max(v, m.chained.Version())
	}
	return v
}

// Entries returns a snapshot of the local registrations, sorted by key.
func (m *Typed[V]) Entries() []apis.MapperEntry {
	return m.t.snapshot()
}

// keyCache is an immutable snapshot of the merged key sets at stamp at.
type keyCache struct {
	at   uint64
	keys []string
	bulk []string
}

// refresh returns the merged key sets, recomputing them if anything along the
// chain changed since they were cached. Concurrent readers may recompute the
// same snapshot; the last store wins and every stored snapshot is consistent.
func (m *Typed[V]) refresh() *keyCache {
	version := m.Version()
	if c := m.cache.Load(); c != nil && c.at == version {
		return c
	}

	c := &keyCache{at: version}
	own := m.t.keys(true)
	if m.chained == nil {
		c.bulk = own
		c.keys = m.t.keys(false)
	} else {
		c.bulk = union(own, m.chained.BulkKeys())
		c.keys = c.bulk
	}
	m.cache.Store(c)

	logger := logging.Logger("mapper")
	logger.Trace().
		Stringer("view", reflect.TypeFor[V]()).
		Int("keys", len(c.keys)).
		Msg("Merged key set computed")
	return c
}

// union merges two sorted key lists without duplicates.
func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)
	return slices.Compact(out)
}

// bind wraps a typed action in an untyped one that checks the view type
// before calling it.
func bind[W any](key string, action func(apis.Handler, W)) apis.Action {
	if action == nil {
		return nil
	}
	return func(h apis.Handler, v apis.View) {
		w, ok := v.(W)
		if !ok {
			err := newTypeMismatch(key, reflect.TypeFor[W](), v)
			logger := logging.Logger("mapper")
			logger.Error().
				Err(err).
				Msg("Property action invoked with the wrong view type")
			panic(err)
		}
		action(h, w)
	}
}
