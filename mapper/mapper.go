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
	"slices"
	"strings"
	"sync/atomic"

	"dirpx.dev/pmx/apis"
	"dirpx.dev/pmx/logging"
	uref "dirpx.dev/pmx/utils/reflect"
)

// stamps hands out process-wide, strictly increasing revision stamps, so the
// largest stamp along a chain changes whenever any member of it changes.
var stamps atomic.Uint64

// entry is a registered action and its bulk flag.
type entry struct {
	action apis.Action
	bulk   bool
}

// table is the key -> action storage shared by Mapper and Typed.
type table struct {
	entries map[string]entry
	rev     uint64
}

// put stores action under key. A nil action is stored as a no-op so that a
// present key always has something to call.
func (t *table) put(key string, action apis.Action, bulk bool) {
	if action == nil {
		action = noop
	}
	if t.entries == nil {
		t.entries = make(map[string]entry)
	}
	t.entries[key] = entry{action: action, bulk: bulk}
	t.rev = stamps.Add(1)
}

func (t *table) lookup(key string) (apis.Action, bool) {
	e, ok := t.entries[key]
	return e.action, ok
}

// keys returns the sorted keys, optionally only the bulk-eligible ones.
func (t *table) keys(bulkOnly bool) []string {
	out := make([]string, 0, len(t.entries))
	for k, e := range t.entries {
		if bulkOnly && !e.bulk {
			continue
		}
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func (t *table) snapshot() []apis.MapperEntry {
	out := make([]apis.MapperEntry, 0, len(t.entries))
	for k, e := range t.entries {
		out = append(out, apis.MapperEntry{Key: k, Bulk: e.bulk})
	}
	slices.SortFunc(out, func(a, b apis.MapperEntry) int {
		return strings.Compare(a.Key, b.Key)
	})
	return out
}

func noop(apis.Handler, apis.View) {}

// traceMiss records a key no mapper along the chain knows about.
func traceMiss(key string, v apis.View) {
	logger := logging.Logger("mapper")
	logger.Trace().
		Str("key", key).
		Type("view", v).
		Msg("No action registered for property")
}

// New returns an empty untyped Mapper.
func New() *Mapper {
	return &Mapper{}
}

// Mapper is the untyped base form: a plain key -> action table with no
// fallback. The zero value is ready to use.
type Mapper struct {
	t table
}

// Ensure Mapper implements apis.Mapper.
var _ apis.Mapper = (*Mapper)(nil)

// Set registers a bulk-eligible action for key, replacing any previous one.
func (m *Mapper) Set(key string, action apis.Action) {
	m.Add(key, action, true)
}

// Add registers action for key with an explicit bulk flag.
func (m *Mapper) Add(key string, action apis.Action, bulk bool) {
	m.t.put(key, action, bulk)
}

// UpdateProperty runs the action for key. Unknown keys and nil views are ignored.
func (m *Mapper) UpdateProperty(h apis.Handler, v apis.View, key string) {
	if uref.IsNil(v) {
		return
	}
	m.resolve(key, h, v)
}

// UpdateProperties runs the action of every registered key once.
func (m *Mapper) UpdateProperties(h apis.Handler, v apis.View) {
	if uref.IsNil(v) {
		return
	}
	for _, key := range m.Keys() {
		m.resolve(key, h, v)
	}
}

func (m *Mapper) resolve(key string, h apis.Handler, v apis.View) {
	if action, ok := m.t.lookup(key); ok {
		action(h, v)
		return
	}
	traceMiss(key, v)
}

// Keys returns every registered key, regardless of its bulk flag.
func (m *Mapper) Keys() []string {
	return m.t.keys(false)
}

// BulkKeys returns the bulk-eligible keys.
func (m *Mapper) BulkKeys() []string {
	return m.t.keys(true)
}

// Count returns the number of registered keys.
func (m *Mapper) Count() int {
	return len(m.t.entries)
}

// Has reports whether key is registered.
func (m *Mapper) Has(key string) bool {
	_, ok := m.t.entries[key]
	return ok
}

// Version returns the stamp of the last registration.
func (m *Mapper) Version() uint64 {
	return m.t.rev
}

// Entries returns a snapshot of the registrations, sorted by key.
func (m *Mapper) Entries() []apis.MapperEntry {
	return m.t.snapshot()
}
