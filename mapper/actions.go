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
	"fmt"
	"reflect"

	"dirpx.dev/pmx/apis"
)

// Actions writes actions typed for W, a more specific view type than V, into
// the entries of a Typed[V]. It owns no storage of its own.
type Actions[V, W any] struct {
	m *Typed[V]
}

// ActionsFor returns the scoped action mapper of m for view type W, creating
// it on first use. It panics with ErrNotSubtype if W is not assignable to V.
func ActionsFor[W, V any](m *Typed[V]) *Actions[V, W] {
	wt := reflect.TypeFor[W]()
	if a, ok := m.scoped[wt]; ok {
		return a.(*Actions[V, W])
	}
	if vt := reflect.TypeFor[V](); !wt.AssignableTo(vt) {
		panic(fmt.Errorf("%w: %s is not a %s", ErrNotSubtype, wt, vt))
	}

	a := &Actions[V, W]{m: m}
	if m.scoped == nil {
		m.scoped = make(map[reflect.Type]any)
	}
	m.scoped[wt] = a
	return a
}

// Set registers action for key. Keys set here are not bulk-eligible: they
// run on UpdateProperty only, unless the mapper has no chain.
func (a *Actions[V, W]) Set(key string, action func(apis.Handler, W)) {
	a.m.put(key, bind(key, action), false)
}

// Mapper returns the mapper the actions are written into.
func (a *Actions[V, W]) Mapper() *Typed[V] {
	return a.m
}
