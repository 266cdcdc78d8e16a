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

package apis

import "reflect"

// Registry is a process-wide directory from handler types to their Mapper.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register associates the (nearest named) handler type t with m.
	// Implementations should be idempotent for the same (type, mapper) pair.
	Register(t reflect.Type, m Mapper) error
	// Lookup returns the Mapper registered for a handler type.
	Lookup(t reflect.Type) (m Mapper, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (handler type, mapper) association in a Registry snapshot.
type Entry struct {
	// Type is the registered handler type.
	Type reflect.Type
	// Mapper is the associated mapper.
	Mapper Mapper
}
