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

// Handler is the platform-specific object that applies property changes to a
// native element. Mappers never inspect it; it is passed through to actions.
type Handler = any

// View is the platform-independent description of an element. A nil View means
// the handler is not attached yet. Actions convert it to the concrete view type
// they were registered for.
type View = any

// Action is an untyped update routine stored in a Mapper.
type Action func(h Handler, v View)

// Mapper dispatches property changes on a View to update actions.
// Registration is not synchronized and must complete before any handler
// starts calling UpdateProperty/UpdateProperties. From then on every method
// may be called from multiple goroutines.
type Mapper interface {
	// UpdateProperty runs the action registered for key, if any.
	// A nil view or an unknown key is a no-op.
	UpdateProperty(h Handler, v View, key string)
	// UpdateProperties runs the action of every key in Keys exactly once.
	// A nil view is a no-op.
	UpdateProperties(h Handler, v View)
	// Keys returns the keys UpdateProperties walks (order is unspecified).
	Keys() []string
	// BulkKeys returns the bulk-eligible keys a chained child merges into its
	// own key set. It includes the bulk-eligible keys of the whole chain.
	BulkKeys() []string
	// Version returns a stamp that changes whenever the mapper, or anything
	// it falls back to, gains or replaces an entry.
	Version() uint64
}

// MapperProvider is implemented by handlers that carry their own Mapper.
// Resolvers prefer it over any registry lookup.
type MapperProvider interface {
	PropertyMapper() Mapper
}

// Namer is implemented by views that report their declared virtual-view
// type name, e.g. "ui.button". It is only used for diagnostics.
type Namer interface {
	ViewName() string
}

// MapperEntry is a single key registration in a Mapper snapshot.
type MapperEntry struct {
	// Key is the property key.
	Key string
	// Bulk reports whether the key is bulk-eligible.
	Bulk bool
}
