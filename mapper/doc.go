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

// Package mapper implements property mappers: tables from property keys to
// update actions that apply a changed property of a virtual view to a
// platform handler.
//
// # Mapper and Typed
//
// Mapper is the untyped base form. Typed[V] stores actions written against a
// concrete view type V and adds an optional fallback ("chained") mapper that
// usually serves the base view type:
//
//	var ViewMapper = mapper.NewTyped[View]()
//	var ButtonMapper = mapper.NewChained[Button](ViewMapper)
//
//	func init() {
//	    ViewMapper.Set("opacity", func(h apis.Handler, v View) { ... })
//	    ButtonMapper.Set("text", func(h apis.Handler, v Button) { ... })
//	}
//
//	ButtonMapper.UpdateProperty(h, btn, "opacity") // falls back to ViewMapper
//	ButtonMapper.UpdateProperties(h, btn)          // "text" and "opacity"
//
// A key missing along the whole chain is ignored. A nil view is ignored.
// Converting the view to the registered type is checked; a mismatch panics
// with *TypeMismatchError from inside the action.
//
// # Bulk keys
//
// Every registration carries a bulk flag. Set registers bulk-eligible keys;
// Add takes the flag explicitly; Actions registers keys that are not
// bulk-eligible. A mapper without a chain walks all of its keys on
// UpdateProperties. A chained mapper walks its own bulk-eligible keys plus the
// bulk-eligible keys of the whole chain. Keys that are not bulk-eligible stay
// reachable through UpdateProperty.
//
// The merged key set is cached and recomputed when the chain is reassigned or
// any mapper along the chain registers a key.
//
// # Concurrency
//
// Registration is not synchronized: register everything during start-up.
// After that a mapper may be shared by any number of goroutines. Reads that
// find the merged key set stale recompute it and publish it atomically.
package mapper
