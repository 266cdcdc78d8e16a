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

// Package pmx provides property mappers: the dispatch layer that turns
// "property X changed on this virtual view" into an update call on the
// platform handler that renders it.
//
// Neither side knows the other's types. A view is a platform-independent
// description of an element; a handler applies its properties to a native
// element. Between them sits a mapper (see package mapper) holding one update
// action per property key.
//
// # Design
//
// Mappers are plain values built once per handler type, usually in package
// init, and shared read-only afterwards:
//
//	var ViewMapper = mapper.NewTyped[View]()
//	var ButtonMapper = mapper.NewChained[Button](ViewMapper)
//
//	func init() {
//	    ViewMapper.Set("opacity", func(h apis.Handler, v View) { ... })
//	    ButtonMapper.Set("text", func(h apis.Handler, v Button) { ... })
//	    pmx.MustDefine[ButtonHandler](ButtonMapper)
//	}
//
// A chained mapper falls back to its parent on a local miss, which mirrors
// the base-type/derived-type relation between view types. Unknown keys are
// ignored at every level so that views and handlers can evolve
// independently. A nil view means "not attached yet" and is ignored too.
//
// This package adds a process-wide directory on top: a read-mostly global
// snapshot holding
//
//   - Config: type normalization knobs and the log level.
//   - Registry: handler type -> mapper (Define, MustDefine).
//   - Resolver: finds the mapper for a handler value. The default resolver
//     asks the handler itself first (apis.MapperProvider), then the Registry.
//   - Builder: constructs Registry and Resolver for a Config and may migrate
//     entries from the previous instances.
//
// Readers load the snapshot atomically and never lock:
//
//	pmx.UpdateProperty(h, view, "text")
//	pmx.UpdateProperties(h, view)
//
// Writers (SetConfig, SetRegistry, SetResolver, SetBuilder, SetAll, the pin
// helpers) take a build mutex, derive a new snapshot and publish it.
// SetRegistry and SetResolver pin the layer they install; pinned layers are
// not rebuilt until unpinned.
//
// # Concurrency model
//
// The snapshot is safe for concurrent use. Mappers are safe for concurrent
// dispatch once registration is finished; registration itself is not
// synchronized. Every update call is synchronous and nothing is batched or
// deferred.
//
// # Configuration
//
// The initial Config is read from PMX_* environment variables (see
// config.FromEnv). Logging goes through zerolog and is disabled unless
// PMX_LOG_LEVEL or SetConfig says otherwise.
package pmx
