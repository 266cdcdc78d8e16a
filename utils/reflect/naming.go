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

package reflect

import (
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/pmx/apis"
)

// nameKey ensures memoization respects every config knob that affects naming.
type nameKey struct {
	t              reflect.Type
	includeBuiltin bool
	maxUnwrap      int16
	mapPreferElem  bool
}

// typeNames caches computed names by (type, config knobs).
var typeNames sync.Map // key: nameKey, val: string

// TypeName returns a stable "pkg.Type" name for t: the last element of the
// package path plus the type name without generic arguments. Builtins yield
// their bare name, or "" when cfg.IncludeBuiltins is false. Types without a
// reachable name yield "".
func TypeName(t reflect.Type, cfg apis.Config) string {
	if t == nil {
		return ""
	}
	key := nameKey{
		t:              t,
		includeBuiltin: cfg.IncludeBuiltins,
		maxUnwrap:      int16(cfg.MaxUnwrap),
		mapPreferElem:  cfg.MapPreferElem,
	}
	if v, ok := typeNames.Load(key); ok {
		return v.(string)
	}

	name := ""
	if base, err := Normalize(t, cfg); err == nil {
		name = stripTypeParams(base.Name())
		if p := base.PkgPath(); p != "" {
			name = path.Base(p) + "." + name
		} else if !cfg.IncludeBuiltins {
			name = ""
		}
	}

	typeNames.Store(key, name)
	return name
}

// ValueName names a value: a view implementing apis.Namer names itself,
// anything else is named after its dynamic type. Nil yields "<nil>".
func ValueName(v any, cfg apis.Config) string {
	if v == nil {
		return "<nil>"
	}
	if n, ok := v.(apis.Namer); ok {
		if name := n.ViewName(); name != "" {
			return name
		}
	}
	return TypeName(reflect.TypeOf(v), cfg)
}

// IsNil reports whether v is nil or a typed nil (pointer, map, slice, func,
// chan or interface) wrapped in an interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// stripTypeParams removes a generic instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
