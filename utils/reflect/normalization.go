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

// Package reflect holds the type helpers pmx uses to key handler types and to
// name view types in diagnostics.
package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/pmx/apis"
	"dirpx.dev/pmx/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping
	// containers) does not contain a named type.
	ErrReflectTypeNotNamed = errors.New("reflect: type has no name")
)

// Normalize returns the nearest named type reachable from t by unwrapping
// containers, so that *Handler, []Handler and Handler all share one key.
//
//   - ptr/slice/array/chan unwrap to Elem();
//   - map[K]V returns the preferred side if named (V when cfg.MapPreferElem,
//     K otherwise), then the other side, else keeps unwrapping V;
//   - anything else must be named.
//
// At most cfg.MaxUnwrap levels are unwrapped (DefaultMaxUnwrap if <= 0).
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	depth := cfg.MaxUnwrap
	if depth <= 0 {
		depth = config.DefaultMaxUnwrap
	}

	for ; t != nil && depth > 0; depth-- {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		case reflect.Map:
			if named := mapSide(t, cfg.MapPreferElem); named != nil {
				return named, nil
			}
			t = t.Elem()
		default:
			if t.Name() == "" {
				return nil, ErrReflectTypeNotNamed
			}
			return t, nil
		}
	}

	if t != nil && t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}

// mapSide returns the first named side of map type t in preference order.
func mapSide(t reflect.Type, preferElem bool) reflect.Type {
	first, second := t.Key(), t.Elem()
	if preferElem {
		first, second = second, first
	}
	if first.Name() != "" {
		return first
	}
	if second.Name() != "" {
		return second
	}
	return nil
}
