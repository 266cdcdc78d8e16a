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
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/pmx/config"
	uref "dirpx.dev/pmx/utils/reflect"
)

var (
	// ErrTypeMismatch is wrapped by *TypeMismatchError.
	ErrTypeMismatch = errors.New("pmx(mapper): view type mismatch")
	// ErrNotSubtype is raised when a scoped action mapper is requested for a
	// view type that is not assignable to the mapper's view type.
	ErrNotSubtype = errors.New("pmx(mapper): scoped view type is not assignable to mapper view type")
	// ErrSelfChain is raised when a mapper is chained to itself.
	ErrSelfChain = errors.New("pmx(mapper): mapper cannot chain to itself")
)

// TypeMismatchError reports an action invoked with a view it was not
// registered for. Actions panic with it; mappers never recover it.
type TypeMismatchError struct {
	// Key is the property being updated.
	Key string
	// Want is the view type the action was registered for.
	Want reflect.Type
	// Got is the dynamic type of the view passed in.
	Got reflect.Type
	// View is the diagnostic name of the view (see apis.Namer).
	View string
}

func newTypeMismatch(key string, want reflect.Type, v any) *TypeMismatchError {
	return &TypeMismatchError{
		Key:  key,
		Want: want,
		Got:  reflect.TypeOf(v),
		View: uref.ValueName(v, config.DefaultConfig()),
	}
}

// Error implements error.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("pmx(mapper): property %q: view %q (%s) is not a %s",
		e.Key, e.View, typeString(e.Got), typeString(e.Want))
}

// Unwrap returns ErrTypeMismatch.
func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// typeString prefers the short "pkg.Type" form and falls back to t.String()
// for unnamed types.
func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if name := uref.TypeName(t, config.DefaultConfig()); name != "" {
		return name
	}
	return t.String()
}
