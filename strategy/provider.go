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

package strategy

import (
	"reflect"

	"dirpx.dev/pmx/apis"
	uref "dirpx.dev/pmx/utils/reflect"
)

// NewProviderStrategy creates an apis.Strategy that asks the handler itself.
func NewProviderStrategy() apis.Strategy {
	return &providerStrategy{}
}

// providerStrategy is a zero-cost fast path: if h implements
// apis.MapperProvider and returns a mapper, use it and stop the chain.
type providerStrategy struct{}

// Ensure providerStrategy implements apis.Strategy.
var _ apis.Strategy = (*providerStrategy)(nil)

// TryResolve returns h.PropertyMapper() when h is a MapperProvider.
// A provider returning nil falls through.
func (*providerStrategy) TryResolve(h apis.Handler, _ apis.Config) (apis.Mapper, bool) {
	p, ok := h.(apis.MapperProvider)
	if !ok || uref.IsNil(h) {
		return nil, false
	}
	if m := p.PropertyMapper(); !uref.IsNil(m) {
		return m, true
	}
	return nil, false
}

// TryResolveType always returns false: a provider requires an instance.
func (*providerStrategy) TryResolveType(_ reflect.Type, _ apis.Config) (apis.Mapper, bool) {
	return nil, false
}
