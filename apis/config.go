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

// Config holds the knobs that decide how handler types are keyed in the
// registry and how views are named in diagnostics. Pass it by value.
type Config struct {
	// IncludeBuiltins names builtin view types ("string", "int") in
	// mismatch diagnostics. When false those types print in reflect form.
	IncludeBuiltins bool

	// MaxUnwrap is how many ptr/slice/array/chan/map layers are peeled off
	// a handler type to find the named type it is registered under.
	MaxUnwrap int

	// MapPreferElem keys a map[K]V handler type by V when true, by K
	// otherwise, falling back to the other side if it is unnamed.
	MapPreferElem bool

	// LogLevel is a zerolog level name ("trace", "debug", ..., "disabled").
	// Empty means disabled.
	LogLevel string
}
