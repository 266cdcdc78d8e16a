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

package mapper_test

import (
	"fmt"
	"testing"

	"dirpx.dev/pmx/apis"
)

// View is the base view capability used across the tests.
type View interface {
	ID() string
}

// Label is a concrete view.
type Label struct {
	Text string
}

func (Label) ID() string          { return "label" }
func (Label) ViewName() string    { return "ui.label" }
func (l Label) LabelText() string { return l.Text }

// Labeled is the capability shared by every view that shows text. Button
// satisfies it through its embedded Label.
type Labeled interface {
	View
	LabelText() string
}

// Button is a more specific view.
type Button struct {
	Label
	Color string
}

func (Button) ID() string       { return "button" }
func (Button) ViewName() string { return "ui.button" }

// recorder is a fake handler that records every action call.
type recorder struct {
	calls []string
}

func (r *recorder) action(name string) func(apis.Handler, apis.View) {
	return func(h apis.Handler, v apis.View) {
		h.(*recorder).calls = append(h.(*recorder).calls, name)
	}
}

func record[V any](name string) func(apis.Handler, V) {
	return func(h apis.Handler, v V) {
		rec := h.(*recorder)
		rec.calls = append(rec.calls, name)
	}
}

// recoverError runs fn and returns the error it panicked with.
func recoverError(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic")
		}
		e, ok := r.(error)
		if !ok {
			t.Fatalf("panic value is %T, not an error: %v", r, fmt.Sprint(r))
		}
		err = e
	}()
	fn()
	return nil
}
