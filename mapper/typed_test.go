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
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/pmx/apis"
	"dirpx.dev/pmx/mapper"
)

func TestTyped_LocalActionReceivesTypedView(t *testing.T) {
	var got Button
	m := mapper.NewTyped[Button]()
	m.Set("color", func(_ apis.Handler, b Button) { got = b })

	m.UpdateProperty(&recorder{}, Button{Color: "red"}, "color")

	assert.Equal(t, "red", got.Color)
}

func TestTyped_ChainDelegationIsRecursive(t *testing.T) {
	rec := &recorder{}
	root := mapper.NewTyped[View]()
	root.Set("opacity", record[View]("root.opacity"))
	mid := mapper.NewChained[Labeled](root)
	mid.Set("text", record[Labeled]("mid.text"))
	leaf := mapper.NewChained[Button](mid)
	leaf.Set("color", record[Button]("leaf.color"))

	leaf.UpdateProperty(rec, Button{}, "opacity")
	leaf.UpdateProperty(rec, Button{}, "text")
	leaf.UpdateProperty(rec, Button{}, "color")
	leaf.UpdateProperty(rec, Button{}, "missing")

	assert.Equal(t, []string{"root.opacity", "mid.text", "leaf.color"}, rec.calls)
	assert.Same(t, mid, leaf.Chained())
}

func TestTyped_ChainDelegationConvertsPerLevel(t *testing.T) {
	var text string
	root := mapper.NewTyped[View]()
	mid := mapper.NewChained[Labeled](root)
	mid.Set("text", func(_ apis.Handler, l Labeled) { text = l.LabelText() })
	leaf := mapper.NewChained[Button](mid)

	leaf.UpdateProperty(&recorder{}, Button{Label: Label{Text: "ok"}}, "text")

	assert.Equal(t, "ok", text)
}

func TestTyped_UntypedMapperCanBeChained(t *testing.T) {
	rec := &recorder{}
	base := mapper.New()
	base.Set("opacity", rec.action("base.opacity"))
	m := mapper.NewChained[Button](base)

	m.UpdateProperties(rec, Button{})

	assert.Equal(t, []string{"opacity"}, m.Keys())
	assert.Equal(t, []string{"base.opacity"}, rec.calls)
}

func TestTyped_ScenarioA_MergedKeysAndBulkUpdate(t *testing.T) {
	rec := &recorder{}
	p := mapper.NewTyped[View]()
	p.Set("text", record[View]("actionP"))
	c := mapper.NewChained[Button](p)
	c.Set("color", record[Button]("actionC"))

	assert.ElementsMatch(t, []string{"text", "color"}, c.Keys())
	assert.Equal(t, 2, c.Count())

	c.UpdateProperties(rec, Button{})
	assert.ElementsMatch(t, []string{"actionC", "actionP"}, rec.calls)
}

func TestTyped_ScenarioB_MostDerivedWins(t *testing.T) {
	rec := &recorder{}
	p := mapper.NewTyped[View]()
	p.Set("text", record[View]("actionP"))
	c := mapper.NewChained[Button](p)
	c.Set("color", record[Button]("actionC"))
	c.Set("text", record[Button]("actionC2"))

	c.UpdateProperty(rec, Button{}, "text")
	assert.Equal(t, []string{"actionC2"}, rec.calls)

	rec.calls = nil
	c.UpdateProperties(rec, Button{})
	assert.ElementsMatch(t, []string{"actionC", "actionC2"}, rec.calls)
}

func TestTyped_ScenarioC_NonBulkKeyExcludedAcrossChain(t *testing.T) {
	rec := &recorder{}
	p := mapper.NewTyped[View]()
	p.Set("text", record[View]("text"))
	p.Add("focus", record[View]("focus"), false)

	// Without a chain every local key takes part in bulk updates.
	assert.Equal(t, []string{"focus", "text"}, p.Keys())
	assert.Equal(t, []string{"text"}, p.BulkKeys())

	c := mapper.NewChained[Button](p)
	assert.Equal(t, []string{"text"}, c.Keys())

	c.UpdateProperties(rec, Button{})
	assert.Equal(t, []string{"text"}, rec.calls)

	rec.calls = nil
	c.UpdateProperty(rec, Button{}, "focus")
	assert.Equal(t, []string{"focus"}, rec.calls)
}

func TestTyped_OwnNonBulkKeysExcludedWhenChained(t *testing.T) {
	p := mapper.NewTyped[View]()
	p.Set("text", nil)
	c := mapper.NewChained[Button](p)
	c.Add("pressed", nil, false)

	assert.Equal(t, []string{"text"}, c.Keys())
	assert.True(t, c.Has("pressed"))
}

func TestTyped_BulkUpdateRunsEachKeyOnce(t *testing.T) {
	rec := &recorder{}
	root := mapper.NewTyped[View]()
	root.Set("text", record[View]("root.text"))
	root.Set("opacity", record[View]("root.opacity"))
	mid := mapper.NewChained[Labeled](root)
	mid.Set("text", record[Labeled]("mid.text"))
	leaf := mapper.NewChained[Button](mid)
	leaf.Set("text", record[Button]("leaf.text"))

	leaf.UpdateProperties(rec, Button{})

	assert.ElementsMatch(t, []string{"leaf.text", "root.opacity"}, rec.calls)
	assert.Equal(t, []string{"opacity", "text"}, leaf.Keys())
}

func TestTyped_NilViewIsNoop(t *testing.T) {
	rec := &recorder{}
	p := mapper.NewTyped[View]()
	p.Set("text", record[View]("text"))
	c := mapper.NewChained[Button](p)

	var typedNil *Button
	c.UpdateProperty(rec, nil, "text")
	c.UpdateProperty(rec, typedNil, "text")
	c.UpdateProperties(rec, nil)

	assert.Empty(t, rec.calls)
}

func TestTyped_ChainReassignmentRefreshesKeys(t *testing.T) {
	a := mapper.NewTyped[View]()
	a.Set("alpha", nil)
	b := mapper.NewTyped[View]()
	b.Set("beta", nil)

	c := mapper.NewChained[Button](a)
	c.Set("color", nil)
	require.Equal(t, []string{"alpha", "color"}, c.Keys())

	c.SetChained(b)
	assert.Equal(t, []string{"beta", "color"}, c.Keys())

	c.SetChained(nil)
	assert.Nil(t, c.Chained())
	assert.Equal(t, []string{"color"}, c.Keys())
}

func TestTyped_TypedNilChainIsDropped(t *testing.T) {
	var parent *mapper.Typed[View]
	c := mapper.NewChained[Button](parent)

	assert.Nil(t, c.Chained())
	assert.NotPanics(t, func() { c.UpdateProperty(&recorder{}, Button{}, "text") })
}

func TestTyped_RegistrationAfterKeysReadIsVisible(t *testing.T) {
	p := mapper.NewTyped[View]()
	p.Set("text", nil)
	c := mapper.NewChained[Button](p)
	c.Set("color", nil)
	require.Equal(t, []string{"color", "text"}, c.Keys())

	c.Set("pressed", nil)
	assert.Equal(t, []string{"color", "pressed", "text"}, c.Keys())

	// A late registration on an ancestor is visible too.
	p.Set("opacity", nil)
	assert.Equal(t, []string{"color", "opacity", "pressed", "text"}, c.Keys())
	assert.Equal(t, 4, c.Count())
}

func TestTyped_GrandchildSeesReassignedMiddleChain(t *testing.T) {
	a := mapper.NewTyped[View]()
	a.Set("alpha", nil)
	b := mapper.NewTyped[View]()
	b.Set("beta", nil)
	mid := mapper.NewChained[Labeled](a)
	leaf := mapper.NewChained[Button](mid)
	require.Equal(t, []string{"alpha"}, leaf.Keys())

	mid.SetChained(b)
	assert.Equal(t, []string{"beta"}, leaf.Keys())
}

func TestTyped_SelfChainPanics(t *testing.T) {
	m := mapper.NewTyped[View]()
	err := recoverError(t, func() { m.SetChained(m) })
	assert.ErrorIs(t, err, mapper.ErrSelfChain)
}

func TestTyped_TypeMismatchPanics(t *testing.T) {
	m := mapper.NewTyped[Button]()
	m.Set("color", record[Button]("color"))

	err := recoverError(t, func() { m.UpdateProperty(&recorder{}, Label{}, "color") })

	var mismatch *mapper.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.ErrorIs(t, err, mapper.ErrTypeMismatch)
	assert.Equal(t, "color", mismatch.Key)
	assert.Equal(t, "ui.label", mismatch.View)
	assert.Equal(t,
		`pmx(mapper): property "color": view "ui.label" (mapper_test.Label) is not a mapper_test.Button`,
		err.Error())
}

func TestTyped_TypeMismatchInChainPanics(t *testing.T) {
	p := mapper.NewTyped[Button]()
	p.Set("color", record[Button]("color"))
	c := mapper.NewChained[Label](p)

	err := recoverError(t, func() { c.UpdateProperty(&recorder{}, Label{}, "color") })
	assert.ErrorIs(t, err, mapper.ErrTypeMismatch)
}

func TestTyped_Entries(t *testing.T) {
	m := mapper.NewTyped[View]()
	m.Set("text", nil)
	m.Add("focus", nil, false)

	assert.Equal(t, []apis.MapperEntry{
		{Key: "focus", Bulk: false},
		{Key: "text", Bulk: true},
	}, m.Entries())
}

func TestTyped_ConcurrentReadsAfterRegistration(t *testing.T) {
	var calls atomic.Int64
	count := func(apis.Handler, View) { calls.Add(1) }

	p := mapper.NewTyped[View]()
	p.Set("text", count)
	p.Set("opacity", count)
	c := mapper.NewChained[Button](p)
	c.Set("color", func(apis.Handler, Button) { calls.Add(1) })
	// Leaves the child's merged keys stale, so readers start by recomputing them.
	p.Set("hidden", count)

	const rounds = 200
	workers := runtime.GOMAXPROCS(0) * 4

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				c.UpdateProperties(nil, Button{})
				if n := c.Count(); n != 4 {
					t.Errorf("Count() = %d, want 4", n)
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers*rounds*4), calls.Load())
	assert.Equal(t, []string{"color", "hidden", "opacity", "text"}, c.Keys())
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Mapper = mapper.NewTyped[View]()
