package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftui/weft/pkg/ids"
)

func pass(g *Graph, f func(t *Traversal)) {
	f(g.BeginTraversal())
}

func TestSlotReuseAcrossPasses(t *testing.T) {
	var g Graph
	var first, second *int

	pass(&g, func(tr *Traversal) {
		p, fresh := Get[int](tr)
		require.True(t, fresh)
		*p = 42
		first = p
	})
	pass(&g, func(tr *Traversal) {
		p, fresh := Get[int](tr)
		require.False(t, fresh)
		second = p
	})

	assert.Same(t, first, second)
	assert.Equal(t, 42, *second)
}

func TestSequentialSlotsAreDistinct(t *testing.T) {
	var g Graph
	pass(&g, func(tr *Traversal) {
		a, _ := Get[int](tr)
		b, _ := Get[int](tr)
		assert.NotSame(t, a, b)
	})
}

func TestTypeMismatchPanics(t *testing.T) {
	var g Graph
	pass(&g, func(tr *Traversal) {
		Get[int](tr)
	})
	assert.PanicsWithError(t,
		"graph: data node type mismatch: requested *graph.slot[string], stored *graph.slot[int]",
		func() {
			pass(&g, func(tr *Traversal) {
				Get[string](tr)
			})
		})
}

func TestBranchesDoNotShiftPositions(t *testing.T) {
	var g Graph
	var after *int

	run := func(condition bool) (inBranch *int) {
		pass(&g, func(tr *Traversal) {
			var ib IfBlock
			ib.Begin(tr, condition)
			if condition {
				inBranch, _ = Get[int](tr)
			}
			ib.End()

			p, _ := Get[int](tr)
			if after == nil {
				after = p
			} else {
				assert.Same(t, after, p, "data after the branch must not move")
			}
		})
		return
	}

	run(false)
	branch1 := run(true)
	*branch1 = 7
	run(false)
	branch2 := run(true)
	assert.Same(t, branch1, branch2)
	assert.Equal(t, 7, *branch2)
}

func TestInactiveBranchCacheCleared(t *testing.T) {
	var g Graph
	run := func(condition bool) (persistent *int, cached *CachedSlot[int]) {
		pass(&g, func(tr *Traversal) {
			var ib IfBlock
			ib.Begin(tr, condition)
			defer ib.End()
			if condition {
				persistent, _ = Get[int](tr)
				cached = GetCached[int](tr)
			}
		})
		return
	}

	p, c := run(true)
	*p = 1
	c.Set(2)
	require.True(t, c.Valid())

	run(false)

	p2, c2 := run(true)
	assert.Equal(t, 1, *p2, "persistent data survives the inactive pass")
	assert.False(t, c2.Valid(), "cached data is wiped while the branch is inactive")
}

func TestLoopBlockPerIterationData(t *testing.T) {
	var g Graph
	run := func(n int) (slots []*int) {
		pass(&g, func(tr *Traversal) {
			var lb LoopBlock
			lb.Begin(tr)
			for i := 0; i < n; i++ {
				p, _ := Get[int](tr)
				slots = append(slots, p)
				lb.Next()
			}
			lb.End()
		})
		return
	}

	first := run(3)
	for i, p := range first {
		*p = i * 10
	}
	second := run(3)
	for i := range second {
		assert.Same(t, first[i], second[i])
		assert.Equal(t, i*10, *second[i])
	}
}

// namedPass traverses one naming context, visiting the given names in
// order and returning the data slot inside each name's block.
func namedPass(g *Graph, names []string) map[string]*int {
	slots := make(map[string]*int, len(names))
	tr := g.BeginTraversal()
	var nc NamingContext
	nc.Begin(tr)
	for _, name := range names {
		var nb NamedBlock
		nb.Begin(&nc, ids.NewValue(name))
		p, _ := Get[int](tr)
		slots[name] = p
		nb.End()
	}
	nc.End()
	return slots
}

func TestNamedBlocksSurviveReordering(t *testing.T) {
	var g Graph

	first := namedPass(&g, []string{"a", "b", "c"})
	for i, name := range []string{"a", "b", "c"} {
		*first[name] = i + 1
	}

	second := namedPass(&g, []string{"c", "a", "b"})
	for name, p := range second {
		assert.Same(t, first[name], p)
		assert.Equal(t, *first[name], *p)
	}
}

func TestNamedBlockGarbageCollection(t *testing.T) {
	var g Graph

	first := namedPass(&g, []string{"a", "b", "c"})
	*first["a"] = 1
	*first["c"] = 3
	assert.Equal(t, uint64(3), g.Stats().NamedBlocksCreated)

	namedPass(&g, []string{"a", "c"})
	assert.Equal(t, uint64(1), g.Stats().NamedBlocksDestroyed)

	third := namedPass(&g, []string{"a", "b", "c"})
	assert.Same(t, first["a"], third["a"], "surviving blocks keep their data")
	assert.Same(t, first["c"], third["c"])
	assert.Equal(t, 1, *third["a"])
	assert.Equal(t, 3, *third["c"])
	assert.NotSame(t, first["b"], third["b"], "the collected block was recreated from scratch")
	assert.Equal(t, 0, *third["b"])
}

func TestPredictionAvoidsMapLookups(t *testing.T) {
	var g Graph
	namedPass(&g, []string{"a", "b"})
	created := g.Stats().NamedBlocksCreated

	// In-order repeat passes resolve every block by prediction; nothing
	// new is created and nothing is destroyed.
	for i := 0; i < 3; i++ {
		namedPass(&g, []string{"a", "b"})
	}
	assert.Equal(t, created, g.Stats().NamedBlocksCreated)
	assert.Equal(t, uint64(0), g.Stats().NamedBlocksDestroyed)
}

func TestManualDeleteBlocks(t *testing.T) {
	var g Graph

	visit := func(names []string, manual bool) map[string]*int {
		slots := make(map[string]*int)
		tr := g.BeginTraversal()
		var nc NamingContext
		nc.Begin(tr)
		for _, name := range names {
			var nb NamedBlock
			if manual {
				nb.BeginManual(&nc, ids.NewValue(name))
			} else {
				nb.Begin(&nc, ids.NewValue(name))
			}
			p, _ := Get[int](tr)
			slots[name] = p
			nb.End()
		}
		nc.End()
		return slots
	}

	first := visit([]string{"x", "y"}, true)
	*first["x"] = 5

	// A pass that skips x entirely must not collect it.
	visit([]string{"y"}, true)
	assert.Equal(t, uint64(0), g.Stats().NamedBlocksDestroyed)

	third := visit([]string{"x", "y"}, true)
	assert.Same(t, first["x"], third["x"])
	assert.Equal(t, 5, *third["x"])

	// Explicit deletion is the only way a manual block dies.
	tr := g.BeginTraversal()
	var nc NamingContext
	nc.Begin(tr)
	require.True(t, nc.Delete(ids.NewValue("x")))
	require.False(t, nc.Delete(ids.NewValue("missing")))
	nc.End()
	assert.Equal(t, uint64(1), g.Stats().NamedBlocksDestroyed)

	fourth := visit([]string{"x", "y"}, true)
	assert.NotSame(t, first["x"], fourth["x"])
}

func TestSkippedManualBlockLosesCachedData(t *testing.T) {
	var g Graph

	visit := func(names []string) map[string]*CachedSlot[string] {
		caches := make(map[string]*CachedSlot[string])
		tr := g.BeginTraversal()
		var nc NamingContext
		nc.Begin(tr)
		for _, name := range names {
			var nb NamedBlock
			nb.BeginManual(&nc, ids.NewValue(name))
			caches[name] = GetCached[string](tr)
			nb.End()
		}
		nc.End()
		return caches
	}

	first := visit([]string{"x", "y"})
	first["x"].Set("computed")
	require.True(t, first["x"].Valid())

	// Skipping x on a collected pass keeps the block but deactivates
	// it, which purges its cached data.
	visit([]string{"y"})
	assert.Equal(t, uint64(0), g.Stats().NamedBlocksDestroyed)

	second := visit([]string{"x", "y"})
	assert.Same(t, first["x"], second["x"], "the block itself survives")
	assert.False(t, second["x"].Valid(), "its cached data does not")
}

func TestPredictionUpdatesManualStatus(t *testing.T) {
	var g Graph

	visit := func(manual bool, names ...string) {
		tr := g.BeginTraversal()
		var nc NamingContext
		nc.Begin(tr)
		for _, name := range names {
			var nb NamedBlock
			if manual {
				nb.BeginManual(&nc, ids.NewValue(name))
			} else {
				nb.Begin(&nc, ids.NewValue(name))
			}
			Get[int](tr)
			nb.End()
		}
		nc.End()
	}

	visit(true, "x")
	// The second pass hits the prediction fast path; it must still
	// demote the block to collectable.
	visit(false, "x")

	visit(false)
	assert.Equal(t, uint64(1), g.Stats().NamedBlocksDestroyed)
}

func TestOutOfOrderPanicsWithCollectionDisabled(t *testing.T) {
	var g Graph
	namedPass(&g, []string{"a", "b"})

	assert.Panics(t, func() {
		tr := g.BeginTraversal()
		var gd GCDisabler
		gd.Begin(tr)
		defer gd.End()

		var nc NamingContext
		nc.Begin(tr)
		var nb NamedBlock
		nb.Begin(&nc, ids.NewValue("b")) // "a" was first last pass
	})

	// In-order access under disabled collection is fine, and a skipped
	// trailing block is not collected.
	tr := g.BeginTraversal()
	var gd GCDisabler
	gd.Begin(tr)
	var nc NamingContext
	nc.Begin(tr)
	var nb NamedBlock
	nb.Begin(&nc, ids.NewValue("a"))
	nb.End()
	nc.End()
	gd.End()
	assert.Equal(t, uint64(0), g.Stats().NamedBlocksDestroyed)
}

func TestAbortParksReferences(t *testing.T) {
	var g Graph
	namedPass(&g, []string{"a", "b"})

	// An aborted pass must not collect, even though it only touched "a".
	tr := g.BeginTraversal()
	var nc NamingContext
	nc.Begin(tr)
	var nb NamedBlock
	nb.Begin(&nc, ids.NewValue("a"))
	nb.End()
	nc.Abort()
	assert.Equal(t, uint64(0), g.Stats().NamedBlocksDestroyed)

	// The next committed pass behaves normally.
	namedPass(&g, []string{"a"})
	assert.Equal(t, uint64(1), g.Stats().NamedBlocksDestroyed)
}

func TestCacheClearingDisabler(t *testing.T) {
	var g Graph
	run := func(condition, disable bool) (c *CachedSlot[int]) {
		pass(&g, func(tr *Traversal) {
			var d CacheClearingDisabler
			if disable {
				d.Begin(tr)
				defer d.End()
			}
			var ib IfBlock
			ib.Begin(tr, condition)
			defer ib.End()
			if condition {
				c = GetCached[int](tr)
			}
		})
		return
	}

	c := run(true, false)
	c.Set(9)

	// With clearing disabled, the inactive branch keeps its cache.
	run(false, true)
	c2 := run(true, false)
	assert.True(t, c2.Valid())
	assert.Equal(t, 9, c2.Get())

	// With clearing enabled, it does not.
	run(false, false)
	c3 := run(true, false)
	assert.False(t, c3.Valid())
}

func TestLoopBlockCountChangeDoesNotShiftLaterData(t *testing.T) {
	var g Graph
	var after *int
	run := func(n int) {
		pass(&g, func(tr *Traversal) {
			var lb LoopBlock
			lb.Begin(tr)
			for i := 0; i < n; i++ {
				Get[int](tr)
				lb.Next()
			}
			lb.End()

			p, _ := Get[int](tr)
			if after == nil {
				after = p
			} else {
				assert.Same(t, after, p)
			}
		})
	}

	run(3)
	run(1)
	run(5)
	run(0)
}

func TestKeyedDataInvalidation(t *testing.T) {
	var g Graph
	run := func(key int) *KeyedData[string] {
		var kd *KeyedData[string]
		pass(&g, func(tr *Traversal) {
			kd = GetKeyed[string](tr, ids.NewValue(key))
		})
		return kd
	}

	kd := run(1)
	require.False(t, kd.Valid())
	kd.Set("one")

	assert.True(t, run(1).Valid(), "same key keeps the value")
	assert.Equal(t, "one", run(1).Get())

	kd = run(2)
	assert.False(t, kd.Valid(), "key change invalidates")
	kd.Set("two")
	assert.Equal(t, "two", run(2).Get())
}
