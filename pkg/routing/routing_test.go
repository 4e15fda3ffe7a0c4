package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clickEvent struct {
	target *NodeID
}

func TestGlobalDispatchVisitsEverything(t *testing.T) {
	var outer, innerA, innerB Region
	var visited []string

	RouteEvent("tick", nil, func(tr *EventTraversal) {
		var so ScopedRegion
		so.Begin(tr, &outer)
		require.True(t, so.IsRelevant())

		for _, r := range []struct {
			name   string
			region *Region
		}{{"a", &innerA}, {"b", &innerB}} {
			var sr ScopedRegion
			sr.Begin(tr, r.region)
			if sr.IsRelevant() {
				visited = append(visited, r.name)
			}
			sr.End()
		}
		so.End()
	})

	assert.Equal(t, []string{"a", "b"}, visited)
	assert.Same(t, &outer, innerA.Parent())
	assert.Same(t, &outer, innerB.Parent())
	assert.Nil(t, outer.Parent())
}

// traverse runs one dispatch over a two-level tree with a leaf node under
// each inner region, recording which leaves did their work.
func traverse(tr *EventTraversal, outer, innerA, innerB *Region, leafA, leafB *NodeID, visited *[]string) {
	var so ScopedRegion
	so.Begin(tr, outer)
	defer so.End()

	handleLeaf := func(name string, region *Region, leaf *NodeID) {
		var sr ScopedRegion
		sr.Begin(tr, region)
		defer sr.End()
		if !sr.IsRelevant() {
			return
		}
		*visited = append(*visited, name)
		if e, ok := Detect[clickEvent](tr); ok && e.target == leaf {
			*visited = append(*visited, name+"!")
			Abort()
		}
	}

	handleLeaf("a", innerA, leafA)
	handleLeaf("b", innerB, leafB)
}

func TestTargetedDispatchVisitsOnlyThePath(t *testing.T) {
	var outer, innerA, innerB Region
	var leafA, leafB NodeID

	// Establish the tree with a global pass first, the way a refresh
	// would.
	var visited []string
	RouteEvent("refresh", nil, func(tr *EventTraversal) {
		traverse(tr, &outer, &innerA, &innerB, &leafA, &leafB, &visited)
	})
	require.Equal(t, []string{"a", "b"}, visited)

	// Target the leaf under innerB: innerA is skipped, the handler
	// fires, and the abort prevents anything after it.
	visited = nil
	target := &RoutableNodeID{ID: &leafB, Region: &innerB}
	RouteEvent(clickEvent{target: &leafB}, target, func(tr *EventTraversal) {
		require.True(t, tr.Targeted())
		traverse(tr, &outer, &innerA, &innerB, &leafA, &leafB, &visited)
		t.Fatal("the abort must cut the dispatch short")
	})
	assert.Equal(t, []string{"b", "b!"}, visited)
}

func TestTargetedDispatchAtFirstSibling(t *testing.T) {
	var outer, innerA, innerB Region
	var leafA, leafB NodeID

	var visited []string
	RouteEvent("refresh", nil, func(tr *EventTraversal) {
		traverse(tr, &outer, &innerA, &innerB, &leafA, &leafB, &visited)
	})

	visited = nil
	target := &RoutableNodeID{ID: &leafA, Region: &innerA}
	RouteEvent(clickEvent{target: &leafA}, target, func(tr *EventTraversal) {
		traverse(tr, &outer, &innerA, &innerB, &leafA, &leafB, &visited)
	})
	assert.Equal(t, []string{"a", "a!"}, visited, "siblings after the target are never visited")
}

func TestNodeIdentitiesAreDistinct(t *testing.T) {
	a, b := &NodeID{}, &NodeID{}
	assert.NotSame(t, a, b)
}

func TestDetect(t *testing.T) {
	RouteEvent(clickEvent{}, nil, func(tr *EventTraversal) {
		_, ok := Detect[clickEvent](tr)
		assert.True(t, ok)
		_, ok = Detect[string](tr)
		assert.False(t, ok)
	})
}

func TestAbortDoesNotSwallowRealPanics(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		RouteEvent("e", nil, func(*EventTraversal) {
			panic("boom")
		})
	})
}

func TestAbortConfinedToRouteEvent(t *testing.T) {
	assert.NotPanics(t, func() {
		RouteEvent("e", nil, func(*EventTraversal) {
			Abort()
		})
	})
}
