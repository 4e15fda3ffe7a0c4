// Package routing implements hierarchical event dispatch over a tree of
// regions that mirrors the nesting of an application's traversal function.
// A dispatch either visits everything (global) or carries a target, in
// which case the path from the root to the target's region is computed up
// front and only regions on that path are relevant. A handler that has
// served the dispatch's purpose can abort the rest of the pass.
package routing

// NodeID is a persistent token whose address identifies one logical node
// for the lifetime of the data graph. Only the address matters; allocate
// one per node and compare pointers.
type NodeID struct {
	// Non-zero size, so that distinct allocations are guaranteed
	// distinct addresses.
	_ [1]byte
}

// Region is one node in the routing tree. Regions persist across passes;
// their parent links are reassigned as each pass enters them, so the tree
// always mirrors the structure of the most recent traversal.
type Region struct {
	parent *Region
}

// Parent returns the region's parent as of the last pass that entered it.
func (r *Region) Parent() *Region { return r.parent }

// RoutableNodeID addresses a node for a later targeted dispatch. It keeps
// the node's region alive alongside the identity token so that the path
// to the node can be rebuilt even after intervening passes.
type RoutableNodeID struct {
	ID     *NodeID
	Region *Region
}

type pathNode struct {
	region *Region
	rest   *pathNode
}

// EventTraversal carries one dispatch through the traversal function.
type EventTraversal struct {
	event    any
	targeted bool
	target   *NodeID
	path     *pathNode
	active   *Region
}

// Event returns the event being dispatched.
func (t *EventTraversal) Event() any { return t.event }

// Targeted reports whether this dispatch carries a target.
func (t *EventTraversal) Targeted() bool { return t.targeted }

// TargetID returns the identity of the dispatch target, or nil for a
// global dispatch.
func (t *EventTraversal) TargetID() *NodeID { return t.target }

// ActiveRegion returns the innermost region the traversal has entered.
func (t *EventTraversal) ActiveRegion() *Region { return t.active }

// Detect returns the traversal's event if it is of type E. Dispatch sites
// filter on the event's run-time type this way.
func Detect[E any](t *EventTraversal) (E, bool) {
	e, ok := t.event.(E)
	return e, ok
}

// ScopedRegion tracks one region for the duration of a nested scope of
// the traversal function.
type ScopedRegion struct {
	t          *EventTraversal
	prevPath   *pathNode
	prevActive *Region
	relevant   bool
	active     bool
}

// Begin enters r. For a global dispatch every region is relevant; for a
// targeted one, r is relevant only if it is the next region on the path
// to the target, in which case the path cursor advances into r's subtree.
func (sr *ScopedRegion) Begin(t *EventTraversal, r *Region) {
	sr.t = t
	sr.prevPath = t.path
	sr.prevActive = t.active
	sr.active = true

	r.parent = t.active
	t.active = r

	switch {
	case !t.targeted:
		sr.relevant = true
	case t.path != nil && t.path.region == r:
		t.path = t.path.rest
		sr.relevant = true
	default:
		sr.relevant = false
	}
}

// IsRelevant reports whether the dispatch needs to visit this region's
// content. Callers are expected to check it before descending into
// expensive work; the traversal does not stop them, it just wastes the
// effort.
func (sr *ScopedRegion) IsRelevant() bool { return sr.relevant }

// End leaves the region, restoring the traversal to its state at Begin.
// Safe to call more than once.
func (sr *ScopedRegion) End() {
	if !sr.active {
		return
	}
	sr.active = false
	sr.t.path = sr.prevPath
	sr.t.active = sr.prevActive
}

// traversalAborted is the distinguished unwind signal used by Abort. It
// never escapes RouteEvent.
type traversalAborted struct{}

// Abort cuts the remainder of the current dispatch short. It must only be
// called from within a traversal started by RouteEvent; the unwind is
// consumed there and does not propagate further.
func Abort() {
	panic(traversalAborted{})
}

// RouteEvent dispatches event through invoke. A nil target dispatches
// globally; otherwise the path from the root to the target's region is
// built first and drives relevance as the traversal enters regions.
// An Abort raised inside invoke ends the dispatch quietly; any other
// panic propagates.
func RouteEvent(event any, target *RoutableNodeID, invoke func(*EventTraversal)) {
	t := &EventTraversal{event: event}
	if target != nil {
		t.targeted = true
		t.target = target.ID
		t.path = pathTo(target.Region, nil)
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(traversalAborted); !ok {
				panic(r)
			}
		}
	}()
	invoke(t)
}

func pathTo(r *Region, tail *pathNode) *pathNode {
	if r == nil {
		return tail
	}
	return pathTo(r.parent, &pathNode{region: r, rest: tail})
}
