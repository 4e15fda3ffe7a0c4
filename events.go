package weft

import (
	"github.com/weftui/weft/pkg/graph"
	"github.com/weftui/weft/pkg/routing"
)

// RefreshEvent is the distinguished event that recomputes everything
// reachable. Refresh passes are the only ones that drive apply/async
// evaluation and animation scheduling.
type RefreshEvent struct{}

// IsRefresh reports whether the current pass is a refresh.
func IsRefresh(ctx Context) bool {
	_, ok := routing.Detect[RefreshEvent](ctx.events)
	return ok
}

// OnRefresh runs f during refresh passes.
func OnRefresh(ctx Context, f func()) {
	if IsRefresh(ctx) {
		f()
	}
}

// OnEvent runs handler if the current pass is dispatching an event of
// type E.
func OnEvent[E any](ctx Context, handler func(E)) {
	if e, ok := routing.Detect[E](ctx.events); ok {
		handler(e)
	}
}

// TargetedEvent is implemented by events that address one node. Embed
// TargetedBase to satisfy it.
type TargetedEvent interface {
	Target() *routing.NodeID
	SetTarget(*routing.NodeID)
}

// TargetedBase carries the target field of a targeted event.
type TargetedBase struct {
	target *routing.NodeID
}

func (b *TargetedBase) Target() *routing.NodeID      { return b.target }
func (b *TargetedBase) SetTarget(id *routing.NodeID) { b.target = id }

// OnTargetedEvent runs handler if the current pass is dispatching an
// event of type E targeted at id, then aborts the pass: once the target
// has handled its event there is nothing left for the traversal to do.
func OnTargetedEvent[E TargetedEvent](ctx Context, id *routing.NodeID, handler func(E)) {
	if e, ok := routing.Detect[E](ctx.events); ok && e.Target() == id {
		handler(e)
		routing.Abort()
	}
}

// Abort cuts the remainder of the current pass short. The unwind is
// consumed by the dispatch entry point; data graph bookkeeping along the
// way detects the abnormal exit and skips its commit step.
func Abort() {
	routing.Abort()
}

// GetNodeID returns the identity token for the node at the current data
// position. The token's address is the identity. It lives as cached data,
// so purging the enclosing region retires the token; captured routable
// ids from before the purge no longer address the node.
func GetNodeID(ctx Context) *routing.NodeID {
	s := graph.GetCached[*routing.NodeID](ctx.data)
	if !s.Valid() {
		s.Set(&routing.NodeID{})
	}
	return s.Get()
}

// GetRoutableNodeID captures the current node identity together with the
// active routing region, producing a value that can address this node in
// a later targeted dispatch.
func GetRoutableNodeID(ctx Context) routing.RoutableNodeID {
	return routing.RoutableNodeID{
		ID:     GetNodeID(ctx),
		Region: ctx.events.ActiveRegion(),
	}
}

// Region tracks one routing region for a nested scope of the controller.
// The region object itself persists in the data graph; Begin re-links it
// under the currently active region each pass.
type Region struct {
	sr routing.ScopedRegion
}

// Begin resolves the region at the current data position and enters it.
func (r *Region) Begin(ctx Context) {
	reg, _ := graph.Get[routing.Region](ctx.data)
	r.sr.Begin(ctx.events, reg)
}

// IsRelevant reports whether the current dispatch needs this region's
// content. Check it before doing expensive work in the region.
func (r *Region) IsRelevant() bool { return r.sr.IsRelevant() }

// End leaves the region.
func (r *Region) End() { r.sr.End() }

// InRegion runs body inside its own routing region and data block. For a
// targeted dispatch that is not headed into this region, body is skipped
// entirely; the nested data block keeps the skip from disturbing data
// positions after the region.
func InRegion(ctx Context, body func(Context)) {
	var r Region
	r.Begin(ctx)
	defer r.End()

	var sb graph.ScopedBlock
	sb.Begin(ctx.data, graph.GetBlock(ctx.data))
	defer sb.End()

	if r.IsRelevant() {
		body(ctx)
	}
}
