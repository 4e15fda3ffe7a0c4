package graph

import (
	"fmt"

	"github.com/weftui/weft/pkg/ids"
)

// OutOfOrderError is the panic value raised when a named block is accessed
// out of order while garbage collection is disabled. Without collection
// the map cannot be mutated, so the pass must follow the order of the last
// collected pass exactly.
type OutOfOrderError struct {
	ID ids.ID
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("graph: out-of-order access to named block %v while garbage collection is disabled", e.ID)
}

// namedBlockNode is one named block within a naming map. It carries a
// reference count so that a block in use by an in-flight pass is never
// destroyed out from under it.
type namedBlockNode struct {
	owner *namingMapNode
	key   any
	id    ids.Captured
	block Block

	refCount      int
	manualDelete  bool
	pendingDelete bool
	dead          bool
}

func (n *namedBlockNode) release(g *Graph) {
	n.refCount--
	if n.refCount == 0 && n.pendingDelete {
		n.remove(g)
	}
}

func (n *namedBlockNode) remove(g *Graph) {
	delete(n.owner.index, n.key)
	n.dead = true
	g.stats.NamedBlocksDestroyed++
}

// namingMapNode is the slot kind that anchors a naming map in the graph.
// order remembers the usage order of the last collected pass and drives
// the O(1) prediction in find.
type namingMapNode struct {
	index map[any]*namedBlockNode
	order []*namedBlockNode
}

func (m *namingMapNode) clearCache() {
	for _, n := range m.index {
		n.block.ClearCache()
	}
}

// NamingContext scopes access to a naming map. Begin resolves the map at
// the traversal's current position; named blocks are then fetched through
// the context, and End commits the pass, collecting blocks that went
// unused. A pass that unwinds early must call Abort instead so that the
// map is not collected against an incomplete usage record.
type NamingContext struct {
	t      *Traversal
	m      *namingMapNode
	cursor int
	used   []*namedBlockNode
	active bool
}

// Begin resolves the naming map at t's current position and starts
// recording usage.
func (nc *NamingContext) Begin(t *Traversal) {
	m, _ := get(t, func() *namingMapNode {
		return &namingMapNode{index: make(map[any]*namedBlockNode)}
	})
	nc.t = t
	nc.m = m
	nc.cursor = 0
	nc.used = nil
	nc.active = true
}

// Traversal returns the traversal this context was begun on.
func (nc *NamingContext) Traversal() *Traversal { return nc.t }

func (nc *NamingContext) find(id ids.ID, manual bool) *namedBlockNode {
	m := nc.m

	// Fast path: passes that use named blocks in the same order as the
	// last collected pass never touch the map.
	if nc.cursor < len(m.order) {
		if n := m.order[nc.cursor]; !n.dead && n.id.Matches(id) {
			nc.cursor++
			n.manualDelete = manual
			nc.use(n)
			return n
		}
	}

	if !nc.t.gcEnabled {
		panic(&OutOfOrderError{ID: id.Clone()})
	}

	key := id.Key()
	n := m.index[key]
	if n == nil {
		n = &namedBlockNode{owner: m, key: key}
		n.id.Capture(id)
		m.index[key] = n
		nc.t.graph.stats.NamedBlocksCreated++
	}
	n.manualDelete = manual
	nc.use(n)
	return n
}

func (nc *NamingContext) use(n *namedBlockNode) {
	n.refCount++
	nc.used = append(nc.used, n)
}

// Delete manually destroys the named block for id. Blocks still referenced
// by an in-flight pass are destroyed once the last reference drains. It
// reports whether a block existed for id.
func (nc *NamingContext) Delete(id ids.ID) bool {
	n := nc.m.index[id.Key()]
	if n == nil {
		return false
	}
	if n.refCount > 0 {
		n.pendingDelete = true
		return true
	}
	n.remove(nc.t.graph)
	return true
}

// End commits the pass over this naming map. With garbage collection
// enabled, every block that was not used this pass and is not marked for
// manual deletion is destroyed, and the usage order is committed as the
// prediction order for the next pass.
func (nc *NamingContext) End() {
	nc.finish(true)
}

// Abort abandons the pass without collecting. Usage references taken this
// pass are parked on the graph and released at the start of the next
// traversal.
func (nc *NamingContext) Abort() {
	nc.finish(false)
}

func (nc *NamingContext) finish(commit bool) {
	if !nc.active {
		return
	}
	nc.active = false
	t := nc.t

	if !commit {
		t.graph.unreleasedRefs = append(t.graph.unreleasedRefs, nc.used...)
		nc.used = nil
		return
	}

	if t.gcEnabled {
		inUse := make(map[*namedBlockNode]bool, len(nc.used))
		for _, n := range nc.used {
			inUse[n] = true
		}
		for _, n := range nc.m.index {
			if inUse[n] {
				continue
			}
			if n.manualDelete {
				// The block survives, but an unused pass deactivates
				// it: anything recomputable inside is stale by the
				// time it is next entered.
				n.block.ClearCache()
			} else {
				n.remove(t.graph)
			}
		}
		nc.m.order = append(nc.m.order[:0], nc.used...)
	}

	for _, n := range nc.used {
		n.release(t.graph)
	}
	nc.used = nil
}

// NamedBlock redirects a traversal into the block named by an identity,
// within a NamingContext. Identity, not position, decides which block is
// reached, so collections can reorder without losing per-item data.
type NamedBlock struct {
	sb ScopedBlock
}

// Begin enters the block named id, creating it if needed. The block is
// subject to garbage collection: if a later collected pass does not use
// it, it is destroyed.
func (nb *NamedBlock) Begin(nc *NamingContext, id ids.ID) {
	nb.begin(nc, id, false)
}

// BeginManual is Begin for blocks exempt from garbage collection. The
// block survives unused passes and is only destroyed by an explicit
// Delete on its naming context.
func (nb *NamedBlock) BeginManual(nc *NamingContext, id ids.ID) {
	nb.begin(nc, id, true)
}

func (nb *NamedBlock) begin(nc *NamingContext, id ids.ID, manual bool) {
	n := nc.find(id, manual)
	nb.sb.Begin(nc.t, &n.block)
}

// End leaves the named block.
func (nb *NamedBlock) End() { nb.sb.End() }
