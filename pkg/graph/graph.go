// Package graph implements the persistent data graph that backs re-executed
// traversal functions. Each call site that requests data is matched, by its
// position in the control flow, to a node that survives across passes, so a
// function that runs top-to-bottom every pass can still accumulate state.
//
// The matching is positional: as long as a pass requests data in the same
// order as the previous pass, every request lands on the node it created
// before. Conditional regions get their own nested blocks so that branches
// not taken do not shift the positions of everything after them, and named
// blocks decouple position from order entirely for collections that reorder.
package graph

import (
	"fmt"
	"reflect"
)

// TypeMismatchError is the panic value raised when a traversal requests a
// different type than the one stored at the current position. This always
// indicates a bug in the traversal function: its control flow requested
// data in an order inconsistent with an earlier pass.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("graph: data node type mismatch: requested %v, stored %v", e.Expected, e.Actual)
}

// node is a single slot in a block's list. Its value is one of the slot
// kinds below, never a bare user value.
type node struct {
	value any
	next  *node
}

// cacheClearer is implemented by slot kinds that hold cached (recomputable)
// data, directly or transitively.
type cacheClearer interface {
	clearCache()
}

// slot holds plain persistent data. It survives cache clearing untouched.
type slot[T any] struct {
	v T
}

// CachedSlot holds data that can be discarded and recomputed at will.
// Cached slots are wiped whenever their enclosing region goes inactive,
// so holders must check Valid before trusting the content.
type CachedSlot[T any] struct {
	v     T
	valid bool
}

// Valid reports whether the slot currently holds a value.
func (c *CachedSlot[T]) Valid() bool { return c.valid }

// Get returns the held value. It is only meaningful when Valid.
func (c *CachedSlot[T]) Get() T { return c.v }

// Set stores v and marks the slot valid.
func (c *CachedSlot[T]) Set(v T) {
	c.v = v
	c.valid = true
}

// Invalidate discards the held value.
func (c *CachedSlot[T]) Invalidate() {
	var zero T
	c.v = zero
	c.valid = false
}

func (c *CachedSlot[T]) clearCache() { c.Invalidate() }

// blockNode nests a whole block inside a slot, giving conditional and
// looped regions their own positional space.
type blockNode struct {
	b Block
}

func (n *blockNode) clearCache() { n.b.ClearCache() }

// Block is a linked list of data nodes plus the bookkeeping needed to skip
// redundant cache sweeps.
type Block struct {
	head *node

	// cacheClear is set when the block's cached data is known to be
	// clear, so repeated sweeps of an inactive region cost nothing.
	cacheClear bool
}

// ClearCache wipes all cached data in the block, recursing into nested
// blocks and named blocks. Persistent data is untouched.
func (b *Block) ClearCache() {
	if b.cacheClear {
		return
	}
	for n := b.head; n != nil; n = n.next {
		if c, ok := n.value.(cacheClearer); ok {
			c.clearCache()
		}
	}
	b.cacheClear = true
}

// Graph owns the root block of a traversal function plus the holding pen
// for named block references that could not be released in order because a
// pass was aborted mid-flight.
type Graph struct {
	root Block

	// unreleasedRefs holds usage references from aborted passes. They are
	// released at the start of the next traversal, once the naming maps
	// are safe to mutate again.
	unreleasedRefs []*namedBlockNode

	stats Stats
}

// Stats carries lifetime counters for observability.
type Stats struct {
	Passes               uint64
	NamedBlocksCreated   uint64
	NamedBlocksDestroyed uint64
}

// Stats returns a snapshot of the graph's lifetime counters.
func (g *Graph) Stats() Stats { return g.stats }

// Traversal is one pass over a graph. It tracks the position within the
// active block that the next data request will resolve against.
type Traversal struct {
	graph *Graph
	block *Block
	next  **node

	gcEnabled            bool
	cacheClearingEnabled bool
}

// BeginTraversal starts a pass over g's root block. Garbage collection and
// cache clearing are both enabled at the root.
func (g *Graph) BeginTraversal() *Traversal {
	for _, n := range g.unreleasedRefs {
		n.release(g)
	}
	g.unreleasedRefs = nil
	g.stats.Passes++

	t := &Traversal{graph: g, gcEnabled: true, cacheClearingEnabled: true}
	t.enterBlock(&g.root)
	return t
}

// Graph returns the graph this traversal is passing over.
func (t *Traversal) Graph() *Graph { return t.graph }

// GCEnabled reports whether named block garbage collection is currently
// enabled on this traversal.
func (t *Traversal) GCEnabled() bool { return t.gcEnabled }

func (t *Traversal) enterBlock(b *Block) {
	t.block = b
	t.next = &b.head
	// The block is active again, so its cached data is about to be
	// repopulated and the next sweep must do real work.
	b.cacheClear = false
}

// get resolves the node at the current position, creating it with make if
// the position is past the end of the block. It panics with
// *TypeMismatchError if an existing node holds a different slot kind.
func get[V any](t *Traversal, make func() V) (V, bool) {
	n := *t.next
	if n == nil {
		v := make()
		n = &node{value: v}
		*t.next = n
		t.next = &n.next
		return v, true
	}
	v, ok := n.value.(V)
	if !ok {
		panic(&TypeMismatchError{
			Expected: reflect.TypeOf(v),
			Actual:   reflect.TypeOf(n.value),
		})
	}
	t.next = &n.next
	return v, false
}

// Get returns a pointer to the persistent T at the current position. The
// second result is true when the node was just created this pass, which is
// the caller's cue to initialize it.
func Get[T any](t *Traversal) (*T, bool) {
	s, fresh := get(t, func() *slot[T] { return &slot[T]{} })
	return &s.v, fresh
}

// GetCached returns the cached slot at the current position. Unlike Get,
// freshness is not reported: a cached slot can be wiped at any time, so
// callers must gate on Valid rather than on creation.
func GetCached[T any](t *Traversal) *CachedSlot[T] {
	s, _ := get(t, func() *CachedSlot[T] { return &CachedSlot[T]{} })
	return s
}

// GetBlock returns the nested block at the current position.
func GetBlock(t *Traversal) *Block {
	n, _ := get(t, func() *blockNode { return &blockNode{} })
	return &n.b
}

// ScopedBlock redirects a traversal into a nested block for the duration of
// a region. The zero value is inert; call Begin to activate it.
type ScopedBlock struct {
	t         *Traversal
	prevBlock *Block
	prevNext  **node
	active    bool
}

// Begin redirects t into b. Every data request until End lands in b.
func (sb *ScopedBlock) Begin(t *Traversal, b *Block) {
	sb.t = t
	sb.prevBlock = t.block
	sb.prevNext = t.next
	sb.active = true
	t.enterBlock(b)
}

// End restores the traversal to the position it held before Begin. It is
// safe to call on an inert or already-ended ScopedBlock, so it can sit in
// a defer and still cooperate with an early End on the success path.
func (sb *ScopedBlock) End() {
	if !sb.active {
		return
	}
	sb.active = false
	sb.t.block = sb.prevBlock
	sb.t.next = sb.prevNext
}

// IfBlock manages the data block of a conditional region. When the
// condition is false, the branch's cached data is wiped so that anything
// recomputable does not survive into the branch's next activation stale.
type IfBlock struct {
	sb ScopedBlock
}

// Begin resolves the region's block and either enters it (condition true)
// or clears its cached data in place (condition false).
func (ib *IfBlock) Begin(t *Traversal, condition bool) {
	b := GetBlock(t)
	if condition {
		ib.sb.Begin(t, b)
	} else if t.cacheClearingEnabled {
		b.ClearCache()
	}
}

// End leaves the region. A no-op when the condition was false.
func (ib *IfBlock) End() { ib.sb.End() }

// LoopBlock hands out one nested block per iteration of a loop whose
// iteration count may change between passes. All iteration blocks live
// inside a single container block, so the loop consumes exactly one
// position in its parent regardless of how many times it runs, and data
// after the loop never shifts. Iterations are matched by index; use named
// blocks instead when items reorder.
type LoopBlock struct {
	t         *Traversal
	container ScopedBlock
	iteration ScopedBlock
}

// Begin enters the first iteration's block.
func (lb *LoopBlock) Begin(t *Traversal) {
	lb.t = t
	lb.container.Begin(t, GetBlock(t))
	lb.next()
}

func (lb *LoopBlock) next() {
	lb.iteration.Begin(lb.t, GetBlock(lb.t))
}

// Next ends the current iteration's block and enters the following one.
func (lb *LoopBlock) Next() {
	lb.iteration.End()
	lb.next()
}

// End leaves the loop.
func (lb *LoopBlock) End() {
	lb.iteration.End()
	lb.container.End()
}

// CacheClearingDisabler suspends cache clearing within a region. Inactive
// branches inside the region keep their cached data, which is needed when a
// pass is only peeking at structure and must not disturb cached content.
type CacheClearingDisabler struct {
	t    *Traversal
	prev bool
	set  bool
}

// Begin suspends cache clearing on t until End.
func (d *CacheClearingDisabler) Begin(t *Traversal) {
	d.t = t
	d.prev = t.cacheClearingEnabled
	d.set = true
	t.cacheClearingEnabled = false
}

// End restores the previous cache clearing state.
func (d *CacheClearingDisabler) End() {
	if !d.set {
		return
	}
	d.set = false
	d.t.cacheClearingEnabled = d.prev
}

// GCDisabler suspends named block garbage collection within a region.
// While suspended, named blocks must be accessed in the same order as the
// pass that last ran with collection enabled; an out-of-order access
// panics with *OutOfOrderError.
type GCDisabler struct {
	t    *Traversal
	prev bool
	set  bool
}

// Begin suspends named block collection on t until End.
func (d *GCDisabler) Begin(t *Traversal) {
	d.t = t
	d.prev = t.gcEnabled
	d.set = true
	t.gcEnabled = false
}

// End restores the previous collection state.
func (d *GCDisabler) End() {
	if !d.set {
		return
	}
	d.set = false
	d.t.gcEnabled = d.prev
}
