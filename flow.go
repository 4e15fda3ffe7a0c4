package weft

import (
	"cmp"
	"slices"

	"github.com/weftui/weft/pkg/graph"
	"github.com/weftui/weft/pkg/ids"
	"github.com/weftui/weft/pkg/signals"
)

// If runs body when condition is true. The branch gets its own data
// block, so its data requests never shift the positions of data after it,
// and its cached data is wiped while the branch is inactive.
func If(ctx Context, condition bool, body func(Context)) {
	var ib graph.IfBlock
	ib.Begin(ctx.data, condition)
	defer ib.End()
	if condition {
		body(ctx)
	}
}

// IfElse runs then or els depending on condition. Each branch gets its
// own data block.
func IfElse(ctx Context, condition bool, then, els func(Context)) {
	If(ctx, condition, then)
	If(ctx, !condition, els)
}

// When is If driven by a boolean signal: body runs only when the signal
// has a value and it is true.
func When(ctx Context, condition signals.Signal[bool], body func(Context)) {
	If(ctx, signals.ReadOr(condition, false), body)
}

// WhenElse is IfElse driven by a boolean signal. Neither branch runs
// while the signal has no value.
func WhenElse(ctx Context, condition signals.Signal[bool], then, els func(Context)) {
	known := condition.HasValue()
	v := known && condition.Read()
	If(ctx, v, then)
	If(ctx, known && !v, els)
}

// Switch runs body as the case for key. Each key's data lives in its own
// named block exempt from collection, so switching away and back does not
// lose a case's state. Long-lived systems cycling through many distinct
// keys should prune stale cases with DeleteSwitchCase.
func Switch[K cmp.Ordered](ctx Context, key K, body func(Context)) {
	var nc graph.NamingContext
	nc.Begin(ctx.data)
	committed := false
	defer func() {
		if !committed {
			nc.Abort()
		}
	}()

	var nb graph.NamedBlock
	nb.BeginManual(&nc, ids.NewValue(key))
	body(ctx)
	nb.End()

	committed = true
	nc.End()
}

// DeleteSwitchCase drops the retained state of one case of the Switch at
// the current data position. It must be called where the Switch itself
// would run, so that it resolves the same naming context.
func DeleteSwitchCase[K cmp.Ordered](ctx Context, key K) bool {
	var nc graph.NamingContext
	nc.Begin(ctx.data)
	deleted := nc.Delete(ids.NewValue(key))
	nc.Abort()
	return deleted
}

// Loop runs body count times, giving every iteration its own data block
// matched by index. Use ForEach instead when items can reorder between
// passes.
func Loop(ctx Context, count int, body func(Context, int)) {
	var lb graph.LoopBlock
	lb.Begin(ctx.data)
	defer lb.End()
	for i := 0; i < count; i++ {
		body(ctx, i)
		lb.Next()
	}
}

// ForEach runs body once per item, giving each item a data block matched
// by the identity key derives from it rather than by position. Items can
// be added, removed, and reordered between passes without any item losing
// its state; blocks whose keys disappear are collected at the end of the
// pass.
func ForEach[T any](ctx Context, items []T, key func(int, T) ids.ID, body func(Context, int, T)) {
	var nc graph.NamingContext
	nc.Begin(ctx.data)
	committed := false
	defer func() {
		if !committed {
			nc.Abort()
		}
	}()

	for i, item := range items {
		var nb graph.NamedBlock
		nb.Begin(&nc, key(i, item))
		body(ctx, i, item)
		nb.End()
	}

	committed = true
	nc.End()
}

// ForEachKeyed is ForEach for items that are their own keys.
func ForEachKeyed[T cmp.Ordered](ctx Context, items []T, body func(Context, int, T)) {
	ForEach(ctx, items, func(_ int, item T) ids.ID {
		return ids.NewValue(item)
	}, body)
}

// ForEachMap runs body once per map entry in key order. Entries are
// matched to their data blocks by key, so insertions and removals leave
// the surviving entries' state intact.
func ForEachMap[K cmp.Ordered, V any](ctx Context, m map[K]V, body func(Context, K, V)) {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var nc graph.NamingContext
	nc.Begin(ctx.data)
	committed := false
	defer func() {
		if !committed {
			nc.Abort()
		}
	}()

	for _, k := range keys {
		var nb graph.NamedBlock
		nb.Begin(&nc, ids.NewValue(k))
		body(ctx, k, m[k])
		nb.End()
	}

	committed = true
	nc.End()
}
