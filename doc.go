/*
Package weft is a reactive core for building user interfaces (and other
incrementally recomputed systems) around a single idea: the application is
a plain function, re-executed from the top on every event, and everything
that must persist between executions lives in a data graph addressed by
the function's own control flow.

# Concept

A weft application supplies one controller function. The system invokes it
once per dispatched event with a Context; as the controller runs, each
call site that asks for persistent data is matched, by its position in the
control flow, to a graph node that survives across passes. Conditionals
and loops get nested blocks so branches not taken cannot shift anything
else, and collections that reorder use named blocks keyed by explicit
identities. The controller therefore reads like straight-line code while
behaving like a retained structure.

Values flow through signals, transient read/write views that pair a value
with a change identity. Identity, not equality, is the freshness oracle:
caches and memoization points recompute exactly when an identity changes.
Side effects are modeled as actions, composable values that know whether
they can run before anything runs.

# Key Features

  - Implicit persistence: per-call-site state with no registration, keys,
    or diffing; named blocks handle reordering collections.
  - Signals: direction-aware value views with cheap freshness identities
    and a combinator vocabulary (fallback, masking, muxing, projections,
    lazy application).
  - Event routing: global and targeted dispatch over a region tree, with
    path-directed traversal and early abort once a target is served.
  - Eager and asynchronous application with status state machines and
    stale-completion discard.
  - Host integration through a two-method external interface (tick count,
    refresh scheduling); adapters for terminal UIs live under
    pkg/adapters.

# Usage

	package main

	import (
		"fmt"

		"github.com/weftui/weft"
	)

	type clickEvent struct{}

	func main() {
		sys := weft.New(func(ctx weft.Context) {
			counter := weft.GetState(ctx, 0)

			weft.OnRefresh(ctx, func() {
				fmt.Println("count is", counter.Read())
			})
			weft.OnEvent(ctx, func(clickEvent) {
				counter.Write(counter.Read() + 1)
			})
		})

		sys.Refresh()
		sys.DispatchEvent(clickEvent{})
		sys.Refresh()
	}

The controller must be deterministic: re-invoked for a refresh with no
external state change, it must request data in the same order. The system
runs one traversal at a time and does no locking; all dispatching belongs
on one goroutine.
*/
package weft
