package weft

import (
	"github.com/weftui/weft/pkg/graph"
	"github.com/weftui/weft/pkg/ids"
	"github.com/weftui/weft/pkg/signals"
)

type asyncStatus uint8

const (
	asyncUnready asyncStatus = iota
	asyncLaunched
	asyncComplete
	asyncFailed
)

// asyncData persists one asynchronous operation across passes. version
// guards against stale completions: a reporter captured before a reset
// compares its version against the live one and discards itself on
// mismatch.
type asyncData[R any] struct {
	status  asyncStatus
	version uint64
	inputID ids.Captured
	result  R
	err     error
}

func (d *asyncData[R]) reset() {
	var zero R
	d.status = asyncUnready
	d.result = zero
	d.err = nil
	d.version++
}

// Reporter delivers the result of an asynchronous operation back into the
// system. It must be invoked from the same goroutine that drives the
// system's dispatches (typically the host event loop), outside any
// in-flight traversal; completions arriving on other goroutines must be
// marshaled over by the host.
//
// A reporter outlives the traversal that created it. If the operation's
// inputs change before it completes, the late report is silently
// discarded; there is no active cancellation.
type Reporter[R any] struct {
	sys     *System
	d       *asyncData[R]
	version uint64
}

func (r Reporter[R]) stale() bool {
	return r.d == nil || r.d.version != r.version
}

// Finish reports a successful result and schedules a refresh so that the
// result becomes visible.
func (r Reporter[R]) Finish(v R) {
	if r.stale() {
		return
	}
	r.d.status = asyncComplete
	r.d.result = v
	r.sys.scheduleRefresh()
}

// Fail reports a failure. The failure is captured into the operation's
// state rather than thrown, since the call site that launched it is long
// gone; the result signal simply never gains a value until the inputs
// change.
func (r Reporter[R]) Fail(err error) {
	if r.stale() {
		return
	}
	r.d.status = asyncFailed
	r.d.err = err
	r.sys.log.Debug("async operation failed", "error", err)
	r.sys.scheduleRefresh()
}

type asyncSignal[R any] struct {
	signals.ReadOnlyBase[R]
	d *asyncData[R]
}

func (s asyncSignal[R]) HasValue() bool { return s.d.status == asyncComplete }
func (s asyncSignal[R]) Read() R        { return s.d.result }

func (s asyncSignal[R]) ValueID() ids.ID {
	if s.d.status != asyncComplete {
		return ids.Null
	}
	return ids.NewValue(s.d.version)
}

// Async wraps an operation that must complete outside the current
// traversal. During a refresh pass with arg available and the operation
// not yet launched, launch is invoked with a Reporter and the argument
// value; it should start the work and return without blocking. The result
// signal has no value until a non-stale Finish arrives, and any change in
// arg's identity resets the operation, discarding an in-flight result's
// effect.
func Async[A, R any](ctx Context, launch func(Reporter[R], A), arg signals.Signal[A]) signals.Signal[R] {
	// Like apply records, the operation's record is cached data: purging
	// the enclosing region discards it, and reporters still holding the
	// discarded record deliver into an unreferenced struct.
	s := graph.GetCached[*asyncData[R]](ctx.data)
	if !s.Valid() {
		s.Set(&asyncData[R]{})
	}
	d := s.Get()
	if IsRefresh(ctx) {
		if id := arg.ValueID(); !d.inputID.Matches(id) {
			d.inputID.Capture(id)
			d.reset()
		}
		if d.status == asyncUnready && arg.HasValue() {
			d.status = asyncLaunched
			launch(Reporter[R]{sys: ctx.sys, d: d, version: d.version}, arg.Read())
		}
	}
	return asyncSignal[R]{d: d}
}
