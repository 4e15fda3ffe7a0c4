package weft

import (
	"github.com/weftui/weft/pkg/graph"
	"github.com/weftui/weft/pkg/ids"
	"github.com/weftui/weft/pkg/signals"
)

type applyStatus uint8

const (
	applyUncomputed applyStatus = iota
	applyReady
	applyFailed
)

// applyData persists one eager application across passes. version is
// bumped on every reset and serves as the result's identity.
type applyData[R any] struct {
	status  applyStatus
	version uint64
	inputID ids.Captured
	result  R
	err     error
}

func (d *applyData[R]) reset() {
	var zero R
	d.status = applyUncomputed
	d.result = zero
	d.err = nil
	d.version++
}

// refresh re-captures the argument identity, resetting on change, and
// computes when possible.
func (d *applyData[R]) refresh(ctx Context, id ids.ID, available bool, compute func() (R, error)) {
	if !d.inputID.Matches(id) {
		d.inputID.Capture(id)
		d.reset()
	}
	if d.status != applyUncomputed || !available {
		return
	}
	r, err := compute()
	if err != nil {
		d.status = applyFailed
		d.err = err
		ctx.Logger().Debug("apply failed", "error", err)
		return
	}
	d.status = applyReady
	d.result = r
}

// getApplyData resolves the application's record at the current position.
// The record lives as cached data: when the enclosing region goes
// inactive and is purged, the memoized result goes with it and the next
// activation recomputes from scratch.
func getApplyData[R any](ctx Context) *applyData[R] {
	s := graph.GetCached[*applyData[R]](ctx.data)
	if !s.Valid() {
		s.Set(&applyData[R]{})
	}
	return s.Get()
}

type applySignal[R any] struct {
	signals.ReadOnlyBase[R]
	d *applyData[R]
}

func (s applySignal[R]) HasValue() bool { return s.d.status == applyReady }
func (s applySignal[R]) Read() R        { return s.d.result }

func (s applySignal[R]) ValueID() ids.ID {
	if s.d.status != applyReady {
		return ids.Null
	}
	return ids.NewValue(s.d.version)
}

// Apply eagerly applies f to arg's value, once per distinct argument
// identity: the result is computed during the refresh pass that first
// sees a new argument and reused until the argument's identity changes
// again. A failing f parks the slot in a failed state (the result signal
// has no value) until the argument changes; the error is never thrown.
func Apply[A, R any](ctx Context, f func(A) (R, error), arg signals.Signal[A]) signals.Signal[R] {
	d := getApplyData[R](ctx)
	if IsRefresh(ctx) {
		d.refresh(ctx, arg.ValueID(), arg.HasValue(), func() (R, error) {
			return f(arg.Read())
		})
	}
	return applySignal[R]{d: d}
}

// Apply2 is Apply for a two-argument function; the combined argument
// identity drives recomputation.
func Apply2[A, B, R any](ctx Context, f func(A, B) (R, error), a signals.Signal[A], b signals.Signal[B]) signals.Signal[R] {
	d := getApplyData[R](ctx)
	if IsRefresh(ctx) {
		d.refresh(ctx, signals.CombinedID(a, b), signals.AllHaveValues(a, b), func() (R, error) {
			return f(a.Read(), b.Read())
		})
	}
	return applySignal[R]{d: d}
}
