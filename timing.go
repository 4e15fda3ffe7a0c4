package weft

import (
	"time"

	"github.com/weftui/weft/pkg/graph"
)

// ExternalInterface is the system's view of its host. Both operations are
// called from the dispatch goroutine.
type ExternalInterface interface {
	// ScheduleRefresh asks the host to run another refresh pass soon.
	// It fires at most once per outstanding need; the host answers by
	// calling Refresh, which rearms it.
	ScheduleRefresh()

	// TickCount returns the current millisecond tick count. Only
	// differences between counts are meaningful.
	TickCount() int64
}

// clockExternal is the default host interface: wall-clock ticks and no
// refresh scheduling. Suitable for hosts that refresh on their own
// cadence or poll RefreshNeeded.
type clockExternal struct {
	epoch time.Time
}

// NewClockExternal returns the default wall-clock backed host interface.
func NewClockExternal() ExternalInterface {
	return &clockExternal{epoch: time.Now()}
}

func (c *clockExternal) ScheduleRefresh() {}

func (c *clockExternal) TickCount() int64 {
	return time.Since(c.epoch).Milliseconds()
}

// Ticks returns the millisecond tick count sampled at the start of the
// current pass. Every call within one pass sees the same value.
func Ticks(ctx Context) int64 {
	return ctx.sys.tick
}

// RequestAnimationRefresh asks for another refresh pass soon. Animating
// code calls this every refresh for as long as the animation runs.
func RequestAnimationRefresh(ctx Context) {
	ctx.sys.scheduleRefresh()
}

// AnimationTicksLeft returns the milliseconds remaining until endTick,
// clamped at zero. While any time remains during a refresh pass, another
// refresh is requested automatically, which is what keeps an animation
// advancing.
func AnimationTicksLeft(ctx Context, endTick int64) int64 {
	remaining := endTick - Ticks(ctx)
	if remaining <= 0 {
		return 0
	}
	if IsRefresh(ctx) {
		RequestAnimationRefresh(ctx)
	}
	return remaining
}

// timerData persists one timer across passes.
type timerData struct {
	active bool
	end    int64
}

// Timer is a one-shot countdown persisted in the data graph. It is a
// transient handle; fetch it fresh each pass with GetTimer.
type Timer struct {
	ctx Context
	d   *timerData
}

// GetTimer returns the timer at the current data position.
func GetTimer(ctx Context) Timer {
	d, _ := graph.Get[timerData](ctx.data)
	return Timer{ctx: ctx, d: d}
}

// Start arms the timer to trigger after ms milliseconds.
func (t Timer) Start(ms int64) {
	t.d.active = true
	t.d.end = Ticks(t.ctx) + ms
}

// Stop disarms the timer.
func (t Timer) Stop() {
	t.d.active = false
}

// IsActive reports whether the timer is armed.
func (t Timer) IsActive() bool { return t.d.active }

// IsTriggered reports whether the timer just expired. It returns true on
// the first refresh pass at or past the deadline, disarming the timer,
// and false otherwise; while armed and unexpired, it keeps refresh passes
// coming so that the expiry is noticed promptly.
func (t Timer) IsTriggered() bool {
	if !t.d.active || !IsRefresh(t.ctx) {
		return false
	}
	if AnimationTicksLeft(t.ctx, t.d.end) > 0 {
		return false
	}
	t.d.active = false
	return true
}
