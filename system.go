package weft

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/weftui/weft/internal/logging"
	"github.com/weftui/weft/pkg/graph"
	"github.com/weftui/weft/pkg/routing"
)

// System owns a data graph and the controller function traversed over it.
// Exactly one traversal runs at a time, driven to completion (or to an
// explicit abort) before the next may start; the system itself does no
// locking, so all dispatch entry points must be called from one goroutine.
type System struct {
	graph      graph.Graph
	controller func(Context)
	external   ExternalInterface
	log        *slog.Logger
	hooks      Hooks

	refreshNeeded bool
	dispatching   bool
	tick          int64
}

// Option configures a System.
type Option func(*System)

// WithLogger installs a logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(s *System) { s.log = log }
}

// WithExternal installs the host interface used for tick counts and
// refresh scheduling. The default is wall-clock backed and schedules
// nothing; hosts that animate should provide their own.
func WithExternal(e ExternalInterface) Option {
	return func(s *System) { s.external = e }
}

// WithHooks installs lifecycle hooks.
func WithHooks(h Hooks) Option {
	return func(s *System) { s.hooks = h }
}

// Hooks are optional callbacks around the system's lifecycle. Nil fields
// are skipped.
type Hooks struct {
	// OnPassEnd fires after every completed dispatch, including aborted
	// targeted ones.
	OnPassEnd func(PassInfo)
}

// PassInfo describes one completed dispatch.
type PassInfo struct {
	// Event is the dispatched event's type name.
	Event    string
	Targeted bool
	Refresh  bool
	Duration time.Duration
	Stats    graph.Stats
}

// New creates a system around a controller. The controller is invoked
// once per dispatched event and must request data in a deterministic
// order: re-invoking it for a refresh with no external state change must
// reproduce the same sequence of data accesses.
func New(controller func(Context), opts ...Option) *System {
	s := &System{
		controller: controller,
		log:        logging.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.external == nil {
		s.external = NewClockExternal()
	}
	return s
}

// Refresh runs one refresh pass, recomputing everything reachable and
// driving named block collection. It clears the refresh-needed flag.
func (s *System) Refresh() {
	s.refreshNeeded = false
	s.dispatch(RefreshEvent{}, nil)
}

// RefreshNeeded reports whether something (an animation, an async
// completion) has asked for another refresh since the last one.
func (s *System) RefreshNeeded() bool { return s.refreshNeeded }

// DispatchEvent routes an event globally: every region of the controller
// sees it.
func (s *System) DispatchEvent(event any) {
	s.dispatch(event, nil)
}

// DispatchTargetedEvent routes an event at one node. The event's target
// field is assigned from the id before dispatch; only regions on the path
// to the node are relevant, and the pass normally aborts as soon as the
// node's handler has run.
func (s *System) DispatchTargetedEvent(event TargetedEvent, target routing.RoutableNodeID) {
	event.SetTarget(target.ID)
	s.dispatch(event, &target)
}

func (s *System) dispatch(event any, target *routing.RoutableNodeID) {
	if s.dispatching {
		panic("weft: dispatch re-entered during a traversal")
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	start := time.Now()
	s.tick = s.external.TickCount()
	_, refresh := event.(RefreshEvent)

	tr := s.graph.BeginTraversal()

	// Only the refresh pass may collect named blocks or purge cached
	// data; other passes see the structure the last refresh committed
	// and must leave it intact.
	var gc graph.GCDisabler
	var cc graph.CacheClearingDisabler
	if !refresh {
		gc.Begin(tr)
		cc.Begin(tr)
	}

	routing.RouteEvent(event, target, func(et *routing.EventTraversal) {
		s.controller(Context{sys: s, data: tr, events: et})
	})

	cc.End()
	gc.End()

	elapsed := time.Since(start)
	s.log.Debug("pass complete",
		"event", fmt.Sprintf("%T", event),
		"targeted", target != nil,
		"duration", elapsed)
	if s.hooks.OnPassEnd != nil {
		s.hooks.OnPassEnd(PassInfo{
			Event:    fmt.Sprintf("%T", event),
			Targeted: target != nil,
			Refresh:  refresh,
			Duration: elapsed,
			Stats:    s.graph.Stats(),
		})
	}
}

// scheduleRefresh marks the system as needing a refresh and notifies the
// host once per need.
func (s *System) scheduleRefresh() {
	if s.refreshNeeded {
		return
	}
	s.refreshNeeded = true
	s.external.ScheduleRefresh()
}

// Stats returns the data graph's lifetime counters.
func (s *System) Stats() graph.Stats { return s.graph.Stats() }
