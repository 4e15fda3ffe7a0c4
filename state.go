package weft

import (
	"github.com/weftui/weft/pkg/graph"
	"github.com/weftui/weft/pkg/ids"
	"github.com/weftui/weft/pkg/signals"
)

// GetData returns a pointer to the persistent T at the current data
// position, plus whether the slot was just created this pass.
func GetData[T any](ctx Context) (*T, bool) {
	return graph.Get[T](ctx.data)
}

// GetCachedData returns the cached slot at the current data position.
// Cached slots are wiped whenever their region goes inactive; check Valid
// before trusting the content.
func GetCachedData[T any](ctx Context) *graph.CachedSlot[T] {
	return graph.GetCached[T](ctx.data)
}

// stateHolder persists one piece of application state. version doubles as
// the value identity; zero means uninitialized.
type stateHolder[T any] struct {
	value   T
	version uint64
}

type stateSignal[T any] struct {
	h *stateHolder[T]
}

func (s stateSignal[T]) Direction() signals.Direction { return signals.Duplex }
func (s stateSignal[T]) HasValue() bool               { return s.h.version != 0 }
func (s stateSignal[T]) Read() T                      { return s.h.value }
func (s stateSignal[T]) ReadyToWrite() bool           { return true }

func (s stateSignal[T]) ValueID() ids.ID {
	if s.h.version == 0 {
		return ids.Null
	}
	return ids.NewValue(s.h.version)
}

func (s stateSignal[T]) Write(v T) {
	s.h.value = v
	s.h.version++
}

// GetState returns a duplex signal over a piece of state persisted at the
// current data position, initialized to init when the slot is first
// created. Every write bumps the state's version, which serves as its
// identity.
func GetState[T any](ctx Context, init T) signals.Signal[T] {
	h, _ := graph.Get[stateHolder[T]](ctx.data)
	if h.version == 0 {
		h.value = init
		h.version = 1
	}
	return stateSignal[T]{h: h}
}

// GetStateFunc is GetState with a lazily computed initial value; init
// runs only on the pass that creates the slot. A nil init leaves the
// state at T's zero value.
func GetStateFunc[T any](ctx Context, init func() T) signals.Signal[T] {
	h, _ := graph.Get[stateHolder[T]](ctx.data)
	if h.version == 0 {
		if init != nil {
			h.value = init()
		}
		h.version = 1
	}
	return stateSignal[T]{h: h}
}

// keyedSignal exposes keyed data as a duplex signal. The value's identity
// is the key it was refreshed against; a key change invalidates it until
// the next write.
type keyedSignal[T any] struct {
	kd *graph.KeyedData[T]
}

func (s keyedSignal[T]) Direction() signals.Direction { return signals.Duplex }
func (s keyedSignal[T]) HasValue() bool               { return s.kd.Valid() }
func (s keyedSignal[T]) Read() T                      { return s.kd.Get() }
func (s keyedSignal[T]) ReadyToWrite() bool           { return true }
func (s keyedSignal[T]) Write(v T)                    { s.kd.Set(v) }

func (s keyedSignal[T]) ValueID() ids.ID {
	if !s.kd.Valid() {
		return ids.Null
	}
	return s.kd.Key()
}

// GetKeyedData returns a duplex signal over data tied to key's identity.
// The signal has no value until written; presenting a different key
// invalidates it until written again.
func GetKeyedData[T any](ctx Context, key ids.ID) signals.Signal[T] {
	return keyedSignal[T]{kd: graph.GetKeyed[T](ctx.data, key)}
}

// simplifyData backs SimplifyID: a captured input identity plus a counter
// bumped on every change.
type simplifyData struct {
	id      ids.Captured
	version uint64
}

// SimplifyID replaces s's value identity with a small counter persisted
// at the current data position, bumped whenever the underlying identity
// changes. Useful when the underlying identity is an expensive composite
// that downstream consumers would otherwise clone and compare repeatedly.
func SimplifyID[T any](ctx Context, s signals.Signal[T]) signals.Signal[T] {
	d, _ := graph.Get[simplifyData](ctx.data)
	if current := s.ValueID(); !d.id.Matches(current) {
		d.id.Capture(current)
		d.version++
	}
	return signals.WithID(s, ids.NewValue(d.version))
}
