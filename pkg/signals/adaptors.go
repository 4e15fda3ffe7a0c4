package signals

import "github.com/weftui/weft/pkg/ids"

// fallbackSignal prefers its primary operand and falls back to the other
// for reads. Writes always go to the primary.
type fallbackSignal[T any] struct {
	primary  Signal[T]
	fallback Signal[T]
}

func (s fallbackSignal[T]) Direction() Direction {
	d := Readable
	if s.primary.Direction().CanWrite() {
		d |= Writable
	}
	return d
}

func (s fallbackSignal[T]) HasValue() bool {
	return s.primary.HasValue() || s.fallback.HasValue()
}

func (s fallbackSignal[T]) Read() T {
	if s.primary.HasValue() {
		return s.primary.Read()
	}
	return s.fallback.Read()
}

func (s fallbackSignal[T]) ValueID() ids.ID {
	// Which operand supplies the value is part of the identity, so a
	// primary appearing with the same content as the fallback still
	// registers as a change.
	if s.primary.HasValue() {
		return ids.Combine(ids.NewValue(uint8(1)), s.primary.ValueID())
	}
	if s.fallback.HasValue() {
		return ids.Combine(ids.NewValue(uint8(0)), s.fallback.ValueID())
	}
	return ids.Null
}

func (s fallbackSignal[T]) ReadyToWrite() bool { return s.primary.ReadyToWrite() }
func (s fallbackSignal[T]) Write(v T)          { s.primary.Write(v) }

// Fallback returns a signal that reads from primary when it has a value
// and from fallback otherwise. Writes go to primary.
func Fallback[T any](primary, fallback Signal[T]) Signal[T] {
	return fallbackSignal[T]{primary: primary, fallback: fallback}
}

// maskSignal gates both halves of a signal on an availability condition.
type maskSignal[T any] struct {
	wrapped Signal[T]
	avail   Signal[bool]
}

func (s maskSignal[T]) open() bool {
	return s.avail.HasValue() && s.avail.Read()
}

func (s maskSignal[T]) Direction() Direction { return s.wrapped.Direction() }

func (s maskSignal[T]) HasValue() bool {
	return s.open() && s.wrapped.HasValue()
}

func (s maskSignal[T]) Read() T { return s.wrapped.Read() }

func (s maskSignal[T]) ValueID() ids.ID {
	if !s.HasValue() {
		return ids.Null
	}
	return s.wrapped.ValueID()
}

func (s maskSignal[T]) ReadyToWrite() bool {
	return s.open() && s.wrapped.ReadyToWrite()
}

func (s maskSignal[T]) Write(v T) { s.wrapped.Write(v) }

// Mask suppresses both reads and writes of s while avail is absent or
// false.
func Mask[T any](s Signal[T], avail Signal[bool]) Signal[T] {
	return maskSignal[T]{wrapped: s, avail: avail}
}

// conditionalSignal muxes two operands by a boolean condition signal.
type conditionalSignal[T any] struct {
	cond    Signal[bool]
	ifTrue  Signal[T]
	ifFalse Signal[T]
}

func (s conditionalSignal[T]) active() (Signal[T], bool) {
	if !s.cond.HasValue() {
		return nil, false
	}
	if s.cond.Read() {
		return s.ifTrue, true
	}
	return s.ifFalse, true
}

func (s conditionalSignal[T]) Direction() Direction {
	// The mux only promises what both branches can deliver.
	return s.ifTrue.Direction().Intersect(s.ifFalse.Direction())
}

func (s conditionalSignal[T]) HasValue() bool {
	b, ok := s.active()
	return ok && b.HasValue()
}

func (s conditionalSignal[T]) Read() T {
	b, _ := s.active()
	return b.Read()
}

func (s conditionalSignal[T]) ValueID() ids.ID {
	b, ok := s.active()
	if !ok || !b.HasValue() {
		return ids.Null
	}
	branch := uint8(0)
	if s.cond.Read() {
		branch = 1
	}
	return ids.Combine(ids.NewValue(branch), b.ValueID())
}

func (s conditionalSignal[T]) ReadyToWrite() bool {
	b, ok := s.active()
	return ok && b.ReadyToWrite()
}

func (s conditionalSignal[T]) Write(v T) {
	b, _ := s.active()
	b.Write(v)
}

// Conditional returns a signal that behaves as ifTrue when cond reads
// true and as ifFalse when it reads false. It has no value (and accepts no
// writes) until cond itself has one.
func Conditional[T any](cond Signal[bool], ifTrue, ifFalse Signal[T]) Signal[T] {
	return conditionalSignal[T]{cond: cond, ifTrue: ifTrue, ifFalse: ifFalse}
}

// Number covers the built-in numeric types convertible among each other.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type castSignal[U, T Number] struct {
	wrapped Signal[T]
}

func (s castSignal[U, T]) Direction() Direction { return s.wrapped.Direction() }
func (s castSignal[U, T]) HasValue() bool       { return s.wrapped.HasValue() }
func (s castSignal[U, T]) Read() U              { return U(s.wrapped.Read()) }
func (s castSignal[U, T]) ValueID() ids.ID      { return s.wrapped.ValueID() }
func (s castSignal[U, T]) ReadyToWrite() bool   { return s.wrapped.ReadyToWrite() }
func (s castSignal[U, T]) Write(v U)            { s.wrapped.Write(T(v)) }

// Cast reinterprets a numeric signal as another numeric type. The value
// identity passes through unchanged since the underlying value is shared.
func Cast[U, T Number](s Signal[T]) Signal[U] {
	return castSignal[U, T]{wrapped: s}
}

// fakeReadableSignal claims the readable capability without ever carrying
// a value, letting a write-only signal satisfy a duplex requirement.
type fakeReadableSignal[T any] struct {
	wrapped Signal[T]
}

func (s fakeReadableSignal[T]) Direction() Direction {
	return s.wrapped.Direction().Union(Readable)
}

func (s fakeReadableSignal[T]) HasValue() bool  { return false }
func (s fakeReadableSignal[T]) ValueID() ids.ID { return ids.Null }

func (s fakeReadableSignal[T]) Read() T {
	var zero T
	return zero
}

func (s fakeReadableSignal[T]) ReadyToWrite() bool { return s.wrapped.ReadyToWrite() }
func (s fakeReadableSignal[T]) Write(v T)          { s.wrapped.Write(v) }

// FakeReadable makes s claim readability while never actually having a
// value.
func FakeReadable[T any](s Signal[T]) Signal[T] {
	return fakeReadableSignal[T]{wrapped: s}
}

// fakeWritableSignal claims the writable capability but never accepts a
// write.
type fakeWritableSignal[T any] struct {
	wrapped Signal[T]
}

func (s fakeWritableSignal[T]) Direction() Direction {
	return s.wrapped.Direction().Union(Writable)
}

func (s fakeWritableSignal[T]) HasValue() bool     { return s.wrapped.HasValue() }
func (s fakeWritableSignal[T]) Read() T            { return s.wrapped.Read() }
func (s fakeWritableSignal[T]) ValueID() ids.ID    { return s.wrapped.ValueID() }
func (s fakeWritableSignal[T]) ReadyToWrite() bool { return false }
func (s fakeWritableSignal[T]) Write(T)            {}

// FakeWritable makes s claim writability while never being ready for a
// write.
func FakeWritable[T any](s Signal[T]) Signal[T] {
	return fakeWritableSignal[T]{wrapped: s}
}

// Has returns a read-only signal reporting whether s has a value. It
// always has a value itself.
func Has[T any](s Signal[T]) Signal[bool] {
	return Lambda(nil,
		func() bool { return s.HasValue() },
		func() ids.ID { return boolID(s.HasValue()) })
}

// WriteReady returns a read-only signal reporting whether s is ready to
// be written. It always has a value itself.
func WriteReady[T any](s Signal[T]) Signal[bool] {
	return Lambda(nil,
		func() bool { return s.ReadyToWrite() },
		func() ids.ID { return boolID(s.ReadyToWrite()) })
}

// withIDSignal substitutes an externally supplied identity for the
// wrapped signal's own.
type withIDSignal[T any] struct {
	wrapped Signal[T]
	id      ids.ID
}

func (s withIDSignal[T]) Direction() Direction { return s.wrapped.Direction() }
func (s withIDSignal[T]) HasValue() bool       { return s.wrapped.HasValue() }
func (s withIDSignal[T]) Read() T              { return s.wrapped.Read() }
func (s withIDSignal[T]) ReadyToWrite() bool   { return s.wrapped.ReadyToWrite() }
func (s withIDSignal[T]) Write(v T)            { s.wrapped.Write(v) }

func (s withIDSignal[T]) ValueID() ids.ID {
	if !s.wrapped.HasValue() {
		return ids.Null
	}
	return s.id
}

// WithID replaces s's value identity with id. The caller takes over the
// freshness contract: id must change whenever the value does.
func WithID[T any](s Signal[T], id ids.ID) Signal[T] {
	return withIDSignal[T]{wrapped: s, id: id}
}

func boolID(v bool) ids.ID {
	if v {
		return ids.NewValue(uint8(1))
	}
	return ids.NewValue(uint8(0))
}
