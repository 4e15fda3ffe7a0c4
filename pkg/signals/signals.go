// Package signals implements transient read/write views over values paired
// with a change identity. A signal is cheap to construct and is expected to
// be rebuilt on every pass; what persists is the identity it reports, which
// is the sole freshness oracle used by every cache and memoization point
// downstream. Two reads that yield equal values under different identities
// count as a change.
package signals

import (
	"github.com/weftui/weft/pkg/ids"
)

// Direction describes a signal's capabilities as a bitmask.
type Direction uint8

const (
	// Readable signals support HasValue/Read/ValueID.
	Readable Direction = 1 << iota
	// Writable signals support ReadyToWrite/Write.
	Writable

	// Duplex signals support both halves. A duplex signal is usable
	// anywhere a readable or writable one is expected.
	Duplex = Readable | Writable
)

// CanRead reports whether the direction includes the readable half.
func (d Direction) CanRead() bool { return d&Readable != 0 }

// CanWrite reports whether the direction includes the writable half.
func (d Direction) CanWrite() bool { return d&Writable != 0 }

// Intersect returns the capabilities common to both directions.
func (d Direction) Intersect(o Direction) Direction { return d & o }

// Union returns the combined capabilities of both directions.
func (d Direction) Union(o Direction) Direction { return d | o }

func (d Direction) String() string {
	switch d {
	case Readable:
		return "read-only"
	case Writable:
		return "write-only"
	case Duplex:
		return "duplex"
	default:
		return "inert"
	}
}

// Untyped is the value-independent facet shared by all signals. Code that
// only cares about availability and freshness can accept signals of any
// value type through it.
type Untyped interface {
	Direction() Direction

	// HasValue reports whether the signal currently carries a value. It
	// must be side-effect free and stable within a single pass.
	HasValue() bool

	// ValueID returns the identity of the current value, or ids.Null when
	// the signal has none. The identity changes if and only if the
	// semantic value changes.
	ValueID() ids.ID

	// ReadyToWrite reports whether Write may be called.
	ReadyToWrite() bool
}

// Signal is a view over a value of type T.
//
// Read is only well-defined when HasValue reports true, and Write only
// when ReadyToWrite does; calling either otherwise is a contract violation
// on the caller's part. The Read and Write helpers below enforce the gates
// for call sites that do not want to check explicitly.
type Signal[T any] interface {
	Untyped
	Read() T
	Write(v T)
}

// ReadOnlyBase supplies the inert write half of a read-only signal.
// Embed it and implement the read half.
type ReadOnlyBase[T any] struct{}

func (ReadOnlyBase[T]) Direction() Direction { return Readable }
func (ReadOnlyBase[T]) ReadyToWrite() bool   { return false }
func (ReadOnlyBase[T]) Write(T)              {}

// WriteOnlyBase supplies the inert read half of a write-only signal.
// Embed it and implement the write half.
type WriteOnlyBase[T any] struct{}

func (WriteOnlyBase[T]) Direction() Direction { return Writable }
func (WriteOnlyBase[T]) HasValue() bool       { return false }
func (WriteOnlyBase[T]) ValueID() ids.ID      { return ids.Null }

func (WriteOnlyBase[T]) Read() T {
	var zero T
	return zero
}

// HasValue reports whether s is non-nil and currently carries a value.
func HasValue[T any](s Signal[T]) bool {
	return s != nil && s.HasValue()
}

// Read returns s's value, panicking if it has none. Use ReadOr or check
// HasValue first when absence is an expected state.
func Read[T any](s Signal[T]) T {
	if !HasValue(s) {
		panic("signals: read of a signal with no value")
	}
	return s.Read()
}

// ReadOr returns s's value, or def when s has none.
func ReadOr[T any](s Signal[T], def T) T {
	if !HasValue(s) {
		return def
	}
	return s.Read()
}

// Write writes v to s if s is ready, reporting whether the write happened.
// Writing to an unready signal is a no-op by contract, not an error.
func Write[T any](s Signal[T], v T) bool {
	if s == nil || !s.ReadyToWrite() {
		return false
	}
	s.Write(v)
	return true
}

// AllHaveValues reports whether every given signal carries a value.
func AllHaveValues(sigs ...Untyped) bool {
	for _, s := range sigs {
		if s == nil || !s.HasValue() {
			return false
		}
	}
	return true
}

// CombinedID folds the value identities of the given signals into one,
// returning ids.Null if any signal lacks a value.
func CombinedID(sigs ...Untyped) ids.ID {
	if len(sigs) == 0 {
		return ids.Unit
	}
	if !AllHaveValues(sigs...) {
		return ids.Null
	}
	id := sigs[0].ValueID()
	for _, s := range sigs[1:] {
		id = ids.Combine(id, s.ValueID())
	}
	return id
}
