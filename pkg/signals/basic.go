package signals

import (
	"cmp"

	"github.com/weftui/weft/pkg/ids"
)

// valueSignal carries a value fixed for the signal's lifetime, so its
// identity is the content-independent Unit sentinel.
type valueSignal[T any] struct {
	ReadOnlyBase[T]
	v T
}

func (s valueSignal[T]) HasValue() bool  { return true }
func (s valueSignal[T]) Read() T         { return s.v }
func (s valueSignal[T]) ValueID() ids.ID { return ids.Unit }

// Value returns a read-only signal carrying v. The value is treated as
// constant for the signal's lifetime; use Direct for values that change.
func Value[T any](v T) Signal[T] {
	return valueSignal[T]{v: v}
}

// directSignal exposes a live variable. The referenced value serves as its
// own identity, so T must be cheap to snapshot and compare.
type directSignal[T cmp.Ordered] struct {
	p *T
}

func (s directSignal[T]) Direction() Direction { return Duplex }
func (s directSignal[T]) HasValue() bool       { return true }
func (s directSignal[T]) Read() T              { return *s.p }
func (s directSignal[T]) ValueID() ids.ID      { return ids.NewRef(s.p) }
func (s directSignal[T]) ReadyToWrite() bool   { return true }
func (s directSignal[T]) Write(v T)            { *s.p = v }

// Direct returns a duplex signal bound to the variable at p.
func Direct[T cmp.Ordered](p *T) Signal[T] {
	return directSignal[T]{p: p}
}

type directReadSignal[T cmp.Ordered] struct {
	ReadOnlyBase[T]
	p *T
}

func (s directReadSignal[T]) HasValue() bool  { return true }
func (s directReadSignal[T]) Read() T         { return *s.p }
func (s directReadSignal[T]) ValueID() ids.ID { return ids.NewRef(s.p) }

// DirectRead is Direct without the write half.
func DirectRead[T cmp.Ordered](p *T) Signal[T] {
	return directReadSignal[T]{p: p}
}

type emptySignal[T any] struct {
	ReadOnlyBase[T]
}

func (emptySignal[T]) HasValue() bool  { return false }
func (emptySignal[T]) ValueID() ids.ID { return ids.Null }

func (emptySignal[T]) Read() T {
	var zero T
	return zero
}

// Empty returns a signal that never has a value and is never writable.
func Empty[T any]() Signal[T] {
	return emptySignal[T]{}
}

// lambdaSignal assembles a signal from closures. Nil closures default to
// the inert behavior for their half.
type lambdaSignal[T any] struct {
	hasValue     func() bool
	read         func() T
	valueID      func() ids.ID
	readyToWrite func() bool
	write        func(T)
}

func (s *lambdaSignal[T]) Direction() Direction {
	var d Direction
	if s.read != nil {
		d |= Readable
	}
	if s.write != nil {
		d |= Writable
	}
	return d
}

func (s *lambdaSignal[T]) HasValue() bool {
	if s.read == nil {
		return false
	}
	if s.hasValue == nil {
		return true
	}
	return s.hasValue()
}

func (s *lambdaSignal[T]) Read() T {
	return s.read()
}

func (s *lambdaSignal[T]) ValueID() ids.ID {
	if !s.HasValue() {
		return ids.Null
	}
	if s.valueID == nil {
		return ids.Unit
	}
	return s.valueID()
}

func (s *lambdaSignal[T]) ReadyToWrite() bool {
	if s.write == nil {
		return false
	}
	if s.readyToWrite == nil {
		return true
	}
	return s.readyToWrite()
}

func (s *lambdaSignal[T]) Write(v T) {
	s.write(v)
}

// Lambda returns a read-only signal assembled from closures. hasValue may
// be nil for an always-available signal; valueID may be nil when the value
// never changes for the signal's lifetime.
func Lambda[T any](hasValue func() bool, read func() T, valueID func() ids.ID) Signal[T] {
	return &lambdaSignal[T]{hasValue: hasValue, read: read, valueID: valueID}
}

// LambdaDuplex is Lambda plus a write half. readyToWrite may be nil for an
// always-writable signal.
func LambdaDuplex[T any](
	hasValue func() bool,
	read func() T,
	valueID func() ids.ID,
	readyToWrite func() bool,
	write func(T),
) Signal[T] {
	return &lambdaSignal[T]{
		hasValue:     hasValue,
		read:         read,
		valueID:      valueID,
		readyToWrite: readyToWrite,
		write:        write,
	}
}
