package signals

import (
	"cmp"
	"maps"
	"slices"

	"github.com/weftui/weft/pkg/ids"
)

// fieldSignal projects one field out of a struct-valued signal. Writes
// read the whole struct, modify the field, and write the struct back.
type fieldSignal[S, F any] struct {
	base Signal[S]
	name string
	get  func(*S) *F
}

func (s fieldSignal[S, F]) Direction() Direction { return s.base.Direction() }
func (s fieldSignal[S, F]) HasValue() bool       { return s.base.HasValue() }

func (s fieldSignal[S, F]) Read() F {
	v := s.base.Read()
	return *s.get(&v)
}

func (s fieldSignal[S, F]) ValueID() ids.ID {
	if !s.base.HasValue() {
		return ids.Null
	}
	return ids.Combine(ids.NewValue(s.name), s.base.ValueID())
}

func (s fieldSignal[S, F]) ReadyToWrite() bool {
	return s.base.HasValue() && s.base.ReadyToWrite()
}

func (s fieldSignal[S, F]) Write(v F) {
	whole := s.base.Read()
	*s.get(&whole) = v
	s.base.Write(whole)
}

// Field projects a field out of a struct signal. name distinguishes the
// field in the derived identity; get locates the field within the struct.
// Writing through the projection rewrites the whole struct.
func Field[S, F any](base Signal[S], name string, get func(*S) *F) Signal[F] {
	return fieldSignal[S, F]{base: base, name: name, get: get}
}

// indexSignal subscripts a slice-valued signal.
type indexSignal[T any] struct {
	base  Signal[[]T]
	index int
}

func (s indexSignal[T]) Direction() Direction { return s.base.Direction() }

func (s indexSignal[T]) HasValue() bool {
	return s.base.HasValue() && s.index < len(s.base.Read())
}

func (s indexSignal[T]) Read() T {
	return s.base.Read()[s.index]
}

func (s indexSignal[T]) ValueID() ids.ID {
	if !s.HasValue() {
		return ids.Null
	}
	return ids.Combine(ids.NewValue(s.index), s.base.ValueID())
}

func (s indexSignal[T]) ReadyToWrite() bool {
	return s.HasValue() && s.base.ReadyToWrite()
}

func (s indexSignal[T]) Write(v T) {
	// Copy-modify-write keeps the base's value semantics intact.
	sl := slices.Clone(s.base.Read())
	sl[s.index] = v
	s.base.Write(sl)
}

// Index subscripts a slice signal at a fixed position. The derived signal
// has a value only while the index is in range.
func Index[T any](base Signal[[]T], index int) Signal[T] {
	return indexSignal[T]{base: base, index: index}
}

// keySignal subscripts a map-valued signal.
type keySignal[K cmp.Ordered, V any] struct {
	base Signal[map[K]V]
	key  K
}

func (s keySignal[K, V]) Direction() Direction { return s.base.Direction() }

func (s keySignal[K, V]) HasValue() bool {
	if !s.base.HasValue() {
		return false
	}
	_, ok := s.base.Read()[s.key]
	return ok
}

func (s keySignal[K, V]) Read() V {
	return s.base.Read()[s.key]
}

func (s keySignal[K, V]) ValueID() ids.ID {
	if !s.HasValue() {
		return ids.Null
	}
	return ids.Combine(ids.NewValue(s.key), s.base.ValueID())
}

func (s keySignal[K, V]) ReadyToWrite() bool {
	return s.base.HasValue() && s.base.ReadyToWrite()
}

func (s keySignal[K, V]) Write(v V) {
	m := maps.Clone(s.base.Read())
	if m == nil {
		m = make(map[K]V, 1)
	}
	m[s.key] = v
	s.base.Write(m)
}

// Key subscripts a map signal at a fixed key. The derived signal has a
// value only while the key is present; writing inserts the key.
func Key[K cmp.Ordered, V any](base Signal[map[K]V], key K) Signal[V] {
	return keySignal[K, V]{base: base, key: key}
}
