package graph

import "github.com/weftui/weft/pkg/ids"

// KeyedData is a cached value tied to the identity of its inputs. The
// value is only considered valid while the stored key matches the identity
// it was refreshed against, so a change in inputs invalidates it without
// anyone having to notice the change explicitly.
type KeyedData[T any] struct {
	key   ids.Captured
	valid bool
	v     T
}

// Refresh compares the stored key against id and invalidates the value on
// a mismatch, capturing id as the new key. Call it once per pass before
// consulting Valid.
func (k *KeyedData[T]) Refresh(id ids.ID) {
	if k.key.Matches(id) {
		return
	}
	k.invalidate()
	k.key.Capture(id)
}

// Valid reports whether the value is current for the refreshed key.
func (k *KeyedData[T]) Valid() bool { return k.valid }

// Get returns the held value. Only meaningful when Valid.
func (k *KeyedData[T]) Get() T { return k.v }

// Set stores v as the value for the current key.
func (k *KeyedData[T]) Set(v T) {
	k.v = v
	k.valid = true
}

// Key returns the identity the value was last refreshed against, or nil.
func (k *KeyedData[T]) Key() ids.ID { return k.key.Get() }

func (k *KeyedData[T]) invalidate() {
	var zero T
	k.v = zero
	k.valid = false
}

func (k *KeyedData[T]) clearCache() {
	k.invalidate()
	k.key.Clear()
}

// keyedSlot anchors a KeyedData in the graph as cached data.
type keyedSlot[T any] struct {
	kd KeyedData[T]
}

func (s *keyedSlot[T]) clearCache() { s.kd.clearCache() }

// GetKeyed returns the keyed data at the traversal's current position,
// already refreshed against key.
func GetKeyed[T any](t *Traversal, key ids.ID) *KeyedData[T] {
	s, _ := get(t, func() *keyedSlot[T] { return &keyedSlot[T]{} })
	s.kd.Refresh(key)
	return &s.kd
}
