// Package ids implements value identities: cheap, comparable tokens that
// stand in for "has this value logically changed" without requiring deep
// equality checks on the values themselves.
//
// An identity is not the value. Two reads that yield equal values but
// different identities are treated as a change everywhere in weft; the
// trade-off deliberately favors cheap identity comparison over expensive
// value comparison.
package ids

import (
	"cmp"
	"reflect"
)

// ID is the interface satisfied by all identity variants.
//
// Equals and Less are only ever invoked with an ID of the same concrete
// variant; callers must guard with Equal/Less below (which perform the
// variant check) rather than invoking the methods directly.
type ID interface {
	// Equals reports whether other carries the same identity.
	Equals(other ID) bool

	// Less reports whether this identity orders before other.
	Less(other ID) bool

	// Clone returns an owned, independent copy of the identity, safe to
	// retain beyond the lifetime of whatever produced this one.
	Clone() ID

	// Key returns a comparable value usable as a map key. Two IDs produce
	// equal keys if and only if they are equal (variant included).
	Key() any
}

// Equal compares two identities, guarding the variant contract: identities
// of different concrete variants are never equal, regardless of content.
func Equal(a, b ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return a.Equals(b)
}

// Less imposes a strict weak order across all identity variants.
// Cross-variant comparisons break ties by variant type identity.
func Less(a, b ID) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return ta.String() < tb.String()
	}
	return a.Less(b)
}

// Value is identity-by-value: it wraps an ordered, comparable value and
// uses it directly as the identity.
type Value[T cmp.Ordered] struct {
	v T
}

// NewValue creates a Value identity wrapping v.
func NewValue[T cmp.Ordered](v T) Value[T] {
	return Value[T]{v: v}
}

// Get returns the wrapped value.
func (id Value[T]) Get() T { return id.v }

func (id Value[T]) Equals(other ID) bool {
	return id.v == other.(Value[T]).v
}

func (id Value[T]) Less(other ID) bool {
	return id.v < other.(Value[T]).v
}

func (id Value[T]) Clone() ID { return id }

func (id Value[T]) Key() any { return id }

// Ref is identity-by-reference: it refers to a live value and defers
// copying it until the identity is actually cloned. It is useful when the
// identity is produced on a hot path and usually only compared, not kept.
type Ref[T cmp.Ordered] struct {
	p *T
}

// NewRef creates a Ref identity for the value at p. The identity is only
// valid while *p is; Clone it (or capture it) to keep it longer.
func NewRef[T cmp.Ordered](p *T) Ref[T] {
	return Ref[T]{p: p}
}

func (id Ref[T]) Equals(other ID) bool {
	return *id.p == *other.(Ref[T]).p
}

func (id Ref[T]) Less(other ID) bool {
	return *id.p < *other.(Ref[T]).p
}

func (id Ref[T]) Clone() ID {
	v := *id.p
	return Ref[T]{p: &v}
}

type refKey[T cmp.Ordered] struct {
	v T
}

func (id Ref[T]) Key() any { return refKey[T]{v: *id.p} }

// Pair combines two identities lexicographically.
type Pair struct {
	First  ID
	Second ID
}

// Combine folds any number of identities into nested Pairs.
// With a single argument it returns that argument unchanged.
func Combine(first ID, rest ...ID) ID {
	id := first
	for _, r := range rest {
		id = Pair{First: id, Second: r}
	}
	return id
}

func (id Pair) Equals(other ID) bool {
	o := other.(Pair)
	return Equal(id.First, o.First) && Equal(id.Second, o.Second)
}

func (id Pair) Less(other ID) bool {
	o := other.(Pair)
	if Less(id.First, o.First) {
		return true
	}
	return Equal(id.First, o.First) && Less(id.Second, o.Second)
}

func (id Pair) Clone() ID {
	return Pair{First: id.First.Clone(), Second: id.Second.Clone()}
}

type pairKey struct {
	first  any
	second any
}

func (id Pair) Key() any {
	return pairKey{first: id.First.Key(), second: id.Second.Key()}
}

// nullID identifies nothing. It is the identity reported by signals that
// cannot currently identify a value.
type nullID struct{}

func (nullID) Equals(ID) bool { return true }
func (nullID) Less(ID) bool   { return false }
func (id nullID) Clone() ID   { return id }
func (id nullID) Key() any    { return id }

// unitID identifies "the one possible thing": a value that can never
// change for the lifetime of whatever reports it.
type unitID struct{}

func (unitID) Equals(ID) bool { return true }
func (unitID) Less(ID) bool   { return false }
func (id unitID) Clone() ID   { return id }
func (id unitID) Key() any    { return id }

// Null is the distinguished identity meaning "nothing to identify".
var Null ID = nullID{}

// Unit is the distinguished identity for values that never change.
var Unit ID = unitID{}
