package signals

import "github.com/weftui/weft/pkg/ids"

// lazyApply1 applies a pure function to one argument signal, computing at
// most once per signal lifetime. The identity is the argument's identity,
// so downstream caches keyed on it recompute exactly when the argument
// changes.
type lazyApply1[A, R any] struct {
	ReadOnlyBase[R]
	f    func(A) R
	arg  Signal[A]
	memo *memo[R]
}

type memo[R any] struct {
	done bool
	v    R
}

func (m *memo[R]) compute(f func() R) R {
	if !m.done {
		m.v = f()
		m.done = true
	}
	return m.v
}

func (s lazyApply1[A, R]) HasValue() bool { return s.arg.HasValue() }

func (s lazyApply1[A, R]) Read() R {
	return s.memo.compute(func() R { return s.f(s.arg.Read()) })
}

func (s lazyApply1[A, R]) ValueID() ids.ID {
	if !s.arg.HasValue() {
		return ids.Null
	}
	return s.arg.ValueID()
}

// LazyApply returns a read-only signal carrying f(arg). f must be pure: it
// is invoked at most once per signal lifetime, on the first Read, and its
// result is reused for subsequent reads.
func LazyApply[A, R any](f func(A) R, arg Signal[A]) Signal[R] {
	return lazyApply1[A, R]{f: f, arg: arg, memo: &memo[R]{}}
}

type lazyApply2[A, B, R any] struct {
	ReadOnlyBase[R]
	f    func(A, B) R
	a    Signal[A]
	b    Signal[B]
	memo *memo[R]
}

func (s lazyApply2[A, B, R]) HasValue() bool {
	return s.a.HasValue() && s.b.HasValue()
}

func (s lazyApply2[A, B, R]) Read() R {
	return s.memo.compute(func() R { return s.f(s.a.Read(), s.b.Read()) })
}

func (s lazyApply2[A, B, R]) ValueID() ids.ID {
	if !s.HasValue() {
		return ids.Null
	}
	return ids.Combine(s.a.ValueID(), s.b.ValueID())
}

// LazyApply2 is LazyApply for a two-argument function. It has a value only
// when both arguments do, and its identity combines both argument
// identities.
func LazyApply2[A, B, R any](f func(A, B) R, a Signal[A], b Signal[B]) Signal[R] {
	return lazyApply2[A, B, R]{f: f, a: a, b: b, memo: &memo[R]{}}
}
