package signals

import "github.com/weftui/weft/pkg/ids"

// andSignal short-circuits: one operand reading false decides the result
// even while the other operand has no value yet.
type andSignal struct {
	ReadOnlyBase[bool]
	a, b Signal[bool]
}

func (s andSignal) HasValue() bool {
	if s.a.HasValue() && !s.a.Read() {
		return true
	}
	if s.b.HasValue() && !s.b.Read() {
		return true
	}
	return s.a.HasValue() && s.b.HasValue()
}

func (s andSignal) Read() bool {
	if s.a.HasValue() && !s.a.Read() {
		return false
	}
	if s.b.HasValue() && !s.b.Read() {
		return false
	}
	return s.a.Read() && s.b.Read()
}

func (s andSignal) ValueID() ids.ID {
	if !s.HasValue() {
		return ids.Null
	}
	return boolID(s.Read())
}

// And returns the logical conjunction of two boolean signals with partial
// evaluation: it has a value as soon as either operand reads false.
func And(a, b Signal[bool]) Signal[bool] {
	return andSignal{a: a, b: b}
}

type orSignal struct {
	ReadOnlyBase[bool]
	a, b Signal[bool]
}

func (s orSignal) HasValue() bool {
	if s.a.HasValue() && s.a.Read() {
		return true
	}
	if s.b.HasValue() && s.b.Read() {
		return true
	}
	return s.a.HasValue() && s.b.HasValue()
}

func (s orSignal) Read() bool {
	if s.a.HasValue() && s.a.Read() {
		return true
	}
	if s.b.HasValue() && s.b.Read() {
		return true
	}
	return s.a.Read() || s.b.Read()
}

func (s orSignal) ValueID() ids.ID {
	if !s.HasValue() {
		return ids.Null
	}
	return boolID(s.Read())
}

// Or returns the logical disjunction of two boolean signals with partial
// evaluation: it has a value as soon as either operand reads true.
func Or(a, b Signal[bool]) Signal[bool] {
	return orSignal{a: a, b: b}
}

type notSignal struct {
	ReadOnlyBase[bool]
	a Signal[bool]
}

func (s notSignal) HasValue() bool { return s.a.HasValue() }
func (s notSignal) Read() bool     { return !s.a.Read() }

func (s notSignal) ValueID() ids.ID {
	if !s.a.HasValue() {
		return ids.Null
	}
	return boolID(s.Read())
}

// Not returns the logical negation of a boolean signal.
func Not(a Signal[bool]) Signal[bool] {
	return notSignal{a: a}
}
