// Package actions models side effects as first-class values: an action
// knows whether it can currently run and, separately, how to run. UI-ish
// code composes actions declaratively during a pass and only performs them
// in response to events, so readiness can gate interactivity without
// executing anything.
package actions

import "github.com/weftui/weft/pkg/signals"

// Action is a performable side effect.
type Action interface {
	// IsReady reports whether Perform may be called right now.
	IsReady() bool

	// Perform runs the effect. intermediary is invoked after the
	// action's inputs are read but before its outputs are written, so a
	// caller can interleave bookkeeping between the two phases of a
	// composed action.
	Perform(intermediary func())
}

// Action1 is an action parameterized by a value supplied at perform time.
type Action1[T any] interface {
	IsReady() bool
	Perform(intermediary func(), value T)
}

// IsReady reports whether a is non-nil and ready.
func IsReady(a Action) bool {
	return a != nil && a.IsReady()
}

// Perform runs a if it is ready, reporting whether it ran.
func Perform(a Action) bool {
	if !IsReady(a) {
		return false
	}
	a.Perform(func() {})
	return true
}

// Perform1 runs a with value if it is ready, reporting whether it ran.
func Perform1[T any](a Action1[T], value T) bool {
	if a == nil || !a.IsReady() {
		return false
	}
	a.Perform(func() {}, value)
	return true
}

type funcAction struct {
	ready func() bool
	run   func()
}

func (a funcAction) IsReady() bool {
	return a.ready == nil || a.ready()
}

func (a funcAction) Perform(intermediary func()) {
	intermediary()
	a.run()
}

// Do wraps a plain function as an always-ready action.
func Do(run func()) Action {
	return funcAction{run: run}
}

// DoIf wraps a function as an action gated by ready.
func DoIf(ready func() bool, run func()) Action {
	return funcAction{ready: ready, run: run}
}

type seqAction struct {
	first, second Action
}

func (a seqAction) IsReady() bool {
	return a.first.IsReady() && a.second.IsReady()
}

func (a seqAction) Perform(intermediary func()) {
	// The first action's inputs are all read before the second's
	// outputs are written, so a sequence like (save, clear) acting on
	// overlapping state observes the pre-sequence values.
	a.first.Perform(func() {
		a.second.Perform(intermediary)
	})
}

// Seq composes actions left to right. The sequence is ready only when
// every action is, and every action's read phase completes before any
// write phase runs.
func Seq(first Action, rest ...Action) Action {
	a := first
	for _, r := range rest {
		a = seqAction{first: a, second: r}
	}
	return a
}

type boundAction[T any] struct {
	wrapped Action1[T]
	value   signals.Signal[T]
}

func (a boundAction[T]) IsReady() bool {
	return a.wrapped.IsReady() && a.value.HasValue()
}

func (a boundAction[T]) Perform(intermediary func()) {
	a.wrapped.Perform(intermediary, a.value.Read())
}

// Bind fixes a parameterized action's value to a signal, producing a plain
// action that is ready only when both the action and the signal are.
func Bind[T any](a Action1[T], value signals.Signal[T]) Action {
	return boundAction[T]{wrapped: a, value: value}
}

type pushAction[T any] struct {
	to signals.Signal[T]
}

func (a pushAction[T]) IsReady() bool {
	return a.to.ReadyToWrite()
}

func (a pushAction[T]) Perform(intermediary func(), value T) {
	intermediary()
	a.to.Write(value)
}

// Push returns a parameterized action writing its value to a signal.
func Push[T any](to signals.Signal[T]) Action1[T] {
	return pushAction[T]{to: to}
}

type copyAction[T any] struct {
	to   signals.Signal[T]
	from signals.Signal[T]
}

func (a copyAction[T]) IsReady() bool {
	return a.from.HasValue() && a.to.ReadyToWrite()
}

func (a copyAction[T]) Perform(intermediary func()) {
	v := a.from.Read()
	intermediary()
	a.to.Write(v)
}

// Copy returns an action copying from's value into to. The read happens
// before the intermediary, the write after, so sequenced copies over
// overlapping signals see consistent snapshots.
func Copy[T any](to, from signals.Signal[T]) Action {
	return copyAction[T]{to: to, from: from}
}

// Assign returns an action writing a fixed value to a signal.
func Assign[T any](to signals.Signal[T], value T) Action {
	return Copy(to, signals.Value(value))
}

type toggleAction struct {
	flag signals.Signal[bool]
}

func (a toggleAction) IsReady() bool {
	return a.flag.HasValue() && a.flag.ReadyToWrite()
}

func (a toggleAction) Perform(intermediary func()) {
	v := a.flag.Read()
	intermediary()
	a.flag.Write(!v)
}

// Toggle returns an action inverting a boolean signal.
func Toggle(flag signals.Signal[bool]) Action {
	return toggleAction{flag: flag}
}

type appendAction[T any] struct {
	list signals.Signal[[]T]
	item signals.Signal[T]
}

func (a appendAction[T]) IsReady() bool {
	return a.list.HasValue() && a.list.ReadyToWrite() && a.item.HasValue()
}

func (a appendAction[T]) Perform(intermediary func()) {
	list := a.list.Read()
	item := a.item.Read()
	intermediary()
	a.list.Write(append(list[:len(list):len(list)], item))
}

// Append returns an action appending item's value to a slice signal.
func Append[T any](list signals.Signal[[]T], item signals.Signal[T]) Action {
	return appendAction[T]{list: list, item: item}
}
