package weft

import (
	"log/slog"

	"github.com/weftui/weft/pkg/graph"
	"github.com/weftui/weft/pkg/routing"
)

// Context is the bundle handed to the controller on every pass. It is a
// small value meant to be passed around by copy; all the interesting state
// lives behind its pointers.
//
// Bindings can extend a context with their own components (a layout
// traversal, a render target) via WithComponent without the core knowing
// about them. Narrowing a context back costs nothing but the copy.
type Context struct {
	sys    *System
	data   *graph.Traversal
	events *routing.EventTraversal
	comps  *component
}

// component is one link of the context's extension list. Lookup walks the
// list, so narrow contexts share storage with the wider ones they came
// from.
type component struct {
	parent *component
	value  any
}

// System returns the system driving this pass.
func (ctx Context) System() *System { return ctx.sys }

// Data returns the current data traversal.
func (ctx Context) Data() *graph.Traversal { return ctx.data }

// Events returns the current event traversal.
func (ctx Context) Events() *routing.EventTraversal { return ctx.events }

// Logger returns the system's logger.
func (ctx Context) Logger() *slog.Logger { return ctx.sys.log }

// WithComponent returns a context extended with v. The component is found
// by its type; adding a second component of the same type shadows the
// first for the returned context and anything derived from it.
func WithComponent[T any](ctx Context, v T) Context {
	ctx.comps = &component{parent: ctx.comps, value: v}
	return ctx
}

// GetComponent returns the innermost component of type T carried by ctx.
func GetComponent[T any](ctx Context) (T, bool) {
	for c := ctx.comps; c != nil; c = c.parent {
		if v, ok := c.value.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// MustComponent is GetComponent for components the caller knows are
// present; it panics when the component is missing, which indicates that
// a binding forgot to install it before invoking the controller.
func MustComponent[T any](ctx Context) T {
	v, ok := GetComponent[T](ctx)
	if !ok {
		panic("weft: context is missing a required component")
	}
	return v
}
