package weft

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/weftui/weft/pkg/graph"
	"github.com/weftui/weft/pkg/ids"
	"github.com/weftui/weft/pkg/signals"
)

// ValidationError reports malformed or out-of-range textual input. It is
// meant to be caught by binding code close to the point of user input and
// turned into user-visible feedback, not handled by the core.
type ValidationError struct {
	Input string
	Type  string
	cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("weft: invalid %s value %q", e.Type, e.Input)
}

func (e *ValidationError) Unwrap() error { return e.cause }

// ToString formats a numeric value in the canonical form FromString
// accepts, so that the two round-trip.
func ToString[T signals.Number](v T) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	default:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())
	}
}

// FromString parses a numeric value. Malformed input and values outside
// T's range both return a *ValidationError.
func FromString[T signals.Number](s string) (T, error) {
	var v T
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return v, &ValidationError{Input: s, Type: rv.Type().String(), cause: err}
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return v, &ValidationError{Input: s, Type: rv.Type().String(), cause: err}
		}
		rv.SetUint(n)
	default:
		n, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return v, &ValidationError{Input: s, Type: rv.Type().String(), cause: err}
		}
		rv.SetFloat(n)
	}
	return v, nil
}

// textData persists the textual rendering of a value between passes, so
// that in-progress (possibly unparseable) edits survive refreshes.
type textData struct {
	inputID ids.Captured
	text    string
}

// AsText adapts a numeric signal to a duplex text signal. Reads render
// the value; the rendering is regenerated only when the underlying
// identity changes, so text the user has typed stays put until the value
// actually moves. Writes parse the text and forward valid values to the
// underlying signal; text that fails validation is retained as-is and
// simply never reaches the value.
func AsText[T signals.Number](ctx Context, wrapped signals.Signal[T]) signals.Signal[string] {
	d, _ := graph.Get[textData](ctx.data)
	if wrapped.HasValue() {
		if id := wrapped.ValueID(); !d.inputID.Matches(id) {
			d.inputID.Capture(id)
			d.text = ToString(wrapped.Read())
		}
	}
	return signals.LambdaDuplex(
		wrapped.HasValue,
		func() string { return d.text },
		func() ids.ID { return ids.NewValue(d.text) },
		wrapped.ReadyToWrite,
		func(s string) {
			d.text = s
			if v, err := FromString[T](s); err == nil {
				wrapped.Write(v)
			}
			// Re-capture so the next refresh does not clobber the text
			// the user just produced.
			d.inputID.Capture(wrapped.ValueID())
		})
}
