package weft_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftui/weft"
	"github.com/weftui/weft/pkg/signals"
)

func TestNumericRoundTrips(t *testing.T) {
	for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
		got, err := weft.FromString[int64](weft.ToString(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	for _, v := range []uint16{0, 1, math.MaxUint16} {
		got, err := weft.FromString[uint16](weft.ToString(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	for _, v := range []float64{0, -2.5, 1e300, math.SmallestNonzeroFloat64} {
		got, err := weft.FromString[float64](weft.ToString(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	for _, v := range []int8{math.MinInt8, -1, 0, math.MaxInt8} {
		got, err := weft.FromString[int8](weft.ToString(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestFromStringValidation(t *testing.T) {
	cases := []struct {
		name  string
		parse func() error
	}{
		{"malformed int", func() error { _, err := weft.FromString[int]("12x"); return err }},
		{"empty", func() error { _, err := weft.FromString[int](""); return err }},
		{"out of range int8", func() error { _, err := weft.FromString[int8]("200"); return err }},
		{"negative uint", func() error { _, err := weft.FromString[uint32]("-5"); return err }},
		{"malformed float", func() error { _, err := weft.FromString[float64]("1..2"); return err }},
		{"float overflow", func() error { _, err := weft.FromString[float32]("1e300"); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.parse()
			require.Error(t, err)
			var verr *weft.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestAsText(t *testing.T) {
	value := 5
	var text signals.Signal[string]
	sys := weft.New(func(ctx weft.Context) {
		text = weft.AsText(ctx, signals.Direct(&value))
	})

	sys.Refresh()
	require.True(t, text.HasValue())
	assert.Equal(t, "5", text.Read())

	// Valid input reaches the value.
	text.Write("42")
	assert.Equal(t, 42, value)

	// Invalid input is retained as text and never reaches the value.
	text.Write("4x")
	assert.Equal(t, 42, value)
	assert.Equal(t, "4x", text.Read())
	sys.Refresh()
	assert.Equal(t, "4x", text.Read(), "unparseable edits survive refreshes")

	// An underlying change regenerates the rendering.
	value = 7
	sys.Refresh()
	assert.Equal(t, "7", text.Read())
}
