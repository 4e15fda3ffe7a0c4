package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftui/weft"
	"github.com/weftui/weft/pkg/ids"
)

type pokeEvent struct{}

func TestMetricsObservePasses(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	items := []string{"a", "b", "c"}
	sys := weft.New(func(ctx weft.Context) {
		weft.ForEach(ctx, items, func(_ int, item string) ids.ID {
			return ids.NewValue(item)
		}, func(ctx weft.Context, _ int, _ string) {
			weft.GetData[int](ctx)
		})
	}, weft.WithHooks(m.Hooks()))

	sys.Refresh()
	sys.DispatchEvent(pokeEvent{})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.passes.WithLabelValues("weft.RefreshEvent", "refresh")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.passes.WithLabelValues("observability.pokeEvent", "global")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.namedBlocks))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.collected))

	items = []string{"a"}
	sys.Refresh()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.namedBlocks))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.collected))

	// Everything made it into the registry.
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}
