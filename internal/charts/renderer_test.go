package charts_test

import (
	"testing"

	"github.com/expertbi/expertbi-api/internal/charts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionData() charts.ChartData {
	return charts.ChartData{
		Labels: []string{"east", "west"},
		Datasets: []charts.ChartDataset{
			{Label: "amount", Data: []float64{100, 200}},
		},
	}
}

func TestRender_KindDispatch(t *testing.T) {
	tests := []struct {
		name  string
		kind  charts.ChartKind
		check func(t *testing.T, spec charts.RenderSpec)
	}{
		{
			name: "bar",
			kind: charts.KindBar,
			check: func(t *testing.T, spec charts.RenderSpec) {
				require.NotNil(t, spec.Cartesian)
				require.Len(t, spec.Cartesian.Series, 1)
				assert.Equal(t, []string{"east", "west"}, spec.Cartesian.Labels)
				assert.Equal(t, []float64{100, 200}, spec.Cartesian.Series[0].Data)
				assert.False(t, spec.Cartesian.Series[0].Fill)
				assert.Empty(t, spec.Cartesian.Series[0].Points)
			},
		},
		{
			name: "line",
			kind: charts.KindLine,
			check: func(t *testing.T, spec charts.RenderSpec) {
				require.NotNil(t, spec.Cartesian)
				assert.False(t, spec.Cartesian.Series[0].Fill)
			},
		},
		{
			name: "area fills its series",
			kind: charts.KindArea,
			check: func(t *testing.T, spec charts.RenderSpec) {
				require.NotNil(t, spec.Cartesian)
				assert.True(t, spec.Cartesian.Series[0].Fill)
			},
		},
		{
			name: "scatter pairs points",
			kind: charts.KindScatter,
			check: func(t *testing.T, spec charts.RenderSpec) {
				require.NotNil(t, spec.Cartesian)
				// Non-numeric labels fall back to axis indexes for x.
				assert.Equal(t, []charts.Point{{X: 0, Y: 100}, {X: 1, Y: 200}}, spec.Cartesian.Series[0].Points)
			},
		},
		{
			name: "pie",
			kind: charts.KindPie,
			check: func(t *testing.T, spec charts.RenderSpec) {
				require.NotNil(t, spec.Radial)
				require.Len(t, spec.Radial.Slices, 2)
				assert.Equal(t, "east", spec.Radial.Slices[0].Label)
				assert.Equal(t, 100.0, spec.Radial.Slices[0].Value)
				assert.Zero(t, spec.Radial.Cutout)
			},
		},
		{
			name: "donut cuts out the center",
			kind: charts.KindDonut,
			check: func(t *testing.T, spec charts.RenderSpec) {
				require.NotNil(t, spec.Radial)
				assert.Equal(t, 0.5, spec.Radial.Cutout)
			},
		},
		{
			name: "table",
			kind: charts.KindTable,
			check: func(t *testing.T, spec charts.RenderSpec) {
				require.NotNil(t, spec.Table)
				assert.Equal(t, []string{"region", "amount"}, spec.Table.Columns)
				assert.Equal(t, [][]string{{"east", "100"}, {"west", "200"}}, spec.Table.Rows)
			},
		},
		{
			name: "metric reduces to one value",
			kind: charts.KindMetric,
			check: func(t *testing.T, spec charts.RenderSpec) {
				require.NotNil(t, spec.Metric)
				assert.Equal(t, "amount", spec.Metric.Label)
				assert.Equal(t, 300.0, spec.Metric.Value)
			},
		},
	}

	config := charts.ChartConfig{
		XAxis:       "region",
		YAxis:       "amount",
		Aggregation: charts.AggSum,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := charts.Render(tt.kind, regionData(), config)
			assert.Equal(t, string(tt.kind), spec.Kind)
			assert.Empty(t, spec.Fallback)

			payloads := 0
			for _, set := range []bool{
				spec.Cartesian != nil, spec.Radial != nil, spec.Table != nil, spec.Metric != nil,
			} {
				if set {
					payloads++
				}
			}
			assert.Equal(t, 1, payloads)

			tt.check(t, spec)
		})
	}
}

func TestRender_UnknownKindFallsBack(t *testing.T) {
	spec := charts.Render(charts.ChartKind("hexbin"), regionData(), charts.ChartConfig{})

	assert.Equal(t, "unsupported", spec.Kind)
	assert.Equal(t, "Unsupported chart type: hexbin", spec.Fallback)
	assert.Nil(t, spec.Cartesian)
	assert.Nil(t, spec.Radial)
	assert.Nil(t, spec.Table)
	assert.Nil(t, spec.Metric)
}

func TestRender_EmptyDataDoesNotPanic(t *testing.T) {
	for _, kind := range charts.SupportedKinds {
		spec := charts.Render(kind, charts.ChartData{}, charts.ChartConfig{})
		assert.Equal(t, string(kind), spec.Kind)
	}
}

func TestRender_Idempotent(t *testing.T) {
	config := charts.ChartConfig{
		XAxis:       "region",
		YAxis:       "amount",
		Aggregation: charts.AggSum,
		ColorScheme: "warm",
	}

	for _, kind := range charts.SupportedKinds {
		first := charts.Render(kind, regionData(), config)
		second := charts.Render(kind, regionData(), config)
		assert.Equal(t, first, second, "kind %s", kind)
	}
}

func TestRenderWidget_CarriesTitle(t *testing.T) {
	widget := charts.ChartWidget{
		ID:    "w1",
		Type:  charts.KindBar,
		Title: "Revenue by region",
	}

	spec := charts.RenderWidget(widget, regionData())
	assert.Equal(t, "Revenue by region", spec.Title)

	spec = charts.RenderWidget(charts.ChartWidget{ID: "w2", Type: charts.KindBar}, regionData())
	assert.Empty(t, spec.Title)
}

func TestResolveStyle_Defaults(t *testing.T) {
	style := charts.ResolveStyle(charts.ChartConfig{})

	assert.Equal(t, charts.ResolvedStyle{
		Height:      400,
		ShowGrid:    true,
		ShowLegend:  true,
		ShowValues:  false,
		Animated:    true,
		ColorScheme: "default",
	}, style)
}

func TestResolveStyle_ExplicitFalseBeatsDefault(t *testing.T) {
	height := 250
	off := false
	on := true

	style := charts.ResolveStyle(charts.ChartConfig{
		Height:      &height,
		ShowGrid:    &off,
		ShowLegend:  &off,
		ShowValues:  &on,
		Animated:    &off,
		ColorScheme: "mono",
	})

	assert.Equal(t, charts.ResolvedStyle{
		Height:      250,
		ShowGrid:    false,
		ShowLegend:  false,
		ShowValues:  true,
		Animated:    false,
		ColorScheme: "mono",
	}, style)
}

func TestSchemeColor_CyclesAndFallsBack(t *testing.T) {
	// Series beyond the palette wrap around.
	assert.Equal(t, charts.SchemeColor("default", 0), charts.SchemeColor("default", 8))
	// Unknown schemes use the default palette.
	assert.Equal(t, charts.SchemeColor("default", 0), charts.SchemeColor("no-such-scheme", 0))
}
