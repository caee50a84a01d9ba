package charts

import (
	"fmt"
	"strconv"
)

// RenderSpec is the chart-library-agnostic description of a drawn chart.
// Exactly one of the payload fields is set for supported kinds; Fallback
// carries the visible placeholder text for unrecognized kinds.
type RenderSpec struct {
	Kind      string         `json:"kind"`
	Title     string         `json:"title,omitempty"`
	Style     ResolvedStyle  `json:"style"`
	Cartesian *CartesianSpec `json:"cartesian,omitempty"`
	Radial    *RadialSpec    `json:"radial,omitempty"`
	Table     *TableSpec     `json:"table,omitempty"`
	Metric    *MetricSpec    `json:"metric,omitempty"`
	Fallback  string         `json:"fallback,omitempty"`
}

// CartesianSpec drives bar, line, area and scatter charts.
type CartesianSpec struct {
	Labels []string          `json:"labels"`
	Series []CartesianSeries `json:"series"`
}

// CartesianSeries is one drawable series.
type CartesianSeries struct {
	Label  string    `json:"label"`
	Data   []float64 `json:"data"`
	Color  string    `json:"color"`
	Fill   bool      `json:"fill,omitempty"`
	Points []Point   `json:"points,omitempty"`
}

// Point is a scatter coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RadialSpec drives pie and donut charts.
type RadialSpec struct {
	Slices []RadialSlice `json:"slices"`
	Cutout float64       `json:"cutout,omitempty"`
}

// RadialSlice is one pie segment.
type RadialSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// TableSpec drives the table widget: a header row plus row-major cells.
type TableSpec struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// MetricSpec drives the single-value KPI widget.
type MetricSpec struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// donutCutout is the hole ratio distinguishing donut from pie.
const donutCutout = 0.5

// RenderWidget renders a widget's generated data, carrying its title.
func RenderWidget(widget ChartWidget, data ChartData) RenderSpec {
	spec := Render(widget.Type, data, widget.Config)
	if widget.Title != "" {
		spec.Title = widget.Title
	}
	return spec
}

// Render maps a (kind, data, config) triple to a concrete render spec.
// Dispatch is a closed switch over the supported kinds; anything else
// degrades to a visible "Unsupported chart type" placeholder instead of
// failing, so a malformed persisted config can never take down a
// dashboard. Render is pure: identical inputs produce identical specs.
func Render(kind ChartKind, data ChartData, config ChartConfig) RenderSpec {
	style := ResolveStyle(config)
	spec := RenderSpec{Kind: string(kind), Style: style}

	switch kind {
	case KindBar, KindLine:
		spec.Cartesian = cartesianSpec(data, style, false, false)
	case KindArea:
		spec.Cartesian = cartesianSpec(data, style, true, false)
	case KindScatter:
		spec.Cartesian = cartesianSpec(data, style, false, true)
	case KindPie:
		spec.Radial = radialSpec(data, style, 0)
	case KindDonut:
		spec.Radial = radialSpec(data, style, donutCutout)
	case KindTable:
		spec.Table = tableSpec(data, config)
	case KindMetric:
		spec.Metric = metricSpec(data, config)
	default:
		spec.Kind = "unsupported"
		spec.Fallback = fmt.Sprintf("Unsupported chart type: %s", kind)
	}
	return spec
}

func cartesianSpec(data ChartData, style ResolvedStyle, fill bool, scatter bool) *CartesianSpec {
	series := make([]CartesianSeries, 0, len(data.Datasets))
	for i, ds := range data.Datasets {
		color := ds.BorderColor
		if color == "" {
			color = ds.BackgroundColor
		}
		if color == "" {
			color = SchemeColor(style.ColorScheme, i)
		}
		s := CartesianSeries{
			Label: ds.Label,
			Data:  append([]float64(nil), ds.Data...),
			Color: color,
			Fill:  fill,
		}
		if scatter {
			s.Points = scatterPoints(data.Labels, ds.Data)
		}
		series = append(series, s)
	}
	return &CartesianSpec{
		Labels: append([]string(nil), data.Labels...),
		Series: series,
	}
}

// scatterPoints pairs each y value with a numeric x: the label itself when
// it parses as a number, otherwise the label's axis index.
func scatterPoints(labels []string, values []float64) []Point {
	points := make([]Point, 0, len(values))
	for i, y := range values {
		x := float64(i)
		if i < len(labels) {
			if parsed, ok := toFloat(labels[i]); ok {
				x = parsed
			}
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points
}

// radialSpec slices the first dataset; pie and donut charts ignore any
// additional series.
func radialSpec(data ChartData, style ResolvedStyle, cutout float64) *RadialSpec {
	slices := make([]RadialSlice, 0, len(data.Labels))
	if len(data.Datasets) > 0 {
		values := data.Datasets[0].Data
		for i, label := range data.Labels {
			value := 0.0
			if i < len(values) {
				value = values[i]
			}
			slices = append(slices, RadialSlice{
				Label: label,
				Value: value,
				Color: SchemeColor(style.ColorScheme, i),
			})
		}
	}
	return &RadialSpec{Slices: slices, Cutout: cutout}
}

func tableSpec(data ChartData, config ChartConfig) *TableSpec {
	columns := make([]string, 0, len(data.Datasets)+1)
	header := config.XAxis
	if header == "" {
		header = "label"
	}
	columns = append(columns, header)
	for _, ds := range data.Datasets {
		columns = append(columns, ds.Label)
	}

	rows := make([][]string, 0, len(data.Labels))
	for i, label := range data.Labels {
		row := make([]string, 0, len(columns))
		row = append(row, label)
		for _, ds := range data.Datasets {
			if i < len(ds.Data) {
				row = append(row, strconv.FormatFloat(ds.Data[i], 'f', -1, 64))
			} else {
				row = append(row, "0")
			}
		}
		rows = append(rows, row)
	}
	return &TableSpec{Columns: columns, Rows: rows}
}

// metricSpec reduces the first series to one number using the config's
// aggregation, which turns per-label sums into an overall total and so on.
func metricSpec(data ChartData, config ChartConfig) *MetricSpec {
	label := config.Label
	if label == "" {
		label = config.YAxis
	}
	var values []float64
	if len(data.Datasets) > 0 {
		values = data.Datasets[0].Data
	}
	return &MetricSpec{
		Label: label,
		Value: aggregate(values, len(values), config.Aggregation),
	}
}
