package charts

// ChartKind identifies one of the supported chart renderings.
type ChartKind string

const (
	KindBar     ChartKind = "bar"
	KindLine    ChartKind = "line"
	KindPie     ChartKind = "pie"
	KindArea    ChartKind = "area"
	KindScatter ChartKind = "scatter"
	KindDonut   ChartKind = "donut"
	KindTable   ChartKind = "table"
	KindMetric  ChartKind = "metric"
)

// SupportedKinds lists every chart kind the renderer dispatches on.
var SupportedKinds = []ChartKind{
	KindBar, KindLine, KindPie, KindArea, KindScatter, KindDonut, KindTable, KindMetric,
}

// IsSupported reports whether the renderer knows the given kind.
func (k ChartKind) IsSupported() bool {
	for _, kind := range SupportedKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Aggregation is a reduction applied to the y values of grouped rows.
type Aggregation string

const (
	AggSum    Aggregation = "sum"
	AggAvg    Aggregation = "avg"
	AggCount  Aggregation = "count"
	AggMin    Aggregation = "min"
	AggMax    Aggregation = "max"
	AggMedian Aggregation = "median"
)

// FilterOperator is a row-matching predicate used by widget filters.
type FilterOperator string

const (
	OpEquals      FilterOperator = "equals"
	OpNotEquals   FilterOperator = "not_equals"
	OpContains    FilterOperator = "contains"
	OpGreaterThan FilterOperator = "greater_than"
	OpLessThan    FilterOperator = "less_than"
	OpBetween     FilterOperator = "between"
)

// Row is a single record of a tabular dataset, keyed by column name.
type Row = map[string]interface{}

// Filter narrows the rows a widget charts. Column must name a column of the
// widget's dataset; filters on unknown columns match nothing.
type Filter struct {
	ID       string         `json:"id"`
	Column   string         `json:"column"`
	Operator FilterOperator `json:"operator"`
	Value    interface{}    `json:"value"`
}

// ChartConfig is the value object a widget edits. Display options are
// pointers so an omitted option is distinguishable from an explicit false;
// ResolveStyle fills the documented defaults.
type ChartConfig struct {
	XAxis       string      `json:"x_axis"`
	YAxis       string      `json:"y_axis"`
	Aggregation Aggregation `json:"aggregation"`
	GroupBy     string      `json:"group_by,omitempty"`
	Label       string      `json:"label,omitempty"`
	SortOrder   string      `json:"sort_order,omitempty"`
	Limit       int         `json:"limit,omitempty"`
	ColorScheme string      `json:"color_scheme,omitempty"`
	Height      *int        `json:"height,omitempty"`
	ShowGrid    *bool       `json:"show_grid,omitempty"`
	ShowLegend  *bool       `json:"show_legend,omitempty"`
	ShowValues  *bool       `json:"show_values,omitempty"`
	Animated    *bool       `json:"animated,omitempty"`
}

// WidgetPosition is the widget's slot on the dashboard grid.
type WidgetPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// ChartWidget is a single chart placed on a dashboard. IDs are unique within
// a dashboard and stable across reorders.
type ChartWidget struct {
	ID        string         `json:"id"`
	Type      ChartKind      `json:"type"`
	Title     string         `json:"title"`
	DatasetID int64          `json:"dataset_id,omitempty"`
	Config    ChartConfig    `json:"config"`
	Position  WidgetPosition `json:"position"`
	Filters   []Filter       `json:"filters"`
}

// ChartDataset is one series of a generated chart.
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"background_color,omitempty"`
	BorderColor     string    `json:"border_color,omitempty"`
}

// ChartData is the generated label/series structure fed to the renderer.
// It is derived state: recomputed on every config or filter change and
// never persisted.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}
