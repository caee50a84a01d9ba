package charts_test

import (
	"testing"

	"github.com/expertbi/expertbi-api/internal/charts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesRows() []charts.Row {
	return []charts.Row{
		{"category": "A", "amount": 10.0, "region": "east"},
		{"category": "B", "amount": 40.0, "region": "east"},
		{"category": "A", "amount": 20.0, "region": "west"},
		{"category": "B", "amount": 30.0, "region": "west"},
	}
}

func TestGenerate_MissingAxesReturnsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		config charts.ChartConfig
	}{
		{
			name:   "missing x axis",
			config: charts.ChartConfig{YAxis: "amount", Aggregation: charts.AggSum},
		},
		{
			name:   "missing y axis",
			config: charts.ChartConfig{XAxis: "category", Aggregation: charts.AggSum},
		},
		{
			name:   "both axes missing",
			config: charts.ChartConfig{Aggregation: charts.AggSum},
		},
		{
			name:   "whitespace axis names",
			config: charts.ChartConfig{XAxis: "  ", YAxis: "amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := charts.Generate(salesRows(), tt.config)
			assert.Empty(t, data.Labels)
			assert.Empty(t, data.Datasets)
			assert.NotNil(t, data.Labels)
			assert.NotNil(t, data.Datasets)
		})
	}
}

func TestGenerate_SumMatchesArithmeticTotal(t *testing.T) {
	rows := []charts.Row{
		{"category": "A", "amount": "5"},
		{"category": "A", "amount": "10"},
		{"category": "A", "amount": "15"},
		{"category": "B", "amount": "70"},
	}

	data := charts.Generate(rows, charts.ChartConfig{
		XAxis:       "category",
		YAxis:       "amount",
		Aggregation: charts.AggSum,
	})

	require.Equal(t, []string{"A", "B"}, data.Labels)
	require.Len(t, data.Datasets, 1)
	assert.Equal(t, []float64{30, 70}, data.Datasets[0].Data)
	assert.Equal(t, "amount", data.Datasets[0].Label)
}

func TestGenerate_Aggregations(t *testing.T) {
	rows := []charts.Row{
		{"cat": "A", "v": 2.0},
		{"cat": "A", "v": 4.0},
		{"cat": "A", "v": 9.0},
		{"cat": "B", "v": 5.0},
	}

	tests := []struct {
		name        string
		aggregation charts.Aggregation
		wantA       float64
		wantB       float64
	}{
		{name: "sum", aggregation: charts.AggSum, wantA: 15, wantB: 5},
		{name: "avg", aggregation: charts.AggAvg, wantA: 5, wantB: 5},
		{name: "count", aggregation: charts.AggCount, wantA: 3, wantB: 1},
		{name: "min", aggregation: charts.AggMin, wantA: 2, wantB: 5},
		{name: "max", aggregation: charts.AggMax, wantA: 9, wantB: 5},
		{name: "median", aggregation: charts.AggMedian, wantA: 4, wantB: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := charts.Generate(rows, charts.ChartConfig{
				XAxis:       "cat",
				YAxis:       "v",
				Aggregation: tt.aggregation,
			})
			require.Equal(t, []string{"A", "B"}, data.Labels)
			require.Len(t, data.Datasets, 1)
			assert.Equal(t, []float64{tt.wantA, tt.wantB}, data.Datasets[0].Data)
		})
	}
}

func TestGenerate_MedianEvenCount(t *testing.T) {
	rows := []charts.Row{
		{"cat": "A", "v": 1.0},
		{"cat": "A", "v": 3.0},
		{"cat": "A", "v": 5.0},
		{"cat": "A", "v": 7.0},
	}

	data := charts.Generate(rows, charts.ChartConfig{XAxis: "cat", YAxis: "v", Aggregation: charts.AggMedian})
	require.Len(t, data.Datasets, 1)
	assert.Equal(t, []float64{4}, data.Datasets[0].Data)
}

func TestGenerate_AvgOverNonNumericRowsIsZeroNotNaN(t *testing.T) {
	rows := []charts.Row{
		{"cat": "A", "v": "not a number"},
		{"cat": "A", "v": nil},
	}

	for _, agg := range []charts.Aggregation{
		charts.AggSum, charts.AggAvg, charts.AggMin, charts.AggMax, charts.AggMedian,
	} {
		data := charts.Generate(rows, charts.ChartConfig{XAxis: "cat", YAxis: "v", Aggregation: agg})
		require.Len(t, data.Datasets, 1, "aggregation %s", agg)
		for _, v := range data.Datasets[0].Data {
			assert.False(t, v != v, "aggregation %s produced NaN", agg)
		}
		assert.Equal(t, []float64{0}, data.Datasets[0].Data, "aggregation %s", agg)
	}
}

func TestGenerate_NaNStringInputDoesNotPoisonSum(t *testing.T) {
	rows := []charts.Row{
		{"cat": "A", "v": "NaN"},
		{"cat": "A", "v": "10"},
	}

	data := charts.Generate(rows, charts.ChartConfig{XAxis: "cat", YAxis: "v", Aggregation: charts.AggSum})
	require.Len(t, data.Datasets, 1)
	assert.Equal(t, []float64{10}, data.Datasets[0].Data)
}

func TestGenerate_FirstSeenLabelOrder(t *testing.T) {
	rows := []charts.Row{
		{"cat": "zebra", "v": 1.0},
		{"cat": "apple", "v": 2.0},
		{"cat": "zebra", "v": 3.0},
		{"cat": "mango", "v": 4.0},
	}

	data := charts.Generate(rows, charts.ChartConfig{XAxis: "cat", YAxis: "v", Aggregation: charts.AggSum})
	assert.Equal(t, []string{"zebra", "apple", "mango"}, data.Labels)
}

func TestGenerate_GroupedDatasetsAreRectangular(t *testing.T) {
	rows := []charts.Row{
		{"month": "Jan", "region": "east", "v": 10.0},
		{"month": "Feb", "region": "east", "v": 20.0},
		{"month": "Mar", "region": "east", "v": 30.0},
		// west has no Feb or Mar rows
		{"month": "Jan", "region": "west", "v": 5.0},
	}

	data := charts.Generate(rows, charts.ChartConfig{
		XAxis:       "month",
		YAxis:       "v",
		Aggregation: charts.AggSum,
		GroupBy:     "region",
	})

	require.Equal(t, []string{"Jan", "Feb", "Mar"}, data.Labels)
	require.Len(t, data.Datasets, 2)
	for _, ds := range data.Datasets {
		assert.Len(t, ds.Data, len(data.Labels), "dataset %q must cover every label", ds.Label)
	}
	assert.Equal(t, "east", data.Datasets[0].Label)
	assert.Equal(t, []float64{10, 20, 30}, data.Datasets[0].Data)
	assert.Equal(t, "west", data.Datasets[1].Label)
	assert.Equal(t, []float64{5, 0, 0}, data.Datasets[1].Data)
}

func TestGenerate_GroupedMissingComboCountIsZero(t *testing.T) {
	rows := []charts.Row{
		{"x": "a", "g": "g1", "v": 1.0},
		{"x": "b", "g": "g2", "v": 1.0},
	}

	data := charts.Generate(rows, charts.ChartConfig{
		XAxis: "x", YAxis: "v", Aggregation: charts.AggCount, GroupBy: "g",
	})

	require.Len(t, data.Datasets, 2)
	assert.Equal(t, []float64{1, 0}, data.Datasets[0].Data)
	assert.Equal(t, []float64{0, 1}, data.Datasets[1].Data)
}

func TestGenerate_CustomDatasetLabel(t *testing.T) {
	data := charts.Generate(salesRows(), charts.ChartConfig{
		XAxis:       "category",
		YAxis:       "amount",
		Aggregation: charts.AggSum,
		Label:       "Revenue",
	})
	require.Len(t, data.Datasets, 1)
	assert.Equal(t, "Revenue", data.Datasets[0].Label)
}

func TestGenerate_UnknownColumnReturnsEmpty(t *testing.T) {
	data := charts.Generate(salesRows(), charts.ChartConfig{
		XAxis:       "no_such_column",
		YAxis:       "amount",
		Aggregation: charts.AggSum,
	})
	assert.Empty(t, data.Labels)
	assert.Empty(t, data.Datasets)
}

func TestGenerate_SortOrderAndLimit(t *testing.T) {
	rows := []charts.Row{
		{"cat": "A", "v": 20.0},
		{"cat": "B", "v": 50.0},
		{"cat": "C", "v": 10.0},
		{"cat": "D", "v": 40.0},
	}

	t.Run("descending", func(t *testing.T) {
		data := charts.Generate(rows, charts.ChartConfig{
			XAxis: "cat", YAxis: "v", Aggregation: charts.AggSum, SortOrder: "desc",
		})
		assert.Equal(t, []string{"B", "D", "A", "C"}, data.Labels)
		assert.Equal(t, []float64{50, 40, 20, 10}, data.Datasets[0].Data)
	})

	t.Run("ascending with limit", func(t *testing.T) {
		data := charts.Generate(rows, charts.ChartConfig{
			XAxis: "cat", YAxis: "v", Aggregation: charts.AggSum, SortOrder: "asc", Limit: 2,
		})
		assert.Equal(t, []string{"C", "A"}, data.Labels)
		assert.Equal(t, []float64{10, 20}, data.Datasets[0].Data)
	})

	t.Run("limit preserves rectangularity across groups", func(t *testing.T) {
		grouped := []charts.Row{
			{"cat": "A", "g": "x", "v": 1.0},
			{"cat": "B", "g": "x", "v": 2.0},
			{"cat": "C", "g": "y", "v": 3.0},
		}
		data := charts.Generate(grouped, charts.ChartConfig{
			XAxis: "cat", YAxis: "v", Aggregation: charts.AggSum, GroupBy: "g", Limit: 2,
		})
		require.Equal(t, []string{"A", "B"}, data.Labels)
		for _, ds := range data.Datasets {
			assert.Len(t, ds.Data, 2)
		}
	})
}

func TestApplyFilters_Operators(t *testing.T) {
	rows := []charts.Row{
		{"name": "Alpha Widget", "price": "10", "stock": 5.0},
		{"name": "Beta Gadget", "price": "25", "stock": 0.0},
		{"name": "Gamma Widget", "price": "40", "stock": 12.0},
	}

	tests := []struct {
		name      string
		filter    charts.Filter
		wantNames []string
	}{
		{
			name:      "equals numeric string",
			filter:    charts.Filter{Column: "price", Operator: charts.OpEquals, Value: 25},
			wantNames: []string{"Beta Gadget"},
		},
		{
			name:      "not equals",
			filter:    charts.Filter{Column: "price", Operator: charts.OpNotEquals, Value: "25"},
			wantNames: []string{"Alpha Widget", "Gamma Widget"},
		},
		{
			name:      "contains is case insensitive",
			filter:    charts.Filter{Column: "name", Operator: charts.OpContains, Value: "widget"},
			wantNames: []string{"Alpha Widget", "Gamma Widget"},
		},
		{
			name:      "greater than",
			filter:    charts.Filter{Column: "price", Operator: charts.OpGreaterThan, Value: 10},
			wantNames: []string{"Beta Gadget", "Gamma Widget"},
		},
		{
			name:      "less than",
			filter:    charts.Filter{Column: "stock", Operator: charts.OpLessThan, Value: 5},
			wantNames: []string{"Beta Gadget"},
		},
		{
			name:      "between inclusive",
			filter:    charts.Filter{Column: "price", Operator: charts.OpBetween, Value: []interface{}{10, 25}},
			wantNames: []string{"Alpha Widget", "Beta Gadget"},
		},
		{
			name:      "unknown column matches nothing",
			filter:    charts.Filter{Column: "missing", Operator: charts.OpEquals, Value: "x"},
			wantNames: []string{},
		},
		{
			name:      "unknown operator matches nothing",
			filter:    charts.Filter{Column: "price", Operator: "regex", Value: ".*"},
			wantNames: []string{},
		},
		{
			name:      "incomplete filter without column is ignored",
			filter:    charts.Filter{Operator: charts.OpEquals, Value: "x"},
			wantNames: []string{"Alpha Widget", "Beta Gadget", "Gamma Widget"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := charts.ApplyFilters(rows, []charts.Filter{tt.filter})
			names := make([]string, 0, len(got))
			for _, row := range got {
				names = append(names, row["name"].(string))
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestApplyFilters_Conjunction(t *testing.T) {
	rows := []charts.Row{
		{"region": "east", "amount": 50.0},
		{"region": "east", "amount": 5.0},
		{"region": "west", "amount": 80.0},
	}

	got := charts.ApplyFilters(rows, []charts.Filter{
		{Column: "region", Operator: charts.OpEquals, Value: "east"},
		{Column: "amount", Operator: charts.OpGreaterThan, Value: 10},
	})

	require.Len(t, got, 1)
	assert.Equal(t, 50.0, got[0]["amount"])
}

func TestGenerateWidget_AppliesFiltersBeforeAggregation(t *testing.T) {
	widget := charts.ChartWidget{
		ID:    "w1",
		Type:  charts.KindBar,
		Title: "East sales",
		Config: charts.ChartConfig{
			XAxis:       "category",
			YAxis:       "amount",
			Aggregation: charts.AggSum,
		},
		Filters: []charts.Filter{
			{ID: "f1", Column: "region", Operator: charts.OpEquals, Value: "east"},
		},
	}

	data := charts.GenerateWidget(salesRows(), widget)
	require.Equal(t, []string{"A", "B"}, data.Labels)
	assert.Equal(t, []float64{10, 40}, data.Datasets[0].Data)
}
