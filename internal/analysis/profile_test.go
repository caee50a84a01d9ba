package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expertbi/expertbi-api/internal/analysis"
	"github.com/expertbi/expertbi-api/internal/tabular"
)

func salesTable() *tabular.Table {
	return &tabular.Table{
		Columns: []string{"region", "amount", "order_date"},
		Rows: []map[string]interface{}{
			{"region": "east", "amount": "10", "order_date": "2024-01-01"},
			{"region": "east", "amount": "20", "order_date": "2024-01-02"},
			{"region": "west", "amount": "30", "order_date": "2024-01-03"},
			{"region": "west", "amount": "40", "order_date": "2024-01-04"},
			{"region": "east", "amount": "50", "order_date": "2024-01-05"},
			{"region": "west", "order_date": "2024-01-06"},
		},
	}
}

func TestBuildProfile_ColumnClassification(t *testing.T) {
	profile := analysis.BuildProfile(salesTable())

	assert.Equal(t, 6, profile.RowCount)
	assert.Equal(t, 3, profile.ColumnCount)
	assert.Equal(t, "categorical", profile.ColumnTypes["region"])
	assert.Equal(t, "numeric", profile.ColumnTypes["amount"])
	assert.Equal(t, "date", profile.ColumnTypes["order_date"])
	assert.Equal(t, []string{"region", "amount", "order_date"}, profile.ColumnList)
}

func TestBuildProfile_NumericAnalysis(t *testing.T) {
	profile := analysis.BuildProfile(salesTable())

	amount, ok := profile.NumericAnalysis["amount"]
	require.True(t, ok)
	assert.Equal(t, 30.0, amount.Mean)
	assert.Equal(t, 30.0, amount.Median)
	assert.Equal(t, 10.0, amount.Min)
	assert.Equal(t, 50.0, amount.Max)
	assert.Equal(t, 1, amount.NullCount)
	assert.Equal(t, 5, amount.PositiveCount)
	assert.Zero(t, amount.ZerosCount)
	assert.Zero(t, amount.NegativeCount)
}

func TestBuildProfile_CategoricalAnalysis(t *testing.T) {
	profile := analysis.BuildProfile(salesTable())

	region, ok := profile.CategoricalAnalysis["region"]
	require.True(t, ok)
	assert.Equal(t, 2, region.UniqueCount)
	assert.Equal(t, "east", region.MostFrequent)
	assert.Equal(t, 3, region.MostFrequentCount)
	assert.Equal(t, "west", region.LeastFrequent)
	assert.Len(t, region.TopValues, 2)
}

func TestBuildProfile_DateAnalysis(t *testing.T) {
	profile := analysis.BuildProfile(salesTable())

	dates, ok := profile.DateAnalysis["order_date"]
	require.True(t, ok)
	assert.Equal(t, 5, dates.DateRangeDays)
	assert.Equal(t, 6, dates.UniqueCount)
	assert.Zero(t, dates.NullCount)
}

func TestBuildProfile_QualityScore(t *testing.T) {
	table := &tabular.Table{
		Columns: []string{"a", "b"},
		Rows: []map[string]interface{}{
			{"a": "1", "b": "x"},
			{"a": "2", "b": "y"},
			{"a": "2", "b": "y"},
			{"a": "3"},
		},
	}
	profile := analysis.BuildProfile(table)
	quality := profile.DataQuality

	assert.Equal(t, 8, quality.TotalCells)
	assert.Equal(t, 1, quality.NullCells)
	assert.Equal(t, 1, quality.DuplicateRows)
	assert.InDelta(t, 87.5, quality.Completeness, 0.001)
	assert.InDelta(t, 75.0, quality.Uniqueness, 0.001)
	assert.InDelta(t, 87.5*0.6+75.0*0.4, quality.OverallScore, 0.001)
}

func TestBuildProfile_EmptyTable(t *testing.T) {
	profile := analysis.BuildProfile(&tabular.Table{Columns: []string{}, Rows: nil})
	assert.Zero(t, profile.RowCount)
	assert.Zero(t, profile.DataQuality.OverallScore)
}
