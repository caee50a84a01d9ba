package analysis_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expertbi/expertbi-api/internal/analysis"
	"github.com/expertbi/expertbi-api/internal/charts"
	"github.com/expertbi/expertbi-api/internal/tabular"
)

func findRecommendation(recs []analysis.Recommendation, kind charts.ChartKind) (analysis.Recommendation, bool) {
	for _, r := range recs {
		if r.ChartType == kind {
			return r, true
		}
	}
	return analysis.Recommendation{}, false
}

func TestRecommend_TimeSeries(t *testing.T) {
	rows := []map[string]interface{}{}
	for i := 0; i < 10; i++ {
		rows = append(rows, map[string]interface{}{
			"day":     fmt.Sprintf("2024-01-%02d", i+1),
			"revenue": fmt.Sprintf("%d", 100+i),
		})
	}
	table := &tabular.Table{Columns: []string{"day", "revenue"}, Rows: rows}

	recs := analysis.Recommend(table)
	require.NotEmpty(t, recs)

	// Line charts lead when a date and a numeric column coexist.
	assert.Equal(t, charts.KindLine, recs[0].ChartType)
	assert.Equal(t, 10, recs[0].Priority)
	assert.Equal(t, "day", recs[0].Config.XAxis)
	assert.Equal(t, "revenue", recs[0].Config.YAxis)

	area, ok := findRecommendation(recs, charts.KindArea)
	require.True(t, ok)
	assert.Equal(t, 8, area.Priority)
}

func TestRecommend_CategoryBreakdowns(t *testing.T) {
	rows := []map[string]interface{}{}
	regions := []string{"east", "west", "north"}
	for i := 0; i < 12; i++ {
		rows = append(rows, map[string]interface{}{
			"region": regions[i%3],
			"sales":  fmt.Sprintf("%d", 10+i),
		})
	}
	table := &tabular.Table{Columns: []string{"region", "sales"}, Rows: rows}

	recs := analysis.Recommend(table)

	bar, ok := findRecommendation(recs, charts.KindBar)
	require.True(t, ok)
	assert.Equal(t, 9, bar.Priority)
	assert.Equal(t, "region", bar.Config.XAxis)
	assert.Equal(t, "desc", bar.Config.SortOrder)

	pie, ok := findRecommendation(recs, charts.KindPie)
	require.True(t, ok)
	assert.Equal(t, 7, pie.Priority)
}

func TestRecommend_NoPieForWideCategories(t *testing.T) {
	rows := []map[string]interface{}{}
	for i := 0; i < 60; i++ {
		rows = append(rows, map[string]interface{}{
			"city":  fmt.Sprintf("city-%d", i%15),
			"sales": fmt.Sprintf("%d", 10+i),
		})
	}
	table := &tabular.Table{Columns: []string{"city", "sales"}, Rows: rows}

	recs := analysis.Recommend(table)

	_, hasBar := findRecommendation(recs, charts.KindBar)
	assert.True(t, hasBar)
	_, hasPie := findRecommendation(recs, charts.KindPie)
	assert.False(t, hasPie)
}

func TestRecommend_GroupedBar(t *testing.T) {
	rows := []map[string]interface{}{}
	regions := []string{"east", "west"}
	channels := []string{"web", "store"}
	for i := 0; i < 16; i++ {
		rows = append(rows, map[string]interface{}{
			"region":  regions[i%2],
			"channel": channels[(i/2)%2],
			"sales":   fmt.Sprintf("%d", 10+i),
		})
	}
	table := &tabular.Table{Columns: []string{"region", "channel", "sales"}, Rows: rows}

	recs := analysis.Recommend(table)

	grouped := analysis.Recommendation{}
	found := false
	for _, r := range recs {
		if r.ChartType == charts.KindBar && r.Config.GroupBy != "" {
			grouped, found = r, true
			break
		}
	}
	require.True(t, found)
	assert.Equal(t, "region", grouped.Config.XAxis)
	assert.Equal(t, "channel", grouped.Config.GroupBy)
	assert.Equal(t, 8, grouped.Priority)
}

func TestRecommend_ScatterForCorrelatedPairs(t *testing.T) {
	rows := []map[string]interface{}{}
	for i := 1; i <= 30; i++ {
		rows = append(rows, map[string]interface{}{
			"spend":   fmt.Sprintf("%d", i*10),
			"revenue": fmt.Sprintf("%d", i*25+3),
		})
	}
	table := &tabular.Table{Columns: []string{"spend", "revenue"}, Rows: rows}

	recs := analysis.Recommend(table)
	scatter, ok := findRecommendation(recs, charts.KindScatter)
	require.True(t, ok)
	assert.Equal(t, "spend", scatter.Config.XAxis)
	assert.Equal(t, "revenue", scatter.Config.YAxis)
	assert.Greater(t, scatter.Confidence, 0.5)
}

func TestRecommend_MetricCards(t *testing.T) {
	rows := []map[string]interface{}{}
	for i := 0; i < 10; i++ {
		rows = append(rows, map[string]interface{}{
			"units": fmt.Sprintf("%d", (i*i)%17),
		})
	}
	table := &tabular.Table{Columns: []string{"units"}, Rows: rows}

	recs := analysis.Recommend(table)
	metric, ok := findRecommendation(recs, charts.KindMetric)
	require.True(t, ok)
	assert.Equal(t, 5, metric.Priority)
	assert.Equal(t, "units", metric.Config.YAxis)
}

func TestRecommend_OrderingAndCap(t *testing.T) {
	// A wide table with dates, categories and many numeric columns
	// generates well over the cap.
	columns := []string{"day", "region"}
	for i := 0; i < 8; i++ {
		columns = append(columns, fmt.Sprintf("metric%d", i))
	}
	rows := []map[string]interface{}{}
	for i := 0; i < 20; i++ {
		row := map[string]interface{}{
			"day":    fmt.Sprintf("2024-01-%02d", i+1),
			"region": []string{"east", "west"}[i%2],
		}
		for j := 0; j < 8; j++ {
			row[fmt.Sprintf("metric%d", j)] = fmt.Sprintf("%d", i*(j+1)+j)
		}
		rows = append(rows, row)
	}
	table := &tabular.Table{Columns: columns, Rows: rows}

	recs := analysis.Recommend(table)
	assert.Len(t, recs, 15)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Priority, recs[i].Priority)
	}
}

func TestRecommend_NoColumnsOfInterest(t *testing.T) {
	table := &tabular.Table{
		Columns: []string{"notes"},
		Rows: []map[string]interface{}{
			{"notes": "alpha remark"}, {"notes": "beta comment"}, {"notes": "gamma entry"},
		},
	}
	assert.Empty(t, analysis.Recommend(table))
}
