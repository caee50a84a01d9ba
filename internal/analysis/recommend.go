package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/expertbi/expertbi-api/internal/charts"
	"github.com/expertbi/expertbi-api/internal/tabular"
)

// maxRecommendations caps the ranked suggestion list.
const maxRecommendations = 15

// Recommendation is one ranked chart suggestion for a dataset.
type Recommendation struct {
	ChartType  charts.ChartKind   `json:"chart_type"`
	Priority   int                `json:"priority"`
	Confidence float64            `json:"confidence"`
	Title      string             `json:"title"`
	Reason     string             `json:"reason"`
	Config     charts.ChartConfig `json:"config"`
	UseCase    string             `json:"use_case"`
}

// Recommend proposes charts for a table based on its column types:
// time series for date+numeric pairs, bar/pie for categorical breakdowns,
// grouped bars across two categories, scatter for correlated numeric
// pairs, and metric cards for the leading numeric columns. Results are
// sorted by priority then confidence and capped at maxRecommendations.
func Recommend(t *tabular.Table) []Recommendation {
	types := profileColumnTypes(t)

	var dateCols, numericCols, catCols []string
	for _, col := range t.Columns {
		switch types[col] {
		case "date":
			dateCols = append(dateCols, col)
		case "numeric":
			numericCols = append(numericCols, col)
		case "categorical":
			catCols = append(catCols, col)
		}
	}

	recs := []Recommendation{}
	recs = append(recs, timeSeriesRecs(dateCols, numericCols)...)
	recs = append(recs, categoryRecs(t, catCols, numericCols)...)
	recs = append(recs, groupedRecs(t, catCols, numericCols)...)
	recs = append(recs, scatterRecs(t, numericCols)...)
	recs = append(recs, metricRecs(numericCols)...)

	sort.SliceStable(recs, func(a, b int) bool {
		if recs[a].Priority != recs[b].Priority {
			return recs[a].Priority > recs[b].Priority
		}
		return recs[a].Confidence > recs[b].Confidence
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func timeSeriesRecs(dateCols, numericCols []string) []Recommendation {
	out := []Recommendation{}
	for _, dateCol := range dateCols {
		for _, numCol := range numericCols {
			out = append(out, Recommendation{
				ChartType:  charts.KindLine,
				Priority:   10,
				Confidence: 0.95,
				Title:      fmt.Sprintf("%s over time", numCol),
				Reason:     "Time series data detected - perfect for trend analysis",
				Config: charts.ChartConfig{
					XAxis:       dateCol,
					YAxis:       numCol,
					Aggregation: charts.AggSum,
				},
				UseCase: "Track changes and identify trends over time",
			})
			out = append(out, Recommendation{
				ChartType:  charts.KindArea,
				Priority:   8,
				Confidence: 0.85,
				Title:      fmt.Sprintf("%s accumulation over time", numCol),
				Reason:     "Area charts show cumulative trends effectively",
				Config: charts.ChartConfig{
					XAxis:       dateCol,
					YAxis:       numCol,
					Aggregation: charts.AggSum,
				},
				UseCase: "Visualize cumulative totals and volume",
			})
		}
	}
	return out
}

func categoryRecs(t *tabular.Table, catCols, numericCols []string) []Recommendation {
	out := []Recommendation{}
	for _, catCol := range catCols {
		cardinality := distinctCount(t.Column(catCol))
		for _, numCol := range numericCols {
			if cardinality <= 20 {
				out = append(out, Recommendation{
					ChartType:  charts.KindBar,
					Priority:   9,
					Confidence: 0.9,
					Title:      fmt.Sprintf("%s by %s", numCol, catCol),
					Reason:     fmt.Sprintf("%s has %d categories - ideal for bar chart comparison", catCol, cardinality),
					Config: charts.ChartConfig{
						XAxis:       catCol,
						YAxis:       numCol,
						Aggregation: charts.AggSum,
						SortOrder:   "desc",
					},
					UseCase: "Compare values across different categories",
				})
			}
			if cardinality <= 10 {
				out = append(out, Recommendation{
					ChartType:  charts.KindPie,
					Priority:   7,
					Confidence: 0.8,
					Title:      fmt.Sprintf("%s distribution by %s", numCol, catCol),
					Reason:     fmt.Sprintf("Few categories (%d) - good for showing proportions", cardinality),
					Config: charts.ChartConfig{
						XAxis:       catCol,
						YAxis:       numCol,
						Aggregation: charts.AggSum,
					},
					UseCase: "Show percentage breakdown of total",
				})
			}
		}
	}
	return out
}

func groupedRecs(t *tabular.Table, catCols, numericCols []string) []Recommendation {
	if len(catCols) < 2 || len(numericCols) == 0 {
		return nil
	}
	cat1, cat2 := catCols[0], catCols[1]
	numCol := numericCols[0]
	if distinctCount(t.Column(cat1)) > 10 || distinctCount(t.Column(cat2)) > 5 {
		return nil
	}
	return []Recommendation{{
		ChartType:  charts.KindBar,
		Priority:   8,
		Confidence: 0.85,
		Title:      fmt.Sprintf("%s by %s and %s", numCol, cat1, cat2),
		Reason:     "Multiple categories allow for grouped comparison",
		Config: charts.ChartConfig{
			XAxis:       cat1,
			YAxis:       numCol,
			GroupBy:     cat2,
			Aggregation: charts.AggSum,
		},
		UseCase: "Compare values across multiple dimensions",
	}}
}

func scatterRecs(t *tabular.Table, numericCols []string) []Recommendation {
	out := []Recommendation{}
	for i := 0; i < len(numericCols); i++ {
		for j := i + 1; j < len(numericCols); j++ {
			x, y := pairedSeries(t, numericCols[i], numericCols[j])
			r := pearson(x, y)
			if math.Abs(r) <= 0.5 {
				continue
			}
			out = append(out, Recommendation{
				ChartType:  charts.KindScatter,
				Priority:   7,
				Confidence: math.Abs(r),
				Title:      fmt.Sprintf("%s vs %s", numericCols[i], numericCols[j]),
				Reason:     fmt.Sprintf("Strong correlation detected (%.2f)", r),
				Config: charts.ChartConfig{
					XAxis:       numericCols[i],
					YAxis:       numericCols[j],
					Aggregation: charts.AggSum,
				},
				UseCase: "Analyze relationship between two variables",
			})
		}
	}
	return out
}

func metricRecs(numericCols []string) []Recommendation {
	out := []Recommendation{}
	for i, numCol := range numericCols {
		if i >= 5 {
			break
		}
		out = append(out, Recommendation{
			ChartType:  charts.KindMetric,
			Priority:   5,
			Confidence: 0.7,
			Title:      fmt.Sprintf("%s summary", numCol),
			Reason:     "Key metric that should be highlighted",
			Config: charts.ChartConfig{
				YAxis:       numCol,
				Aggregation: charts.AggSum,
			},
			UseCase: "Display important metrics at a glance",
		})
	}
	return out
}
