package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/expertbi/expertbi-api/internal/tabular"
)

// maxInsights caps how many insights one generation run keeps.
const maxInsights = 20

// Insight is one generated finding about a dataset.
type Insight struct {
	Type        string                 `json:"type"`
	Category    string                 `json:"category"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	ColumnName  string                 `json:"column_name,omitempty"`
	Confidence  float64                `json:"confidence"`
	Importance  float64                `json:"importance"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// GenerateInsights runs every detector over the table and returns the
// findings sorted by confidence, capped at maxInsights.
func GenerateInsights(t *tabular.Table) []Insight {
	if t.RowCount() == 0 {
		return []Insight{}
	}
	types := profileColumnTypes(t)

	insights := []Insight{}
	insights = append(insights, missingDataInsights(t)...)
	insights = append(insights, outlierInsights(t, types)...)
	insights = append(insights, correlationInsights(t, types)...)
	insights = append(insights, distributionInsights(t, types)...)
	insights = append(insights, cardinalityInsights(t)...)
	insights = append(insights, trendInsights(t, types)...)
	insights = append(insights, topContributorInsights(t, types)...)

	sort.SliceStable(insights, func(a, b int) bool {
		return insights[a].Confidence > insights[b].Confidence
	})
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func missingDataInsights(t *tabular.Table) []Insight {
	out := []Insight{}
	for _, col := range t.Columns {
		nullCount := t.RowCount() - len(t.Column(col))
		if nullCount == 0 {
			continue
		}
		nullPct := float64(nullCount) / float64(t.RowCount()) * 100
		out = append(out, Insight{
			Type:        "missing_data",
			Category:    "quality",
			Title:       fmt.Sprintf("Missing Values in %s", col),
			Description: fmt.Sprintf("Column '%s' has %d missing values (%.1f%% of data)", col, nullCount, nullPct),
			ColumnName:  col,
			Confidence:  1.0,
			Importance:  math.Min(nullPct/10, 1.0),
			Metadata: map[string]interface{}{
				"null_count":      nullCount,
				"null_percentage": round2(nullPct),
				"total_rows":      t.RowCount(),
			},
		})
	}
	return out
}

// outlierInsights flags values outside the 1.5*IQR fence, cross-checked
// with a z-score pass so a single extreme value cannot inflate the count.
func outlierInsights(t *tabular.Table, types map[string]string) []Insight {
	out := []Insight{}
	for _, col := range t.Columns {
		if types[col] != "numeric" {
			continue
		}
		values := numericValues(t.Column(col))
		if len(values) < 4 {
			continue
		}
		lower, upper := iqrBounds(values)
		m := mean(values)
		s := stddev(values)

		outliers := 0
		for _, v := range values {
			iqrHit := v < lower || v > upper
			zHit := s > 0 && math.Abs(v-m)/s > 3
			if iqrHit || zHit {
				outliers++
			}
		}
		if outliers == 0 {
			continue
		}
		pct := float64(outliers) / float64(len(values)) * 100
		out = append(out, Insight{
			Type:        "outlier",
			Category:    "anomaly",
			Title:       fmt.Sprintf("Outliers Detected in %s", col),
			Description: fmt.Sprintf("Found %d outliers (%.1f%%) in '%s' outside range [%.2f, %.2f]", outliers, pct, col, lower, upper),
			ColumnName:  col,
			Confidence:  0.8,
			Importance:  math.Min(pct/5, 1.0),
			Metadata: map[string]interface{}{
				"outlier_count":      outliers,
				"outlier_percentage": round2(pct),
				"lower_bound":        lower,
				"upper_bound":        upper,
				"mean":               m,
				"median":             median(values),
			},
		})
	}
	return out
}

func correlationInsights(t *tabular.Table, types map[string]string) []Insight {
	numericCols := []string{}
	for _, col := range t.Columns {
		if types[col] == "numeric" {
			numericCols = append(numericCols, col)
		}
	}
	if len(numericCols) < 2 {
		return nil
	}

	out := []Insight{}
	for i := 0; i < len(numericCols); i++ {
		for j := i + 1; j < len(numericCols); j++ {
			x, y := pairedSeries(t, numericCols[i], numericCols[j])
			r := pearson(x, y)
			if math.Abs(r) <= 0.7 {
				continue
			}
			kind := "positive"
			if r < 0 {
				kind = "negative"
			}
			out = append(out, Insight{
				Type:        "correlation",
				Category:    "relationship",
				Title:       fmt.Sprintf("Strong %s Correlation", titleCase(kind)),
				Description: fmt.Sprintf("'%s' and '%s' show a %s correlation of %.2f", numericCols[i], numericCols[j], kind, r),
				Confidence:  math.Abs(r),
				Importance:  math.Abs(r),
				Metadata: map[string]interface{}{
					"correlation_value": r,
					"correlation_type":  kind,
					"columns":           []string{numericCols[i], numericCols[j]},
				},
			})
		}
	}
	return out
}

// pairedSeries collects rows where both columns parse as numbers.
func pairedSeries(t *tabular.Table, colA, colB string) ([]float64, []float64) {
	var x, y []float64
	for _, row := range t.Rows {
		a, aok := asFloat(row[colA])
		b, bok := asFloat(row[colB])
		if aok && bok {
			x = append(x, a)
			y = append(y, b)
		}
	}
	return x, y
}

func distributionInsights(t *tabular.Table, types map[string]string) []Insight {
	out := []Insight{}
	for _, col := range t.Columns {
		if types[col] != "numeric" {
			continue
		}
		values := numericValues(t.Column(col))
		skew := skewness(values)
		if math.Abs(skew) <= 1 {
			continue
		}
		kind := "right-skewed"
		if skew < 0 {
			kind = "left-skewed"
		}
		out = append(out, Insight{
			Type:        "distribution",
			Category:    "pattern",
			Title:       fmt.Sprintf("%s is %s", col, titleCase(kind)),
			Description: fmt.Sprintf("Column '%s' shows a %s distribution (skewness: %.2f)", col, kind, skew),
			ColumnName:  col,
			Confidence:  math.Min(math.Abs(skew)/3, 1.0),
			Importance:  math.Min(math.Abs(skew)/5, 1.0),
			Metadata: map[string]interface{}{
				"skewness": skew,
				"mean":     mean(values),
				"median":   median(values),
				"std":      stddev(values),
			},
		})
	}
	return out
}

func cardinalityInsights(t *tabular.Table) []Insight {
	out := []Insight{}
	for _, col := range t.Columns {
		values := t.Column(col)
		unique := distinctCount(values)
		total := t.RowCount()

		if unique == total && total > 1 && len(values) == total {
			out = append(out, Insight{
				Type:        "unique_identifier",
				Category:    "structure",
				Title:       fmt.Sprintf("%s is a Unique Identifier", col),
				Description: fmt.Sprintf("Column '%s' has unique values for all rows - likely an ID column", col),
				ColumnName:  col,
				Confidence:  1.0,
				Importance:  0.3,
				Metadata: map[string]interface{}{
					"unique_count": unique,
					"total_count":  total,
				},
			})
			continue
		}
		if unique > 1 && unique < 20 && unique < total {
			out = append(out, Insight{
				Type:        "categorical",
				Category:    "structure",
				Title:       fmt.Sprintf("%s is Categorical", col),
				Description: fmt.Sprintf("Column '%s' has %d unique values - might be categorical", col, unique),
				ColumnName:  col,
				Confidence:  0.7,
				Importance:  0.4,
				Metadata: map[string]interface{}{
					"unique_count": unique,
				},
			})
		}
	}
	return out
}

// trendInsights fits each numeric column against each date column's order
// and reports significant linear trends (R-squared above 0.5).
func trendInsights(t *tabular.Table, types map[string]string) []Insight {
	dateCols := []string{}
	numericCols := []string{}
	for _, col := range t.Columns {
		switch types[col] {
		case "date":
			dateCols = append(dateCols, col)
		case "numeric":
			numericCols = append(numericCols, col)
		}
	}

	out := []Insight{}
	for _, dateCol := range dateCols {
		for _, numCol := range numericCols {
			series := dateOrderedSeries(t, dateCol, numCol)
			if len(series) < 3 {
				continue
			}
			slope, r2 := linearFit(series)
			if r2 <= 0.5 || slope == 0 {
				continue
			}
			direction := "increasing"
			if slope < 0 {
				direction = "decreasing"
			}
			change := 0.0
			if series[0] != 0 {
				change = (series[len(series)-1] - series[0]) / math.Abs(series[0]) * 100
			}
			out = append(out, Insight{
				Type:        "trend",
				Category:    "pattern",
				Title:       fmt.Sprintf("%s is %s over %s", numCol, titleCase(direction), dateCol),
				Description: fmt.Sprintf("'%s' shows a %s linear trend over '%s' (%.1f%% change, R²=%.2f)", numCol, direction, dateCol, change, r2),
				ColumnName:  numCol,
				Confidence:  r2,
				Importance:  math.Min(math.Abs(change)/100, 1.0),
				Metadata: map[string]interface{}{
					"date_column":       dateCol,
					"direction":         direction,
					"slope":             slope,
					"r_squared":         r2,
					"percentage_change": round2(change),
					"data_points":       len(series),
				},
			})
		}
	}
	return out
}

// dateOrderedSeries returns the numeric column's values sorted by the
// date column, keeping only rows where both parse.
func dateOrderedSeries(t *tabular.Table, dateCol, numCol string) []float64 {
	type point struct {
		when  time.Time
		value float64
	}
	points := []point{}
	for _, row := range t.Rows {
		when, _, ok := parseDate(asString(row[dateCol]))
		if !ok {
			continue
		}
		v, vok := asFloat(row[numCol])
		if !vok {
			continue
		}
		points = append(points, point{when: when, value: v})
	}
	sort.SliceStable(points, func(a, b int) bool {
		return points[a].when.Before(points[b].when)
	})
	series := make([]float64, len(points))
	for i, p := range points {
		series[i] = p.value
	}
	return series
}

// topContributorInsights flags a category that accounts for more than 30%
// of a numeric column's total.
func topContributorInsights(t *tabular.Table, types map[string]string) []Insight {
	catCols := []string{}
	numericCols := []string{}
	for _, col := range t.Columns {
		switch types[col] {
		case "categorical":
			catCols = append(catCols, col)
		case "numeric":
			numericCols = append(numericCols, col)
		}
	}

	out := []Insight{}
	for _, catCol := range catCols {
		for _, numCol := range numericCols {
			totals := make(map[string]float64)
			grand := 0.0
			for _, row := range t.Rows {
				v, ok := asFloat(row[numCol])
				if !ok {
					continue
				}
				totals[asString(row[catCol])] += v
				grand += v
			}
			if grand <= 0 {
				continue
			}
			topValue := ""
			topTotal := 0.0
			for value, total := range totals {
				if total > topTotal {
					topValue, topTotal = value, total
				}
			}
			share := topTotal / grand * 100
			if share <= 30 {
				continue
			}
			out = append(out, Insight{
				Type:        "top_contributor",
				Category:    "pattern",
				Title:       fmt.Sprintf("%s Dominates %s", topValue, numCol),
				Description: fmt.Sprintf("'%s' accounts for %.1f%% of total '%s' across '%s'", topValue, share, numCol, catCol),
				ColumnName:  catCol,
				Confidence:  math.Min(share/100, 1.0),
				Importance:  math.Min(share/50, 1.0),
				Metadata: map[string]interface{}{
					"category_column": catCol,
					"value_column":    numCol,
					"top_value":       topValue,
					"share":           round2(share),
					"total":           grand,
				},
			})
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
