package analysis

import (
	"sort"
	"strings"

	"github.com/expertbi/expertbi-api/internal/tabular"
)

// Profile is the stored column-by-column statistical profile of a dataset.
type Profile struct {
	RowCount            int                        `json:"row_count"`
	ColumnCount         int                        `json:"column_count"`
	ColumnTypes         map[string]string          `json:"column_types"`
	TypeDistribution    map[string]int             `json:"type_distribution"`
	NumericAnalysis     map[string]NumericProfile  `json:"numeric_analysis"`
	CategoricalAnalysis map[string]CategoryProfile `json:"categorical_analysis"`
	DateAnalysis        map[string]DateProfile     `json:"date_analysis"`
	DataQuality         QualityReport              `json:"data_quality"`
	ColumnList          []string                   `json:"column_list"`
}

// NumericProfile summarizes one numeric column.
type NumericProfile struct {
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	Std               float64 `json:"std"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	Q25               float64 `json:"q25"`
	Q75               float64 `json:"q75"`
	Skewness          float64 `json:"skewness"`
	NullCount         int     `json:"null_count"`
	NullPercentage    float64 `json:"null_percentage"`
	UniqueCount       int     `json:"unique_count"`
	ZerosCount        int     `json:"zeros_count"`
	NegativeCount     int     `json:"negative_count"`
	PositiveCount     int     `json:"positive_count"`
	OutlierCount      int     `json:"outlier_count"`
	OutlierPercentage float64 `json:"outlier_percentage"`
}

// CategoryProfile summarizes one categorical column.
type CategoryProfile struct {
	UniqueCount            int             `json:"unique_count"`
	MostFrequent           string          `json:"most_frequent"`
	MostFrequentCount      int             `json:"most_frequent_count"`
	MostFrequentPercentage float64         `json:"most_frequent_percentage"`
	LeastFrequent          string          `json:"least_frequent"`
	LeastFrequentCount     int             `json:"least_frequent_count"`
	NullCount              int             `json:"null_count"`
	NullPercentage         float64         `json:"null_percentage"`
	TopValues              []CategoryCount `json:"top_5_values"`
}

// DateProfile summarizes one date column.
type DateProfile struct {
	MinDate        string  `json:"min_date"`
	MaxDate        string  `json:"max_date"`
	DateRangeDays  int     `json:"date_range_days"`
	NullCount      int     `json:"null_count"`
	NullPercentage float64 `json:"null_percentage"`
	UniqueCount    int     `json:"unique_count"`
}

// QualityReport scores the dataset: completeness (non-null cell share)
// weighted 0.6 and uniqueness (non-duplicate row share) weighted 0.4,
// both on a 0-100 scale.
type QualityReport struct {
	OverallScore  float64 `json:"overall_score"`
	Completeness  float64 `json:"completeness"`
	Uniqueness    float64 `json:"uniqueness"`
	TotalCells    int     `json:"total_cells"`
	NullCells     int     `json:"null_cells"`
	DuplicateRows int     `json:"duplicate_rows"`
}

// BuildProfile computes the complete profile for a parsed table. Column
// classification here is the coarse profiling taxonomy (date, numeric,
// id, boolean, categorical, text, empty); the fine-grained semantic pass
// lives in DetectTypes.
func BuildProfile(t *tabular.Table) Profile {
	types := profileColumnTypes(t)

	dist := make(map[string]int)
	for _, ct := range types {
		dist[ct]++
	}

	profile := Profile{
		RowCount:            t.RowCount(),
		ColumnCount:         t.ColumnCount(),
		ColumnTypes:         types,
		TypeDistribution:    dist,
		NumericAnalysis:     make(map[string]NumericProfile),
		CategoricalAnalysis: make(map[string]CategoryProfile),
		DateAnalysis:        make(map[string]DateProfile),
		DataQuality:         qualityReport(t),
		ColumnList:          append([]string(nil), t.Columns...),
	}

	for col, colType := range types {
		switch colType {
		case "numeric":
			profile.NumericAnalysis[col] = numericProfile(t, col)
		case "categorical":
			profile.CategoricalAnalysis[col] = categoryProfile(t, col)
		case "date":
			profile.DateAnalysis[col] = dateProfile(t, col)
		}
	}
	return profile
}

// profileColumnTypes classifies each column into the profiling taxonomy.
func profileColumnTypes(t *tabular.Table) map[string]string {
	types := make(map[string]string, len(t.Columns))
	for _, col := range t.Columns {
		values := t.Column(col)
		if len(values) == 0 {
			types[col] = "empty"
			continue
		}

		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = asString(v)
		}
		if ok, _ := detectDate(head(strs, 100), false); ok {
			types[col] = "date"
			continue
		}
		if ok, _ := detectDate(head(strs, 100), true); ok {
			types[col] = "date"
			continue
		}

		numeric := numericValues(values)
		uniqueCount := distinctCount(values)
		uniqueRatio := float64(uniqueCount) / float64(len(values))

		if float64(len(numeric))/float64(len(values)) > 0.95 {
			switch {
			case uniqueRatio < 0.05 && uniqueCount < 20:
				types[col] = "categorical"
			case isIDName(col) && uniqueRatio > 0.95:
				types[col] = "id"
			default:
				types[col] = "numeric"
			}
			continue
		}
		if ok, _ := detectBoolean(strs); ok && uniqueCount <= 2 {
			types[col] = "boolean"
			continue
		}
		if uniqueRatio < 0.5 {
			types[col] = "categorical"
		} else {
			types[col] = "text"
		}
	}
	return types
}

func isIDName(col string) bool {
	lower := strings.ToLower(col)
	return strings.Contains(lower, "id") || strings.Contains(lower, "key")
}

func head(strs []string, n int) []string {
	if len(strs) <= n {
		return strs
	}
	return strs[:n]
}

func numericProfile(t *tabular.Table, col string) NumericProfile {
	values := t.Column(col)
	numeric := numericValues(values)
	nullCount := t.RowCount() - len(values)

	p := NumericProfile{
		Mean:        mean(numeric),
		Median:      median(numeric),
		Std:         stddev(numeric),
		Q25:         quantile(numeric, 0.25),
		Q75:         quantile(numeric, 0.75),
		Skewness:    skewness(numeric),
		NullCount:   nullCount,
		UniqueCount: distinctCount(values),
	}
	if t.RowCount() > 0 {
		p.NullPercentage = float64(nullCount) / float64(t.RowCount()) * 100
	}
	if len(numeric) == 0 {
		return p
	}

	p.Min, p.Max = numeric[0], numeric[0]
	for _, v := range numeric {
		if v < p.Min {
			p.Min = v
		}
		if v > p.Max {
			p.Max = v
		}
		switch {
		case v == 0:
			p.ZerosCount++
		case v < 0:
			p.NegativeCount++
		default:
			p.PositiveCount++
		}
	}

	lower, upper := iqrBounds(numeric)
	for _, v := range numeric {
		if v < lower || v > upper {
			p.OutlierCount++
		}
	}
	p.OutlierPercentage = float64(p.OutlierCount) / float64(len(numeric)) * 100
	return p
}

func categoryProfile(t *tabular.Table, col string) CategoryProfile {
	values := t.Column(col)
	nullCount := t.RowCount() - len(values)

	counts := make(map[string]int)
	for _, v := range values {
		counts[asString(v)]++
	}
	ordered := make([]string, 0, len(counts))
	for s := range counts {
		ordered = append(ordered, s)
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		if counts[ordered[a]] != counts[ordered[b]] {
			return counts[ordered[a]] > counts[ordered[b]]
		}
		return ordered[a] < ordered[b]
	})

	p := CategoryProfile{
		UniqueCount: len(ordered),
		NullCount:   nullCount,
		TopValues:   topCategories(values, 5),
	}
	if t.RowCount() > 0 {
		p.NullPercentage = float64(nullCount) / float64(t.RowCount()) * 100
	}
	if len(ordered) > 0 && len(values) > 0 {
		most := ordered[0]
		least := ordered[len(ordered)-1]
		p.MostFrequent = most
		p.MostFrequentCount = counts[most]
		p.MostFrequentPercentage = float64(counts[most]) / float64(len(values)) * 100
		p.LeastFrequent = least
		p.LeastFrequentCount = counts[least]
	}
	return p
}

func dateProfile(t *tabular.Table, col string) DateProfile {
	values := t.Column(col)
	nullCount := t.RowCount() - len(values)

	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = asString(v)
	}
	p := DateProfile{
		NullCount:   nullCount,
		UniqueCount: distinctCount(values),
	}
	if t.RowCount() > 0 {
		p.NullPercentage = float64(nullCount) / float64(t.RowCount()) * 100
	}
	if r := summarizeDates(strs); r != nil {
		p.MinDate = r.MinDate
		p.MaxDate = r.MaxDate
		p.DateRangeDays = r.RangeDays
	}
	return p
}

func qualityReport(t *tabular.Table) QualityReport {
	totalCells := t.RowCount() * t.ColumnCount()
	report := QualityReport{TotalCells: totalCells}
	if totalCells == 0 {
		return report
	}

	nullCells := 0
	seenRows := make(map[string]struct{}, t.RowCount())
	duplicates := 0
	for _, row := range t.Rows {
		var key strings.Builder
		for _, col := range t.Columns {
			v, ok := row[col]
			if !ok || v == nil {
				nullCells++
			}
			key.WriteString(asString(v))
			key.WriteByte('\x1f')
		}
		if _, dup := seenRows[key.String()]; dup {
			duplicates++
		} else {
			seenRows[key.String()] = struct{}{}
		}
	}

	report.NullCells = nullCells
	report.DuplicateRows = duplicates
	report.Completeness = float64(totalCells-nullCells) / float64(totalCells) * 100
	report.Uniqueness = float64(t.RowCount()-duplicates) / float64(t.RowCount()) * 100
	report.OverallScore = report.Completeness*0.6 + report.Uniqueness*0.4
	return report
}
