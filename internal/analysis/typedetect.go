package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/expertbi/expertbi-api/internal/tabular"
)

// detectSampleCap bounds how many non-null values each detector inspects.
const detectSampleCap = 1000

// ColumnType is the detection result for one column.
type ColumnType struct {
	DetectedType     string                 `json:"detected_type"`
	Confidence       float64                `json:"confidence"`
	NullCount        int                    `json:"null_count"`
	NullPercentage   float64                `json:"null_percentage"`
	UniqueCount      int                    `json:"unique_count"`
	UniquePercentage float64                `json:"unique_percentage"`
	SampleValues     []string               `json:"sample_values"`
	Statistics       *NumericStats          `json:"statistics,omitempty"`
	DateRange        *DateRange             `json:"date_range,omitempty"`
	Categories       []CategoryCount        `json:"categories,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

// NumericStats summarizes a numeric-like column.
type NumericStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// DateRange summarizes a date or datetime column.
type DateRange struct {
	MinDate   string `json:"min_date"`
	MaxDate   string `json:"max_date"`
	RangeDays int    `json:"range_days"`
}

// CategoryCount is one value of a categorical column with its frequency.
type CategoryCount struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TypeDetection is the full per-dataset detection result.
type TypeDetection struct {
	TotalColumns int                   `json:"total_columns"`
	Columns      map[string]ColumnType `json:"columns"`
	Summary      TypeSummary           `json:"summary"`
}

// TypeSummary aggregates the detected types across the dataset.
type TypeSummary struct {
	TypeDistribution map[string]int `json:"type_distribution"`
	TotalColumns     int            `json:"total_columns"`
	HasDates         bool           `json:"has_dates"`
	HasGeo           bool           `json:"has_geo"`
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlPattern   = regexp.MustCompile(`^https?://\S+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
	uuidPattern  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phoneStrip   = regexp.MustCompile(`[\s\-().]`)
	moneyStrip   = regexp.MustCompile(`[$£€¥,]`)
)

// boolSets are the value vocabularies recognized as boolean columns.
var boolSets = [][]string{
	{"true", "false"},
	{"yes", "no"},
	{"y", "n"},
	{"1", "0"},
	{"t", "f"},
	{"on", "off"},
	{"active", "inactive"},
	{"enabled", "disabled"},
}

// DetectTypes runs the prioritized detector chain over every column.
func DetectTypes(t *tabular.Table) TypeDetection {
	columns := make(map[string]ColumnType, len(t.Columns))
	for _, col := range t.Columns {
		columns[col] = detectColumn(t, col)
	}

	dist := make(map[string]int)
	hasDates := false
	hasGeo := false
	for _, ct := range columns {
		dist[ct.DetectedType]++
		if ct.DetectedType == "date" || ct.DetectedType == "datetime" {
			hasDates = true
		}
		if ct.DetectedType == "latitude" || ct.DetectedType == "longitude" {
			hasGeo = true
		}
	}

	return TypeDetection{
		TotalColumns: len(t.Columns),
		Columns:      columns,
		Summary: TypeSummary{
			TypeDistribution: dist,
			TotalColumns:     len(columns),
			HasDates:         hasDates,
			HasGeo:           hasGeo,
		},
	}
}

// detectColumn tries each detector in order of specificity; the first
// match wins, and "text" is the unconditional fallback.
func detectColumn(t *tabular.Table, column string) ColumnType {
	values := t.Column(column)
	total := t.RowCount()
	nullCount := total - len(values)

	result := ColumnType{
		DetectedType: "empty",
		Confidence:   1,
		NullCount:    nullCount,
		UniqueCount:  distinctCount(values),
		Metadata:     map[string]interface{}{},
	}
	if total > 0 {
		result.NullPercentage = float64(nullCount) / float64(total) * 100
		result.UniquePercentage = float64(result.UniqueCount) / float64(total) * 100
	}
	for i := 0; i < len(values) && i < 5; i++ {
		result.SampleValues = append(result.SampleValues, asString(values[i]))
	}
	if len(values) == 0 {
		return result
	}

	sample := values
	if len(sample) > detectSampleCap {
		sample = sample[:detectSampleCap]
	}
	strs := make([]string, len(sample))
	for i, v := range sample {
		strs[i] = asString(v)
	}
	numeric := numericValues(sample)
	numericRatio := float64(len(numeric)) / float64(len(sample))
	uniqueRatio := float64(result.UniqueCount) / float64(len(values))
	nameLower := strings.ToLower(column)

	type detector struct {
		name string
		fn   func() (bool, float64)
	}
	detectors := []detector{
		{"id", func() (bool, float64) { return detectID(nameLower, numeric, numericRatio, uniqueRatio) }},
		{"email", func() (bool, float64) { return matchRatio(strs, emailPattern, 0.8) }},
		{"url", func() (bool, float64) { return matchRatio(strs, urlPattern, 0.8) }},
		{"phone", func() (bool, float64) { return detectPhone(strs) }},
		{"currency", func() (bool, float64) { return detectCurrency(nameLower, strs) }},
		{"percentage", func() (bool, float64) { return detectPercentage(nameLower, strs) }},
		{"date", func() (bool, float64) { return detectDate(strs, false) }},
		{"datetime", func() (bool, float64) { return detectDate(strs, true) }},
		{"boolean", func() (bool, float64) { return detectBoolean(strs) }},
		{"uuid", func() (bool, float64) { return matchRatio(strs, uuidPattern, 0.8) }},
		{"zip_code", func() (bool, float64) { return detectZip(nameLower, strs) }},
		{"latitude", func() (bool, float64) { return detectGeo(nameLower, numeric, numericRatio, []string{"lat"}, 90) }},
		{"longitude", func() (bool, float64) { return detectGeo(nameLower, numeric, numericRatio, []string{"lon", "lng", "long"}, 180) }},
		{"numeric", func() (bool, float64) { return detectNumeric(numericRatio, uniqueRatio) }},
		{"categorical", func() (bool, float64) { return detectCategorical(uniqueRatio) }},
	}

	result.DetectedType = "text"
	result.Confidence = 0.5
	for _, d := range detectors {
		if ok, confidence := d.fn(); ok {
			result.DetectedType = d.name
			result.Confidence = confidence
			break
		}
	}

	switch result.DetectedType {
	case "numeric", "currency", "percentage", "latitude", "longitude":
		result.Statistics = summarizeNumeric(numeric)
	case "date", "datetime":
		result.DateRange = summarizeDates(strs)
	case "categorical":
		result.Categories = topCategories(values, 10)
		result.Metadata["cardinality"] = result.UniqueCount
	}
	return result
}

func distinctCount(values []interface{}) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[asString(v)] = struct{}{}
	}
	return len(seen)
}

func matchRatio(strs []string, re *regexp.Regexp, threshold float64) (bool, float64) {
	if len(strs) == 0 {
		return false, 0
	}
	matches := 0
	for _, s := range strs {
		if re.MatchString(s) {
			matches++
		}
	}
	ratio := float64(matches) / float64(len(strs))
	return ratio > threshold, ratio
}

func detectID(name string, numeric []float64, numericRatio, uniqueRatio float64) (bool, float64) {
	idName := strings.Contains(name, "id") || strings.Contains(name, "key") ||
		strings.Contains(name, "index") || strings.Contains(name, "code")
	if idName && uniqueRatio > 0.95 {
		return true, 0.95
	}
	// Sequential numeric values are an id even without an id-like name.
	if numericRatio > 0.99 && len(numeric) > 2 {
		sorted := append([]float64(nil), numeric...)
		sort.Float64s(sorted)
		steps := 0
		for i := 1; i < len(sorted); i++ {
			if sorted[i]-sorted[i-1] == 1 {
				steps++
			}
		}
		if float64(steps)/float64(len(sorted)-1) > 0.8 {
			return true, 0.9
		}
	}
	return false, 0
}

func detectPhone(strs []string) (bool, float64) {
	if len(strs) == 0 {
		return false, 0
	}
	matches := 0
	for _, s := range strs {
		if phonePattern.MatchString(phoneStrip.ReplaceAllString(s, "")) && len(s) >= 7 {
			matches++
		}
	}
	ratio := float64(matches) / float64(len(strs))
	return ratio > 0.7, ratio
}

func detectCurrency(name string, strs []string) (bool, float64) {
	keywords := []string{"price", "cost", "amount", "revenue", "salary", "fee", "total", "sum"}
	hasName := false
	for _, k := range keywords {
		if strings.Contains(name, k) {
			hasName = true
			break
		}
	}

	symbols := 0
	numericAfterClean := 0
	for _, s := range strs {
		if strings.ContainsAny(s, "$£€¥") {
			symbols++
		}
		if _, ok := asFloat(moneyStrip.ReplaceAllString(s, "")); ok {
			numericAfterClean++
		}
	}
	hasSymbol := float64(symbols)/float64(len(strs)) > 0.3
	cleanNumeric := float64(numericAfterClean)/float64(len(strs)) > 0.8

	if (hasName || hasSymbol) && cleanNumeric {
		return true, 0.85
	}
	return false, 0
}

func detectPercentage(name string, strs []string) (bool, float64) {
	if !strings.Contains(name, "percent") && !strings.Contains(name, "rate") && !strings.Contains(name, "ratio") {
		return false, 0
	}
	symbols := 0
	inRange := 0
	parsed := 0
	for _, s := range strs {
		if strings.Contains(s, "%") {
			symbols++
		}
		if f, ok := asFloat(strings.TrimSuffix(s, "%")); ok {
			parsed++
			if f >= 0 && f <= 100 {
				inRange++
			}
		}
	}
	hasSymbol := float64(symbols)/float64(len(strs)) > 0.3
	mostlyInRange := parsed > 0 && float64(inRange)/float64(parsed) > 0.8
	if hasSymbol || mostlyInRange {
		return true, 0.9
	}
	return false, 0
}

func detectDate(strs []string, wantTime bool) (bool, float64) {
	if len(strs) == 0 {
		return false, 0
	}
	matches := 0
	withTime := 0
	for _, s := range strs {
		if _, hasTime, ok := parseDate(s); ok {
			matches++
			if hasTime {
				withTime++
			}
		}
	}
	ratio := float64(matches) / float64(len(strs))
	if ratio <= 0.8 {
		return false, 0
	}
	anyTime := withTime > 0
	if anyTime != wantTime {
		return false, 0
	}
	return true, ratio
}

func detectBoolean(strs []string) (bool, float64) {
	distinct := make(map[string]struct{})
	for _, s := range strs {
		distinct[strings.ToLower(s)] = struct{}{}
	}
	for _, set := range boolSets {
		allowed := make(map[string]struct{}, len(set))
		for _, v := range set {
			allowed[v] = struct{}{}
		}
		subset := true
		for v := range distinct {
			if _, ok := allowed[v]; !ok {
				subset = false
				break
			}
		}
		if subset && len(distinct) > 0 {
			return true, 0.95
		}
	}
	return false, 0
}

func detectZip(name string, strs []string) (bool, float64) {
	if !strings.Contains(name, "zip") && !strings.Contains(name, "postal") && !strings.Contains(name, "postcode") {
		return false, 0
	}
	return matchRatio(strs, zipPattern, 0.7)
}

func detectGeo(name string, numeric []float64, numericRatio float64, keywords []string, bound float64) (bool, float64) {
	named := false
	for _, k := range keywords {
		if strings.Contains(name, k) {
			named = true
			break
		}
	}
	if !named || numericRatio < 0.95 || len(numeric) == 0 {
		return false, 0
	}
	inRange := 0
	for _, v := range numeric {
		if v >= -bound && v <= bound {
			inRange++
		}
	}
	if float64(inRange)/float64(len(numeric)) > 0.95 {
		return true, 0.9
	}
	return false, 0
}

func detectNumeric(numericRatio, uniqueRatio float64) (bool, float64) {
	if numericRatio < 0.95 {
		return false, 0
	}
	if uniqueRatio > 0.5 {
		return true, 0.95
	}
	return true, 0.9
}

func detectCategorical(uniqueRatio float64) (bool, float64) {
	if uniqueRatio < 0.5 {
		return true, 1 - uniqueRatio
	}
	return false, 0
}

func summarizeNumeric(values []float64) *NumericStats {
	if len(values) == 0 {
		return nil
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return &NumericStats{
		Min:    min,
		Max:    max,
		Mean:   mean(values),
		Median: median(values),
		Std:    stddev(values),
		Q25:    quantile(values, 0.25),
		Q75:    quantile(values, 0.75),
	}
}

func summarizeDates(strs []string) *DateRange {
	var minDate, maxDate int64
	found := false
	for _, s := range strs {
		t, _, ok := parseDate(s)
		if !ok {
			continue
		}
		unix := t.Unix()
		if !found {
			minDate, maxDate = unix, unix
			found = true
			continue
		}
		if unix < minDate {
			minDate = unix
		}
		if unix > maxDate {
			maxDate = unix
		}
	}
	if !found {
		return nil
	}
	const day = 24 * 60 * 60
	return &DateRange{
		MinDate:   isoDate(minDate),
		MaxDate:   isoDate(maxDate),
		RangeDays: int((maxDate - minDate) / day),
	}
}

func topCategories(values []interface{}, limit int) []CategoryCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, v := range values {
		s := asString(v)
		if _, ok := counts[s]; !ok {
			order = append(order, s)
		}
		counts[s]++
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	out := make([]CategoryCount, 0, len(order))
	for _, s := range order {
		out = append(out, CategoryCount{
			Value:      s,
			Count:      counts[s],
			Percentage: float64(counts[s]) / float64(len(values)) * 100,
		})
	}
	return out
}
