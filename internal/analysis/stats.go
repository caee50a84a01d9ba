// Package analysis is the dataset analysis engine: column type detection,
// data profiling, insight generation and chart recommendations over parsed
// tabular data.
package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// asFloat coerces a cell value to float64. Strings must parse fully; no
// symbol stripping happens here (currency detection does its own cleanup).
func asFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// asString renders a cell value for pattern matching and category counting.
func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// numericValues extracts every value of the slice that parses as a number.
func numericValues(values []interface{}) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := asFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func median(values []float64) float64 {
	return quantile(values, 0.5)
}

// quantile uses linear interpolation between order statistics, matching
// the default of the numeric libraries the stored profiles came from.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// stddev is the sample standard deviation (n-1 denominator).
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	total := 0.0
	for _, v := range values {
		d := v - m
		total += d * d
	}
	return math.Sqrt(total / float64(len(values)-1))
}

// skewness is the adjusted Fisher-Pearson coefficient.
func skewness(values []float64) float64 {
	n := float64(len(values))
	if n < 3 {
		return 0
	}
	s := stddev(values)
	if s == 0 {
		return 0
	}
	m := mean(values)
	total := 0.0
	for _, v := range values {
		d := (v - m) / s
		total += d * d * d
	}
	return n / ((n - 1) * (n - 2)) * total
}

// pearson computes the correlation coefficient of two equal-length series.
func pearson(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0
	}
	mx, my := mean(x), mean(y)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := x[i] - mx
		dy := y[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

// linearFit runs a least-squares fit of y against 0..n-1 and returns the
// slope and coefficient of determination.
func linearFit(y []float64) (slope float64, r2 float64) {
	n := len(y)
	if n < 2 {
		return 0, 0
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	mx, my := mean(x), mean(y)
	var sxy, sxx float64
	for i := 0; i < n; i++ {
		sxy += (x[i] - mx) * (y[i] - my)
		sxx += (x[i] - mx) * (x[i] - mx)
	}
	if sxx == 0 {
		return 0, 0
	}
	slope = sxy / sxx
	intercept := my - slope*mx

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		pred := intercept + slope*x[i]
		ssRes += (y[i] - pred) * (y[i] - pred)
		ssTot += (y[i] - my) * (y[i] - my)
	}
	if ssTot == 0 {
		return slope, 0
	}
	return slope, 1 - ssRes/ssTot
}

// iqrBounds returns the 1.5*IQR outlier fence for a series.
func iqrBounds(values []float64) (lower float64, upper float64) {
	q1 := quantile(values, 0.25)
	q3 := quantile(values, 0.75)
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

// dateFormats are the layouts tried when parsing date-like cells, ordered
// by how often the upload formats occur in practice.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"01-02-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"20060102",
}

// isoDate formats a unix timestamp as an RFC 3339 date-time in UTC.
func isoDate(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}

// parseDate attempts every known layout and reports whether the parsed
// value carries a time-of-day component.
func parseDate(s string) (t time.Time, hasTime bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	for _, layout := range dateFormats {
		parsed, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		hasTime = parsed.Hour() != 0 || parsed.Minute() != 0 || parsed.Second() != 0
		return parsed, hasTime, true
	}
	return time.Time{}, false, false
}
