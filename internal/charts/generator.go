// Package charts implements the chart pipeline: filtering and aggregating
// tabular rows into label/series data, and mapping that data to concrete
// render specifications.
package charts

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// GenerateWidget runs the widget's filters and config through the pipeline.
func GenerateWidget(rows []Row, widget ChartWidget) ChartData {
	return Generate(ApplyFilters(rows, widget.Filters), widget.Config)
}

// Generate transforms raw rows into ChartData. Labels are the distinct
// x_axis values in first-seen row order. With group_by set, one dataset is
// produced per distinct group value and every series has one entry per
// label; combinations with no matching rows aggregate to 0 so the result
// stays rectangular. A config missing either axis yields an empty result
// rather than an error, and aggregation over an empty match set yields 0,
// never NaN.
func Generate(rows []Row, config ChartConfig) ChartData {
	if strings.TrimSpace(config.XAxis) == "" || strings.TrimSpace(config.YAxis) == "" {
		return ChartData{Labels: []string{}, Datasets: []ChartDataset{}}
	}

	grouped := config.GroupBy != ""

	labels := make([]string, 0)
	labelIndex := make(map[string]int)
	groups := make([]string, 0)
	groupIndex := make(map[string]int)

	type cell struct {
		values []float64
		rows   int
	}
	cells := make(map[[2]int]*cell)

	for _, row := range rows {
		xRaw, ok := row[config.XAxis]
		if !ok || xRaw == nil {
			continue
		}

		gi := 0
		if grouped {
			gRaw, ok := row[config.GroupBy]
			if !ok || gRaw == nil {
				continue
			}
			group := stringify(gRaw)
			gi, ok = groupIndex[group]
			if !ok {
				gi = len(groups)
				groupIndex[group] = gi
				groups = append(groups, group)
			}
		}

		label := stringify(xRaw)
		li, ok := labelIndex[label]
		if !ok {
			li = len(labels)
			labelIndex[label] = li
			labels = append(labels, label)
		}

		key := [2]int{li, gi}
		c := cells[key]
		if c == nil {
			c = &cell{}
			cells[key] = c
		}
		c.rows++
		if v, numeric := toFloat(row[config.YAxis]); numeric {
			c.values = append(c.values, v)
		}
	}

	if len(labels) == 0 {
		return ChartData{Labels: []string{}, Datasets: []ChartDataset{}}
	}

	seriesFor := func(gi int) []float64 {
		data := make([]float64, len(labels))
		for li := range labels {
			c := cells[[2]int{li, gi}]
			if c == nil {
				data[li] = aggregate(nil, 0, config.Aggregation)
				continue
			}
			data[li] = aggregate(c.values, c.rows, config.Aggregation)
		}
		return data
	}

	datasets := make([]ChartDataset, 0, 1)
	if grouped {
		for gi, group := range groups {
			datasets = append(datasets, ChartDataset{Label: group, Data: seriesFor(gi)})
		}
	} else {
		name := config.Label
		if name == "" {
			name = config.YAxis
		}
		datasets = append(datasets, ChartDataset{Label: name, Data: seriesFor(0)})
	}

	result := ChartData{Labels: labels, Datasets: datasets}
	applySortOrder(&result, config.SortOrder)
	applyLimit(&result, config.Limit)
	return result
}

// aggregate reduces one (label, group) cell. matchedRows is the number of
// rows in the cell; values holds only the y values that parsed as numbers.
// Every reduction of an empty cell is 0 by convention, including min and
// max, so charts never see NaN.
func aggregate(values []float64, matchedRows int, agg Aggregation) float64 {
	if matchedRows == 0 {
		return 0
	}
	switch agg {
	case AggCount:
		return float64(matchedRows)
	case AggAvg:
		return sum(values) / float64(matchedRows)
	case AggMin:
		if len(values) == 0 {
			return 0
		}
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case AggMax:
		if len(values) == 0 {
			return 0
		}
		max := values[0]
		for _, v := range values[1:] {
			if v > max {
				max = v
			}
		}
		return max
	case AggMedian:
		if len(values) == 0 {
			return 0
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid]
		}
		return (sorted[mid-1] + sorted[mid]) / 2
	default:
		// sum, and the fallback for unrecognized aggregations
		return sum(values)
	}
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// applySortOrder reorders the label axis by the first dataset's values,
// permuting every series identically. An empty or unknown order keeps the
// first-seen label order.
func applySortOrder(data *ChartData, order string) {
	order = strings.ToLower(order)
	if order != "asc" && order != "desc" {
		return
	}
	if len(data.Datasets) == 0 || len(data.Labels) < 2 {
		return
	}

	first := data.Datasets[0].Data
	idx := make([]int, len(data.Labels))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if order == "asc" {
			return first[idx[a]] < first[idx[b]]
		}
		return first[idx[a]] > first[idx[b]]
	})

	labels := make([]string, len(idx))
	for i, j := range idx {
		labels[i] = data.Labels[j]
	}
	data.Labels = labels
	for d := range data.Datasets {
		old := data.Datasets[d].Data
		permuted := make([]float64, len(idx))
		for i, j := range idx {
			permuted[i] = old[j]
		}
		data.Datasets[d].Data = permuted
	}
}

// applyLimit truncates the label axis and every series after sorting.
func applyLimit(data *ChartData, limit int) {
	if limit <= 0 || limit >= len(data.Labels) {
		return
	}
	data.Labels = data.Labels[:limit]
	for d := range data.Datasets {
		data.Datasets[d].Data = data.Datasets[d].Data[:limit]
	}
}

// ApplyFilters returns the rows matching every filter. Filters with an
// empty column are incomplete and ignored; filters naming a column the row
// does not carry match nothing.
func ApplyFilters(rows []Row, filters []Filter) []Row {
	if len(filters) == 0 {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		matched := true
		for _, f := range filters {
			if !matchFilter(row, f) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, row)
		}
	}
	return out
}

func matchFilter(row Row, f Filter) bool {
	if f.Column == "" {
		return true
	}
	raw, ok := row[f.Column]
	if !ok || raw == nil {
		return false
	}

	switch f.Operator {
	case OpEquals:
		return looseEqual(raw, f.Value)
	case OpNotEquals:
		return !looseEqual(raw, f.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(stringify(raw)), strings.ToLower(stringify(f.Value)))
	case OpGreaterThan:
		return compare(raw, f.Value) > 0
	case OpLessThan:
		return compare(raw, f.Value) < 0
	case OpBetween:
		lo, hi, ok := betweenBounds(f.Value)
		if !ok {
			return false
		}
		v, numeric := toFloat(raw)
		if !numeric {
			return false
		}
		return v >= lo && v <= hi
	default:
		return false
	}
}

// looseEqual compares numerically when both sides parse as numbers, so a
// CSV "30" matches a filter value of 30, and falls back to exact string
// comparison otherwise.
func looseEqual(a, b interface{}) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return stringify(a) == stringify(b)
}

// compare orders numerically when both sides are numbers and lexically
// otherwise.
func compare(a, b interface{}) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}

// betweenBounds extracts the inclusive [lo, hi] range from a between
// filter's value, which arrives as a two-element list.
func betweenBounds(v interface{}) (float64, float64, bool) {
	var parts []interface{}
	switch t := v.(type) {
	case []interface{}:
		parts = t
	case []float64:
		for _, f := range t {
			parts = append(parts, f)
		}
	case []int:
		for _, n := range t {
			parts = append(parts, n)
		}
	case []string:
		for _, s := range t {
			parts = append(parts, s)
		}
	default:
		return 0, 0, false
	}
	if len(parts) < 2 {
		return 0, 0, false
	}
	lo, lok := toFloat(parts[0])
	hi, hok := toFloat(parts[1])
	if !lok || !hok {
		return 0, 0, false
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// toFloat coerces the usual JSON and CSV cell representations to float64.
// NaN and infinities are rejected so they cannot poison an aggregate.
func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// stringify renders a cell value as a label.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}
