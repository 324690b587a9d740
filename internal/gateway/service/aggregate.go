package service

import (
	"encoding/json"
	"strconv"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
)

// accumulator keeps integer sums exact until the first fractional value
// forces promotion to float.
type accumulator struct {
	ints     int64
	floats   float64
	promoted bool
}

func (a *accumulator) add(v any) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			a.addInt(i)
			return
		}
		if f, err := n.Float64(); err == nil {
			a.addFloat(f)
			return
		}
	case float64:
		if f := n; f == float64(int64(f)) {
			a.addInt(int64(f))
		} else {
			a.addFloat(f)
		}
	case int:
		a.addInt(int64(n))
	case int64:
		a.addInt(n)
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			a.addInt(i)
			return
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			a.addFloat(f)
			return
		}
	}
	// Non-numeric values contribute zero.
}

func (a *accumulator) addInt(i int64) {
	if a.promoted {
		a.floats += float64(i)
		return
	}
	a.ints += i
}

func (a *accumulator) addFloat(f float64) {
	if !a.promoted {
		a.floats = float64(a.ints)
		a.promoted = true
	}
	a.floats += f
}

func (a *accumulator) value() any {
	if a.promoted {
		return a.floats
	}
	return a.ints
}

// Aggregate reduces an export result into one row per distinct group value,
// summing the named column. Groups appear in first-seen row order and carry
// the first-seen original value, even though bucketing compares values by
// their string form. Missing or non-numeric values count as zero, so a
// partially dirty column still aggregates instead of failing the whole
// request.
func Aggregate(result *domain.ExportResult, spec domain.AggregationSpec) (*domain.ExportResult, error) {
	groupIdx := columnIndex(result.Columns, spec.GroupBy)
	if groupIdx < 0 {
		return nil, domain.Validationf("group_by column %q not present in result", spec.GroupBy)
	}
	sumIdx := columnIndex(result.Columns, spec.SumColumn)
	if sumIdx < 0 {
		return nil, domain.Validationf("sum_column %q not present in result", spec.SumColumn)
	}

	order := make([]string, 0)
	sums := make(map[string]*accumulator)
	firstSeen := make(map[string]any)

	for _, row := range result.Rows {
		key := groupKey(row, groupIdx)
		acc, ok := sums[key]
		if !ok {
			acc = &accumulator{}
			sums[key] = acc
			order = append(order, key)
			if groupIdx < len(row) {
				firstSeen[key] = row[groupIdx]
			}
		}
		if sumIdx < len(row) {
			acc.add(row[sumIdx])
		}
	}

	out := &domain.ExportResult{
		Columns: []string{spec.GroupBy, spec.SumColumn},
		Rows:    make([][]any, 0, len(order)),
	}
	for _, key := range order {
		out.Rows = append(out.Rows, []any{firstSeen[key], sums[key].value()})
	}
	return out, nil
}

func columnIndex(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}

// groupKey stringifies the group value so numerically equal but
// differently typed values still land in one bucket.
func groupKey(row []any, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
