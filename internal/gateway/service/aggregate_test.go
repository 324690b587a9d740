package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
)

func TestAggregateGroupedSum(t *testing.T) {
	t.Parallel()

	result := &domain.ExportResult{
		Columns: []string{"region", "amount"},
		Rows: [][]any{
			{"a", json.Number("3")},
			{"b", json.Number("2")},
			{"a", json.Number("5")},
		},
	}

	out, err := Aggregate(result, domain.AggregationSpec{GroupBy: "region", SumColumn: "amount"})
	require.NoError(t, err)
	require.Equal(t, []string{"region", "amount"}, out.Columns)
	require.Equal(t, [][]any{
		{"a", int64(8)},
		{"b", int64(2)},
	}, out.Rows, "groups keep first-seen order")
}

func TestAggregateNonNumericCountsAsZero(t *testing.T) {
	t.Parallel()

	result := &domain.ExportResult{
		Columns: []string{"region", "amount"},
		Rows: [][]any{
			{"a", json.Number("3")},
			{"a", "n/a"},
			{"b", nil},
		},
	}

	out, err := Aggregate(result, domain.AggregationSpec{GroupBy: "region", SumColumn: "amount"})
	require.NoError(t, err)
	require.Equal(t, [][]any{
		{"a", int64(3)},
		{"b", int64(0)},
	}, out.Rows)
}

func TestAggregatePromotesToFloatOnFraction(t *testing.T) {
	t.Parallel()

	result := &domain.ExportResult{
		Columns: []string{"region", "amount"},
		Rows: [][]any{
			{"a", json.Number("3")},
			{"a", json.Number("1.5")},
			{"a", json.Number("2")},
		},
	}

	out, err := Aggregate(result, domain.AggregationSpec{GroupBy: "region", SumColumn: "amount"})
	require.NoError(t, err)
	require.Equal(t, [][]any{{"a", 6.5}}, out.Rows)
}

func TestAggregateNumericStringsSum(t *testing.T) {
	t.Parallel()

	result := &domain.ExportResult{
		Columns: []string{"region", "amount"},
		Rows: [][]any{
			{"a", "10"},
			{"a", "2.5"},
		},
	}

	out, err := Aggregate(result, domain.AggregationSpec{GroupBy: "region", SumColumn: "amount"})
	require.NoError(t, err)
	require.Equal(t, [][]any{{"a", 12.5}}, out.Rows)
}

func TestAggregateEmptyResult(t *testing.T) {
	t.Parallel()

	result := &domain.ExportResult{Columns: []string{"region", "amount"}, Rows: [][]any{}}

	out, err := Aggregate(result, domain.AggregationSpec{GroupBy: "region", SumColumn: "amount"})
	require.NoError(t, err)
	require.NotNil(t, out.Rows)
	require.Empty(t, out.Rows)
}

func TestAggregateUnknownColumns(t *testing.T) {
	t.Parallel()

	result := &domain.ExportResult{Columns: []string{"region", "amount"}}

	_, err := Aggregate(result, domain.AggregationSpec{GroupBy: "nope", SumColumn: "amount"})
	require.Error(t, err)
	require.True(t, domain.IsKind(err, domain.KindValidation))
	require.Contains(t, err.Error(), "group_by")

	_, err = Aggregate(result, domain.AggregationSpec{GroupBy: "region", SumColumn: "nope"})
	require.Error(t, err)
	require.True(t, domain.IsKind(err, domain.KindValidation))
	require.Contains(t, err.Error(), "sum_column")
}

func TestAggregateMixedGroupKeyTypes(t *testing.T) {
	t.Parallel()

	result := &domain.ExportResult{
		Columns: []string{"code", "amount"},
		Rows: [][]any{
			{json.Number("7"), json.Number("1")},
			{"7", json.Number("2")},
		},
	}

	out, err := Aggregate(result, domain.AggregationSpec{GroupBy: "code", SumColumn: "amount"})
	require.NoError(t, err)
	require.Equal(t, [][]any{{json.Number("7"), int64(3)}}, out.Rows,
		"numerically equal keys share one bucket; the first-seen value is kept")
}

func TestAggregatePreservesOriginalGroupValues(t *testing.T) {
	t.Parallel()

	result := &domain.ExportResult{
		Columns: []string{"code", "amount"},
		Rows: [][]any{
			{json.Number("1.5"), json.Number("1")},
			{true, json.Number("2")},
			{nil, json.Number("4")},
			{json.Number("1.5"), json.Number("8")},
		},
	}

	out, err := Aggregate(result, domain.AggregationSpec{GroupBy: "code", SumColumn: "amount"})
	require.NoError(t, err)
	require.Equal(t, [][]any{
		{json.Number("1.5"), int64(9)},
		{true, int64(2)},
		{nil, int64(4)},
	}, out.Rows, "group values round-trip untouched, not stringified")
}
