package domain

// ExportResult is the normalized tabular payload returned by the provider's
// export API. Produced fresh per call, never cached.
type ExportResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// AggregationSpec names the columns for the grouped-sum helper.
type AggregationSpec struct {
	GroupBy   string `json:"group_by"`
	SumColumn string `json:"sum_column"`
}
