package domain

// Summary holds dataset-level statistics over the produced daily rows.
// Statistics without a defined value are NaN.
type Summary struct {
	Rows                int     `json:"rows"`
	DroppedDays         int     `json:"dropped_days"`
	PctMissingClose11am float64 `json:"pct_missing_close_11am"`
	MeanPctChange5Min   float64 `json:"mean_pct_change_5min"`
	MedianPctChange5Min float64 `json:"median_pct_change_5min"`
	MeanPctMove         float64 `json:"mean_pct_move"`
	MedianPctMove       float64 `json:"median_pct_move"`
	HitRate             float64 `json:"hit_rate"`
}

// SummaryMetric is one formatted row of the metric/value table.
type SummaryMetric struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// SummaryColumns is the header of the metric/value table.
var SummaryColumns = []string{"metric", "value"}
