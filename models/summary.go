package models

import "time"

// Metric aggregates one numeric column for a locality.
type Metric struct {
	Mean float64
	Min  float64
	Max  float64
}

// LocalitySummary holds the aggregated statistics of one canonical locality.
type LocalitySummary struct {
	Locality string
	Rows     int
	Price    Metric
	PriceStd float64
	Rate     Metric
	Rent     Metric
	ROI      Metric
}

// SummaryTable is the immutable result of merging the price and rent
// datasets. It is never modified after construction; a rebuild produces a
// new table.
type SummaryTable struct {
	Merged     []MergedRecord
	Summaries  map[string]*LocalitySummary
	Localities []string
	BuiltAt    time.Time
}

// EmptySummaryTable returns a table that answers "not found" for everything.
func EmptySummaryTable() *SummaryTable {
	return &SummaryTable{
		Summaries:  map[string]*LocalitySummary{},
		Localities: []string{},
		BuiltAt:    time.Now(),
	}
}

// IsEmpty reports whether the table holds no localities.
func (t *SummaryTable) IsEmpty() bool {
	return t == nil || len(t.Summaries) == 0
}

// Range is a closed min/max interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// StatsRecord is the caller-facing view of a LocalitySummary, rounded to two
// decimals.
type StatsRecord struct {
	Locality   string  `json:"locality"`
	AvgPrice   float64 `json:"avg_price"`
	PriceRange Range   `json:"price_range"`
	AvgRent    float64 `json:"avg_rent"`
	AvgROI     float64 `json:"avg_roi"`
	ROIRange   Range   `json:"roi_range"`
	AvgRate    float64 `json:"avg_rate"`
}
