package services

import (
	"math"
	"sort"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

// Summarizer aggregates merged rows into per-locality statistics.
type Summarizer struct {
	logger *utils.Logger
}

func NewSummarizer(logger *utils.Logger) *Summarizer {
	return &Summarizer{logger: logger}
}

type accumulator struct {
	sum, min, max float64
	n             int
}

func (a *accumulator) add(v float64) {
	if a.n == 0 || v < a.min {
		a.min = v
	}
	if a.n == 0 || v > a.max {
		a.max = v
	}
	a.sum += v
	a.n++
}

// metric clamps the mean into [min, max] so float drift cannot break the
// ordering.
func (a *accumulator) metric() models.Metric {
	if a.n == 0 {
		return models.Metric{}
	}
	return models.Metric{
		Mean: utils.Clamp(a.sum/float64(a.n), a.min, a.max),
		Min:  a.min,
		Max:  a.max,
	}
}

type localityAcc struct {
	price, rate, rent, roi accumulator
	prices                 []float64
}

// Summarize groups rows by locality and returns the summaries together with
// the sorted locality keys.
func (s *Summarizer) Summarize(merged []models.MergedRecord) (map[string]*models.LocalitySummary, []string) {
	groups := make(map[string]*localityAcc)
	for _, r := range merged {
		g, ok := groups[r.Locality]
		if !ok {
			g = &localityAcc{}
			groups[r.Locality] = g
		}
		g.price.add(r.PriceLakh)
		g.rate.add(r.RateSqft)
		g.rent.add(r.Rent)
		g.roi.add(r.ROI)
		g.prices = append(g.prices, r.PriceLakh)
	}

	summaries := make(map[string]*models.LocalitySummary, len(groups))
	localities := make([]string, 0, len(groups))
	for locality, g := range groups {
		price := g.price.metric()
		summaries[locality] = &models.LocalitySummary{
			Locality: locality,
			Rows:     g.price.n,
			Price:    price,
			PriceStd: sampleStd(g.prices, price.Mean),
			Rate:     g.rate.metric(),
			Rent:     g.rent.metric(),
			ROI:      g.roi.metric(),
		}
		localities = append(localities, locality)
	}
	sort.Strings(localities)

	s.logger.Debug("[summarizer] Summarised %d rows into %d localities", len(merged), len(localities))
	return summaries, localities
}

// sampleStd is the n-1 standard deviation; a single value has none and
// reports 0.
func sampleStd(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}
