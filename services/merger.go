package services

import (
	"time"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

// LakhToRupees converts lakh to rupees.
const LakhToRupees = 100000.0

// ComputeROI returns the gross rental yield in percent for a monthly rent and
// a price in lakh. It reports false when the price is not positive.
func ComputeROI(monthlyRent, priceLakh float64) (float64, bool) {
	if priceLakh <= 0 {
		return 0, false
	}
	return (monthlyRent * 12) / (priceLakh * LakhToRupees) * 100, true
}

// Merger joins the price and rent datasets and summarises them per locality.
type Merger struct {
	logger     *utils.Logger
	cleaner    *Cleaner
	summarizer *Summarizer
}

// NewMerger creates a Merger resolving localities with resolver.
func NewMerger(resolver *Resolver, logger *utils.Logger) *Merger {
	return &Merger{
		logger:     logger,
		cleaner:    NewCleaner(resolver, logger),
		summarizer: NewSummarizer(logger),
	}
}

// Build inner-joins prices and rents on canonical locality, pairing every
// price row with every rent row of the same locality, and aggregates the
// result. Rows without a partner are dropped. Empty input yields an empty
// table rather than an error.
func (m *Merger) Build(prices []models.RawRecord, rents []models.RawRentRecord) *models.SummaryTable {
	if len(prices) == 0 || len(rents) == 0 {
		m.logger.Warn("[merger] Nothing to merge (prices: %d, rents: %d)", len(prices), len(rents))
		return models.EmptySummaryTable()
	}

	cleanPrices := m.cleaner.CleanPrices(prices)
	cleanRents := m.cleaner.CleanRents(rents)

	rentsByLocality := make(map[string][]float64)
	for _, r := range cleanRents {
		rentsByLocality[r.Locality] = append(rentsByLocality[r.Locality], r.Rent)
	}

	var merged []models.MergedRecord
	for _, p := range cleanPrices {
		for _, rent := range rentsByLocality[p.Locality] {
			roi, ok := ComputeROI(rent, p.PriceLakh)
			if !ok {
				continue
			}
			merged = append(merged, models.MergedRecord{
				Locality:  p.Locality,
				PriceLakh: p.PriceLakh,
				RateSqft:  p.RateSqft,
				Rent:      rent,
				ROI:       roi,
			})
		}
	}

	if len(merged) == 0 {
		m.logger.Warn("[merger] No locality present in both datasets")
		return models.EmptySummaryTable()
	}

	summaries, localities := m.summarizer.Summarize(merged)
	m.logger.Info("[merger] Merged %d rows across %d localities", len(merged), len(localities))

	return &models.SummaryTable{
		Merged:     merged,
		Summaries:  summaries,
		Localities: localities,
		BuiltAt:    time.Now(),
	}
}
