package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proptech-analytics/models"
)

func TestSummarize(t *testing.T) {
	merged := []models.MergedRecord{
		{Locality: "thane", PriceLakh: 60, RateSqft: 9000, Rent: 20000, ROI: 4},
		{Locality: "thane", PriceLakh: 80, RateSqft: 10000, Rent: 25000, ROI: 3},
		{Locality: "thane", PriceLakh: 100, RateSqft: 11000, Rent: 30000, ROI: 5},
		{Locality: "powai", PriceLakh: 120, RateSqft: 16000, Rent: 40000, ROI: 4},
	}

	summaries, localities := NewSummarizer(newTestLogger()).Summarize(merged)

	require.Equal(t, []string{"powai", "thane"}, localities)
	require.Len(t, summaries, 2)

	thane := summaries["thane"]
	assert.Equal(t, 3, thane.Rows)
	assert.InDelta(t, 80, thane.Price.Mean, 1e-9)
	assert.Equal(t, 60.0, thane.Price.Min)
	assert.Equal(t, 100.0, thane.Price.Max)
	assert.InDelta(t, 20, thane.PriceStd, 1e-9)
	assert.InDelta(t, 10000, thane.Rate.Mean, 1e-9)
	assert.InDelta(t, 25000, thane.Rent.Mean, 1e-9)
	assert.InDelta(t, 4, thane.ROI.Mean, 1e-9)
	assert.Equal(t, 3.0, thane.ROI.Min)
	assert.Equal(t, 5.0, thane.ROI.Max)

	powai := summaries["powai"]
	assert.Equal(t, 1, powai.Rows)
	assert.Equal(t, 0.0, powai.PriceStd)
	assert.Equal(t, powai.Price.Min, powai.Price.Mean)
}

func TestSummarizeEmpty(t *testing.T) {
	summaries, localities := NewSummarizer(newTestLogger()).Summarize(nil)
	assert.Empty(t, summaries)
	assert.Empty(t, localities)
}

func TestMeanStaysWithinRange(t *testing.T) {
	var acc accumulator
	for i := 0; i < 10; i++ {
		acc.add(0.1)
	}
	m := acc.metric()
	assert.GreaterOrEqual(t, m.Mean, m.Min)
	assert.LessOrEqual(t, m.Mean, m.Max)
}
