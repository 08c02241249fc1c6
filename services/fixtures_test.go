package services

import (
	"testing"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

// Merged fixture, per locality:
//
//	andheri  2 rows  ROI 4.00, 4.62    avg price 140
//	kurla    1 row   ROI 0.06          avg price 200
//	powai    1 row   ROI 4.00          avg price 120
//	thane    4 rows  ROI 3.00 .. 5.00  avg price 70
func fixturePrices() []models.RawRecord {
	return []models.RawRecord{
		{Locality: "Thane West", PriceLakh: 60, RateSqft: 10000},
		{Locality: "Thane East, Thane", PriceLakh: 80, RateSqft: 8000},
		{Locality: "Andheri West", PriceLakh: 150, RateSqft: 20000},
		{Locality: "Andheri (E)", PriceLakh: 130, RateSqft: 18000},
		{Locality: "Powai", PriceLakh: 120, RateSqft: 16000},
		{Locality: "Kurla", PriceLakh: 200, RateSqft: 20000},
		{Locality: "Somewhere Else", PriceLakh: 50, RateSqft: 5000},
		{Locality: "Bandra", PriceLakh: 0, RateSqft: 30000},
	}
}

func fixtureRents() []models.RawRentRecord {
	return []models.RawRentRecord{
		{Locality: "Thane", Rent: 20000},
		{Locality: "thane west", Rent: 25000},
		{Locality: "ANDHERI", Rent: 50000},
		{Locality: "Powai Lake", Rent: 40000},
		{Locality: "Kurla", Rent: 1000},
		{Locality: "Vikhroli", Rent: 30000},
		{Locality: "nowhere", Rent: 10000},
	}
}

func fixtureTable(t *testing.T) *models.SummaryTable {
	t.Helper()
	m := NewMerger(NewResolver(DefaultVocabulary), newTestLogger())
	return m.Build(fixturePrices(), fixtureRents())
}

func fixtureApp(t *testing.T) *App {
	t.Helper()
	app := NewApp(Options{MaxConcurrency: 2}, newTestLogger())
	app.Rebuild(fixturePrices(), fixtureRents())
	return app
}
