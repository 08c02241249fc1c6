package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"proptech-analytics/models"
)

func riskStats(roiMin, roiMax, avgPriceLakh float64) *models.StatsRecord {
	return &models.StatsRecord{
		AvgPrice: avgPriceLakh,
		ROIRange: models.Range{Min: roiMin, Max: roiMax},
	}
}

func TestRiskScoreExtremes(t *testing.T) {
	var rs RiskScorer

	best := rs.Score(riskStats(3, 4, 100), 10000, 20, models.RiskHigh, 100*LakhToRupees)
	assert.Equal(t, 21.3, best)

	worst := rs.Score(riskStats(0, 10, 100), -20000, 1, models.RiskLow, 200*LakhToRupees)
	assert.Equal(t, 61.5, worst)
}

func TestRiskScoreComponents(t *testing.T) {
	var rs RiskScorer
	a := rs.Assess(riskStats(2, 6.5, 100), -7000, 7, models.RiskMedium, 130*LakhToRupees)

	assert.Equal(t, 25.0, a.CashFlowRisk)
	assert.Equal(t, 10.0, a.ROIRisk)
	assert.Equal(t, 15.0, a.MarketRisk)
	assert.Equal(t, 5.0, a.ValueRisk)
	assert.Equal(t, 1.0, a.Multiplier)
	// 25 + 8.75 + 3 + 3.75 + 0.5
	assert.Equal(t, 41.0, a.Score)
}

func TestRiskScoreAlwaysBounded(t *testing.T) {
	var rs RiskScorer
	for _, cf := range []float64{-1e9, -10000, 0, 1e9} {
		for _, roi := range []float64{-100, 0, 3, 15, 1e6} {
			for _, tol := range []models.RiskTolerance{models.RiskLow, models.RiskMedium, models.RiskHigh, "bogus"} {
				s := rs.Score(riskStats(0, 50, 1), cf, roi, tol, 1e9)
				if s < minRiskScore || s > maxRiskScore {
					t.Errorf("Score(cf=%v, roi=%v, %s) = %v out of bounds", cf, roi, tol, s)
				}
			}
		}
	}
}

func TestRiskThresholds(t *testing.T) {
	cashFlow := []struct {
		cf   float64
		want float64
	}{{5000, 0}, {4999, 5}, {0, 5}, {-1, 15}, {-5000, 15}, {-5001, 25}, {-10000, 25}, {-10001, 35}}
	for _, tt := range cashFlow {
		assert.Equal(t, tt.want, cashFlowRisk(tt.cf), "cashFlowRisk(%v)", tt.cf)
	}

	roi := []struct {
		roi  float64
		want float64
	}{{15, 0}, {14.99, 5}, {10, 5}, {9.99, 10}, {6, 10}, {5.99, 20}, {3, 20}, {2.99, 30}}
	for _, tt := range roi {
		assert.Equal(t, tt.want, roiRisk(tt.roi), "roiRisk(%v)", tt.roi)
	}

	market := []struct {
		spread float64
		want   float64
	}{{3, 0}, {3.01, 8}, {5, 8}, {5.01, 15}, {7, 15}, {7.01, 25}}
	for _, tt := range market {
		assert.Equal(t, tt.want, marketRisk(tt.spread), "marketRisk(%v)", tt.spread)
	}

	value := []struct {
		price float64
		want  float64
	}{{120, 0}, {121, 5}, {150, 5}, {151, 10}}
	for _, tt := range value {
		assert.Equal(t, tt.want, valueRisk(tt.price, 100), "valueRisk(%v)", tt.price)
	}
}

func TestParseRiskTolerance(t *testing.T) {
	assert.Equal(t, models.RiskLow, ParseRiskTolerance(" LOW "))
	assert.Equal(t, models.RiskHigh, ParseRiskTolerance("high"))
	assert.Equal(t, models.RiskMedium, ParseRiskTolerance("reckless"))
	assert.Equal(t, models.RiskMedium, ParseRiskTolerance(""))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		roi, cf, risk float64
		want          models.Recommendation
	}{
		{12, -2000, 34.9, models.HighlyRecommended},
		{12, -2000, 35, models.Recommended},
		{8, -5000, 44.9, models.Recommended},
		{8, -5001, 44.9, models.CapitalAppreciation},
		{5, -8000, 54.9, models.CapitalAppreciation},
		{5, -8001, 54.9, models.ConsiderWithCaution},
		{3, -50000, 64.9, models.ConsiderWithCaution},
		{3, 0, 65, models.NotRecommended},
		{2.99, 10000, 20, models.NotRecommended},
	}

	for _, tt := range tests {
		if got := Classify(tt.roi, tt.cf, tt.risk); got != tt.want {
			t.Errorf("Classify(%v, %v, %v) = %q; want %q", tt.roi, tt.cf, tt.risk, got, tt.want)
		}
	}
}
