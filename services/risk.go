package services

import (
	"strings"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

// Score bounds and weights. The thresholds below are hand-tuned and kept for
// parity with existing reports.
const (
	baseRisk       = 25.0
	minRiskScore   = 15.0
	maxRiskScore   = 85.0
	cashFlowWeight = 0.35
	roiWeight      = 0.30
	marketWeight   = 0.25
	valueWeight    = 0.10
)

var toleranceMultipliers = map[models.RiskTolerance]float64{
	models.RiskLow:    1.15,
	models.RiskMedium: 1.0,
	models.RiskHigh:   0.85,
}

// ParseRiskTolerance normalises s; anything unrecognised is medium.
func ParseRiskTolerance(s string) models.RiskTolerance {
	t := models.RiskTolerance(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := toleranceMultipliers[t]; ok {
		return t
	}
	return models.RiskMedium
}

// RiskScorer computes a weighted composite risk score.
type RiskScorer struct{}

// Score returns the clamped composite score in [15, 85].
func (rs RiskScorer) Score(stats *models.StatsRecord, monthlyCashFlow, roi float64, tolerance models.RiskTolerance, propertyPrice float64) float64 {
	return rs.Assess(stats, monthlyCashFlow, roi, tolerance, propertyPrice).Score
}

// Assess returns the score together with its components.
func (RiskScorer) Assess(stats *models.StatsRecord, monthlyCashFlow, roi float64, tolerance models.RiskTolerance, propertyPrice float64) models.RiskAssessment {
	a := models.RiskAssessment{
		CashFlowRisk: cashFlowRisk(monthlyCashFlow),
		ROIRisk:      roiRisk(roi),
		MarketRisk:   marketRisk(stats.ROIRange.Max - stats.ROIRange.Min),
		ValueRisk:    valueRisk(propertyPrice, stats.AvgPrice*LakhToRupees),
	}

	multiplier, ok := toleranceMultipliers[tolerance]
	if !ok {
		multiplier = 1.0
	}
	a.Multiplier = multiplier

	total := baseRisk +
		a.CashFlowRisk*cashFlowWeight +
		a.ROIRisk*roiWeight +
		a.MarketRisk*marketWeight +
		a.ValueRisk*valueWeight
	a.Score = utils.Clamp(utils.RoundFloat(total*multiplier, 1), minRiskScore, maxRiskScore)
	return a
}

func cashFlowRisk(cf float64) float64 {
	switch {
	case cf >= 5000:
		return 0
	case cf >= 0:
		return 5
	case cf >= -5000:
		return 15
	case cf >= -10000:
		return 25
	default:
		return 35
	}
}

func roiRisk(roi float64) float64 {
	switch {
	case roi >= 15:
		return 0
	case roi >= 10:
		return 5
	case roi >= 6:
		return 10
	case roi >= 3:
		return 20
	default:
		return 30
	}
}

// marketRisk grows with the spread between the best and worst ROI observed
// in the locality.
func marketRisk(roiRange float64) float64 {
	switch {
	case roiRange <= 3:
		return 0
	case roiRange <= 5:
		return 8
	case roiRange <= 7:
		return 15
	default:
		return 25
	}
}

// valueRisk penalises paying well above the locality's average price.
func valueRisk(propertyPrice, avgPrice float64) float64 {
	switch {
	case propertyPrice <= avgPrice*1.2:
		return 0
	case propertyPrice <= avgPrice*1.5:
		return 5
	default:
		return 10
	}
}

// Classify maps ROI on cash, monthly cash flow and risk score to a
// recommendation. Rules are checked top-down and the first match wins.
func Classify(roi, monthlyCashFlow, riskScore float64) models.Recommendation {
	switch {
	case roi >= 12 && monthlyCashFlow >= -2000 && riskScore < 35:
		return models.HighlyRecommended
	case roi >= 8 && monthlyCashFlow >= -5000 && riskScore < 45:
		return models.Recommended
	case roi >= 5 && monthlyCashFlow >= -8000 && riskScore < 55:
		return models.CapitalAppreciation
	case roi >= 3 && riskScore < 65:
		return models.ConsiderWithCaution
	default:
		return models.NotRecommended
	}
}
