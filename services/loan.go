package services

import (
	"math"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

// EMI returns the fixed monthly installment that repays principal over years
// at annualRatePct under standard amortisation.
func EMI(principal, annualRatePct float64, years int) (float64, error) {
	if years <= 0 {
		return 0, invalidTenure("years", years)
	}
	if principal < 0 || math.IsNaN(principal) || math.IsInf(principal, 0) {
		return 0, invalidInput("principal", "must be a non-negative amount")
	}
	if annualRatePct < 0 || math.IsNaN(annualRatePct) || math.IsInf(annualRatePct, 0) {
		return 0, invalidInput("interest_rate", "must be non-negative")
	}

	monthlyRate := annualRatePct / 1200
	n := float64(years) * 12
	var emi float64
	if monthlyRate == 0 {
		emi = principal / n
	} else {
		// principal*r / (1 - (1+r)^-n), tending to principal*r for long tenures.
		emi = principal * monthlyRate / -math.Expm1(-n*math.Log1p(monthlyRate))
	}
	if !isFinite(emi) {
		return 0, invalidInput("emi", "not representable for this rate and tenure")
	}
	return emi, nil
}

func isFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// TotalInterest is the interest paid over n installments of emi.
func TotalInterest(principal, emi float64, n int) float64 {
	return emi*float64(n) - principal
}

// Schedule computes the loan summary with rupee figures rounded to two decimals.
func Schedule(principal, annualRatePct float64, years int) (models.LoanSchedule, error) {
	emi, err := EMI(principal, annualRatePct, years)
	if err != nil {
		return models.LoanSchedule{}, err
	}
	months := years * 12
	if !isFinite(emi * float64(months)) {
		return models.LoanSchedule{}, invalidInput("total_payment", "not representable for this rate and tenure")
	}
	return models.LoanSchedule{
		Principal:     utils.Round2(principal),
		InterestRate:  annualRatePct,
		Years:         years,
		Months:        months,
		EMI:           utils.Round2(emi),
		TotalInterest: utils.Round2(TotalInterest(principal, emi, months)),
		TotalPayment:  utils.Round2(emi * float64(months)),
	}, nil
}
