package services

import (
	"math"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

// Expense model constants, in fractions of the property price per year unless
// noted otherwise.
const (
	basicMaintenanceRate = 0.005
	propertyTaxRate      = 0.001
	insuranceRate        = 0.002
	societyChargePerSqft = 3.0  // rupees per sqft per month
	vacancyRate          = 0.08 // of monthly rent
	fallbackRateSqft     = 10000.0
	minRentScale         = 0.8
	maxRentScale         = 1.3
)

// InvestmentDefaults are the loan terms applied when a caller omits them.
type InvestmentDefaults struct {
	DownPaymentPct  float64
	InterestRatePct float64
	MaintenancePct  float64
}

// StandardDefaults are 20% down, 8.5% interest, 2% maintenance.
var StandardDefaults = InvestmentDefaults{DownPaymentPct: 20, InterestRatePct: 8.5, MaintenancePct: 2}

// InvestmentRequest describes one investment scenario. BudgetLakh is the
// property price in lakh.
type InvestmentRequest struct {
	Locality        string  `json:"locality"`
	BudgetLakh      float64 `json:"budget"`
	HorizonYears    int     `json:"horizon"`
	RiskTolerance   string  `json:"risk_tolerance"`
	DownPaymentPct  float64 `json:"down_payment_percent"`
	InterestRatePct float64 `json:"interest_rate"`
	// MaintenancePct is echoed in the report; itemised expenses use fixed rates.
	MaintenancePct float64 `json:"maintenance_percent"`
}

// Validate checks every numeric field of the request.
func (r InvestmentRequest) Validate() error {
	if !(r.BudgetLakh > 0) || math.IsInf(r.BudgetLakh, 0) {
		return invalidInput("budget", "must be a positive amount in lakh")
	}
	if r.HorizonYears <= 0 {
		return invalidTenure("horizon", r.HorizonYears)
	}
	if !(r.DownPaymentPct > 0 && r.DownPaymentPct <= 100) {
		return invalidInput("down_payment_percent", "must be in (0, 100]")
	}
	if !(r.InterestRatePct >= 0) || math.IsInf(r.InterestRatePct, 0) {
		return invalidInput("interest_rate", "must be non-negative")
	}
	if !(r.MaintenancePct >= 0) || math.IsInf(r.MaintenancePct, 0) {
		return invalidInput("maintenance_percent", "must be non-negative")
	}
	return nil
}

// InvestmentEngine derives a full investment report from locality statistics.
type InvestmentEngine struct {
	stats    *StatsService
	scorer   RiskScorer
	defaults InvestmentDefaults
	logger   *utils.Logger
}

func NewInvestmentEngine(stats *StatsService, defaults InvestmentDefaults, logger *utils.Logger) *InvestmentEngine {
	return &InvestmentEngine{stats: stats, defaults: defaults, logger: logger}
}

// Defaults returns the engine's default loan terms.
func (e *InvestmentEngine) Defaults() InvestmentDefaults {
	return e.defaults
}

// Request returns a request for the scenario pre-filled with the engine's
// default loan terms.
func (e *InvestmentEngine) Request(locality string, budgetLakh float64, horizonYears int, riskTolerance string) InvestmentRequest {
	return InvestmentRequest{
		Locality:        locality,
		BudgetLakh:      budgetLakh,
		HorizonYears:    horizonYears,
		RiskTolerance:   riskTolerance,
		DownPaymentPct:  e.defaults.DownPaymentPct,
		InterestRatePct: e.defaults.InterestRatePct,
		MaintenancePct:  e.defaults.MaintenancePct,
	}
}

// Analyze runs the scenario. It fails with a ValidationError for bad input
// and a LocalityNotFoundError when the locality has no statistics.
func (e *InvestmentEngine) Analyze(req InvestmentRequest) (*models.InvestmentReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stats, err := e.stats.Lookup(req.Locality)
	if err != nil {
		return nil, err
	}
	tolerance := ParseRiskTolerance(req.RiskTolerance)

	propertyPrice := req.BudgetLakh * LakhToRupees
	downPayment := propertyPrice * req.DownPaymentPct / 100
	loan := propertyPrice - downPayment

	emi, err := EMI(loan, req.InterestRatePct, req.HorizonYears)
	if err != nil {
		return nil, err
	}
	months := req.HorizonYears * 12
	totalInterest := TotalInterest(loan, emi, months)

	rent := estimateRent(stats, propertyPrice)
	expenses := monthlyExpenses(stats, propertyPrice, rent)
	totalExpenses := expenses.Total()

	monthlyCashFlow := rent - emi - totalExpenses
	netAnnualIncome := (rent - totalExpenses) * 12
	roiOnCash := netAnnualIncome / downPayment * 100

	if !isFinite(emi*float64(months), totalInterest, rent, totalExpenses, monthlyCashFlow, roiOnCash) {
		return nil, invalidInput("budget", "scenario is not representable for this budget, rate and horizon")
	}

	var breakEven *float64
	if netAnnualIncome > 0 {
		years := utils.Round2(downPayment / netAnnualIncome)
		breakEven = &years
	}

	risk := e.scorer.Assess(stats, monthlyCashFlow, roiOnCash, tolerance, propertyPrice)
	recommendation := Classify(roiOnCash, monthlyCashFlow, risk.Score)

	e.logger.Debug("[investment] %s budget=%.2fL horizon=%dy roi=%.2f%% risk=%.1f → %s",
		stats.Locality, req.BudgetLakh, req.HorizonYears, roiOnCash, risk.Score, recommendation)

	return &models.InvestmentReport{
		Locality:           DisplayName(stats.Locality),
		Budget:             req.BudgetLakh,
		Horizon:            req.HorizonYears,
		RiskTolerance:      tolerance,
		InterestRate:       req.InterestRatePct,
		DownPaymentPercent: req.DownPaymentPct,
		MaintenancePercent: req.MaintenancePct,

		PropertyPrice:  toLakh(propertyPrice),
		DownPayment:    toLakh(downPayment),
		LoanAmount:     toLakh(loan),
		TotalInterest:  toLakh(totalInterest),
		TotalRepayment: toLakh(emi * float64(months)),

		MonthlyEMI:           utils.Round2(emi),
		EstimatedMonthlyRent: utils.Round2(rent),
		AnnualRentIncome:     utils.Round2(rent * 12),
		TotalMonthlyExpenses: utils.Round2(totalExpenses),
		ExpenseBreakdown:     roundExpenses(expenses),
		MonthlyCashFlow:      utils.Round2(monthlyCashFlow),
		AnnualCashFlow:       utils.Round2(monthlyCashFlow * 12),
		NetAnnualIncome:      utils.Round2(netAnnualIncome),
		ROIOnCashInvested:    utils.Round2(roiOnCash),
		BreakEvenYears:       breakEven,

		RiskScore:      risk.Score,
		RiskFactors:    risk,
		Recommendation: recommendation,
	}, nil
}

// estimateRent scales the locality's average rent by how the property's
// price compares with the locality average, within [0.8, 1.3].
func estimateRent(stats *models.StatsRecord, propertyPrice float64) float64 {
	avgPrice := stats.AvgPrice * LakhToRupees
	ratio := 1.0
	if avgPrice > 0 {
		ratio = propertyPrice / avgPrice
	}
	return stats.AvgRent * utils.Clamp(ratio, minRentScale, maxRentScale)
}

func monthlyExpenses(stats *models.StatsRecord, propertyPrice, rent float64) models.ExpenseBreakdown {
	rate := stats.AvgRate
	if rate <= 0 {
		rate = fallbackRateSqft
	}
	areaSqft := propertyPrice / rate

	return models.ExpenseBreakdown{
		BasicMaintenance:   propertyPrice * basicMaintenanceRate / 12,
		PropertyTax:        propertyPrice * propertyTaxRate / 12,
		Insurance:          propertyPrice * insuranceRate / 12,
		SocietyMaintenance: areaSqft * societyChargePerSqft,
		VacancyAllowance:   rent * vacancyRate,
	}
}

func roundExpenses(e models.ExpenseBreakdown) models.ExpenseBreakdown {
	return models.ExpenseBreakdown{
		BasicMaintenance:   utils.Round2(e.BasicMaintenance),
		PropertyTax:        utils.Round2(e.PropertyTax),
		Insurance:          utils.Round2(e.Insurance),
		SocietyMaintenance: utils.Round2(e.SocietyMaintenance),
		VacancyAllowance:   utils.Round2(e.VacancyAllowance),
	}
}

func toLakh(rupees float64) float64 {
	return utils.Round2(rupees / LakhToRupees)
}
