package models

// RiskTolerance is the investor's declared appetite for risk.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// Recommendation is one of a fixed, ordered set of verdicts.
type Recommendation string

const (
	HighlyRecommended   Recommendation = "Highly Recommended"
	Recommended         Recommendation = "Recommended"
	CapitalAppreciation Recommendation = "Consider for Capital Appreciation"
	ConsiderWithCaution Recommendation = "Consider with Caution"
	NotRecommended      Recommendation = "Not Recommended"
)

// Recommendations lists every verdict from best to worst.
var Recommendations = []Recommendation{
	HighlyRecommended,
	Recommended,
	CapitalAppreciation,
	ConsiderWithCaution,
	NotRecommended,
}

// ExpenseBreakdown itemises the monthly ownership costs in rupees.
type ExpenseBreakdown struct {
	BasicMaintenance   float64 `json:"basic_maintenance"`
	PropertyTax        float64 `json:"property_tax"`
	Insurance          float64 `json:"insurance"`
	SocietyMaintenance float64 `json:"society_maintenance"`
	VacancyAllowance   float64 `json:"vacancy_allowance"`
}

// Total sums every expense line.
func (e ExpenseBreakdown) Total() float64 {
	return e.BasicMaintenance + e.PropertyTax + e.Insurance + e.SocietyMaintenance + e.VacancyAllowance
}

// RiskAssessment exposes the components behind a risk score.
type RiskAssessment struct {
	Score        float64 `json:"score"`
	CashFlowRisk float64 `json:"cash_flow_risk"`
	ROIRisk      float64 `json:"roi_risk"`
	MarketRisk   float64 `json:"market_risk"`
	ValueRisk    float64 `json:"value_risk"`
	Multiplier   float64 `json:"multiplier"`
}

// InvestmentReport is the per-request output of the investment engine.
// Figures suffixed "lakh" in their doc are in lakh; everything else is rupees.
type InvestmentReport struct {
	Locality           string        `json:"locality"`
	Budget             float64       `json:"budget"`
	Horizon            int           `json:"horizon"`
	RiskTolerance      RiskTolerance `json:"risk_tolerance"`
	InterestRate       float64       `json:"interest_rate"`
	DownPaymentPercent float64       `json:"down_payment_percent"`
	MaintenancePercent float64       `json:"maintenance_percent"`

	// lakh
	PropertyPrice  float64 `json:"property_price"`
	DownPayment    float64 `json:"down_payment"`
	LoanAmount     float64 `json:"loan_amount"`
	TotalInterest  float64 `json:"total_interest"`
	TotalRepayment float64 `json:"total_repayment"`

	MonthlyEMI           float64          `json:"monthly_emi"`
	EstimatedMonthlyRent float64          `json:"estimated_monthly_rent"`
	AnnualRentIncome     float64          `json:"annual_rent_income"`
	TotalMonthlyExpenses float64          `json:"total_monthly_expenses"`
	ExpenseBreakdown     ExpenseBreakdown `json:"expense_breakdown"`
	MonthlyCashFlow      float64          `json:"monthly_cash_flow"`
	AnnualCashFlow       float64          `json:"annual_cash_flow"`
	NetAnnualIncome      float64          `json:"net_annual_income"`
	ROIOnCashInvested    float64          `json:"roi_on_cash_invested"`
	BreakEvenYears       *float64         `json:"break_even_years"`

	RiskScore      float64        `json:"risk_score"`
	RiskFactors    RiskAssessment `json:"risk_factors"`
	Recommendation Recommendation `json:"recommendation"`
}

// LoanSchedule summarises a standard amortising loan.
type LoanSchedule struct {
	Principal     float64 `json:"principal"`
	InterestRate  float64 `json:"interest_rate"`
	Years         int     `json:"years"`
	Months        int     `json:"months"`
	EMI           float64 `json:"emi"`
	TotalInterest float64 `json:"total_interest"`
	TotalPayment  float64 `json:"total_payment"`
}

// LocalityView names a locality alongside its statistics.
type LocalityView struct {
	Name  string      `json:"name"`
	Stats StatsRecord `json:"stats"`
}

// ComparisonMetrics holds the pairwise differences (second minus first) and
// the three verdicts.
type ComparisonMetrics struct {
	PriceDifference float64 `json:"price_difference"`
	ROIDifference   float64 `json:"roi_difference"`
	RentDifference  float64 `json:"rent_difference"`
	BetterPrice     string  `json:"better_price"`
	BetterROI       string  `json:"better_roi"`
	BetterRent      string  `json:"better_rent"`
}

// ChartData is a ready-to-plot side-by-side view of two localities.
type ChartData struct {
	Labels     []string  `json:"labels"`
	Loc1Values []float64 `json:"loc1_values"`
	Loc2Values []float64 `json:"loc2_values"`
}

// ComparisonReport is the output of comparing two localities.
type ComparisonReport struct {
	Loc1       LocalityView      `json:"loc1"`
	Loc2       LocalityView      `json:"loc2"`
	Comparison ComparisonMetrics `json:"comparison"`
	ChartData  ChartData         `json:"chart_data"`
	Summary    []string          `json:"summary"`
}

// ROIEstimate is the answer of the ROI calculator.
type ROIEstimate struct {
	Locality     string       `json:"locality"`
	Price        float64      `json:"price"`
	PredictedROI float64      `json:"predicted_roi"`
	Method       string       `json:"prediction_method"`
	Historical   *StatsRecord `json:"historical_data,omitempty"`
}

// RankEntry is one row of the locality ROI ranking.
type RankEntry struct {
	Locality string  `json:"locality"`
	AvgROI   float64 `json:"avg_roi"`
	AvgPrice float64 `json:"avg_price"`
	AvgRent  float64 `json:"avg_rent"`
}

// InvestmentRank scores one locality for a fixed budget and horizon.
type InvestmentRank struct {
	Locality          string         `json:"locality"`
	ROIOnCashInvested float64        `json:"roi_on_cash_invested"`
	MonthlyCashFlow   float64        `json:"monthly_cash_flow"`
	RiskScore         float64        `json:"risk_score"`
	Recommendation    Recommendation `json:"recommendation"`
}
