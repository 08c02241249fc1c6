package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"proptech-analytics/models"
	"proptech-analytics/services"
	"proptech-analytics/utils"
)

// Intent names what a message asks for.
type Intent string

const (
	IntentHelp       Intent = "help"
	IntentCompare    Intent = "compare"
	IntentEMI        Intent = "emi"
	IntentInvestment Intent = "investment"
	IntentROI        Intent = "roi"
	IntentStats      Intent = "stats"
	IntentUnknown    Intent = "unknown"
)

const (
	defaultTenureYears = 20
	helpText           = `I can help with Mumbai property investments. Try:
• "Tell me about Powai"
• "Compare Andheri vs Thane"
• "EMI for 50 lakh at 8.5% for 20 years"
• "ROI for 80 lakh in Thane"
• "Invest 60 lakh in Thane for 15 years, low risk"`
)

// Reply is the answer to one message. Data carries the structured result
// behind Text, if any.
type Reply struct {
	Intent Intent      `json:"intent"`
	Text   string      `json:"text"`
	Data   interface{} `json:"data,omitempty"`
}

// Rule pairs a predicate with the handler that answers matching messages.
type Rule struct {
	Intent  Intent
	Matches func(e Entities) bool
	Handle  func(ctx context.Context, e Entities) Reply
}

// Dispatcher answers chat messages by trying rules in order.
type Dispatcher struct {
	app    *services.App
	rules  []Rule
	logger *utils.Logger
}

// NewDispatcher creates a Dispatcher over app. The first matching rule wins.
func NewDispatcher(app *services.App, logger *utils.Logger) *Dispatcher {
	d := &Dispatcher{app: app, logger: logger}
	d.rules = []Rule{
		{Intent: IntentHelp, Matches: isHelp, Handle: d.help},
		{Intent: IntentEMI, Matches: isEMI, Handle: d.emi},
		{Intent: IntentCompare, Matches: isCompare, Handle: d.compare},
		{Intent: IntentInvestment, Matches: isInvestment, Handle: d.investment},
		{Intent: IntentROI, Matches: isROI, Handle: d.roi},
		{Intent: IntentStats, Matches: isStats, Handle: d.stats},
	}
	return d
}

// Handle answers message. It never fails; problems are explained in the reply.
func (d *Dispatcher) Handle(ctx context.Context, message string) Reply {
	e := Extract(d.app.Resolver, message)
	for _, rule := range d.rules {
		if rule.Matches(e) {
			d.logger.Debug("[chat] %q → %s", message, rule.Intent)
			return rule.Handle(ctx, e)
		}
	}
	return Reply{
		Intent: IntentUnknown,
		Text:   "Sorry, I didn't get that. Ask me for \"help\" to see what I can do.",
	}
}

// Classify returns the intent Handle would pick for message.
func (d *Dispatcher) Classify(message string) Intent {
	e := Extract(d.app.Resolver, message)
	for _, rule := range d.rules {
		if rule.Matches(e) {
			return rule.Intent
		}
	}
	return IntentUnknown
}

func isHelp(e Entities) bool {
	if e.Empty() {
		return true
	}
	// Greetings only count on their own; "start investing in thane" is not one.
	return !e.HasData() && e.HasWord("help", "hi", "hello", "hey", "start")
}

func isEMI(e Entities) bool {
	return e.HasWord("emi", "loan", "mortgage", "installment") || e.HasPhrase("monthly payment")
}

func isCompare(e Entities) bool {
	return len(e.Localities) >= 2
}

func isInvestment(e Entities) bool {
	return len(e.Localities) > 0 && len(e.AmountsLakh) > 0 &&
		e.HasWord("invest", "investing", "investment", "buy", "buying", "budget", "analyse", "analyze", "analysis")
}

func isROI(e Entities) bool {
	return len(e.Localities) > 0 && e.HasWord("roi", "return", "returns", "yield", "profit")
}

func isStats(e Entities) bool {
	return len(e.Localities) > 0
}

func (d *Dispatcher) help(_ context.Context, _ Entities) Reply {
	localities := d.app.Stats.Localities()
	text := helpText
	if len(localities) > 0 {
		text += fmt.Sprintf("\n\nI have data for %d localities. Send /localities to list them.", len(localities))
	}
	return Reply{Intent: IntentHelp, Text: text}
}

func (d *Dispatcher) emi(_ context.Context, e Entities) Reply {
	if len(e.AmountsLakh) == 0 {
		return Reply{Intent: IntentEMI, Text: `Tell me the loan amount, e.g. "EMI for 50 lakh at 8.5% for 20 years".`}
	}
	principal := e.AmountsLakh[0]
	rate := d.app.Engine.Defaults().InterestRatePct
	if len(e.Percentages) > 0 {
		rate = e.Percentages[0]
	}
	years := defaultTenureYears
	if len(e.Years) > 0 {
		years = e.Years[0]
	}

	schedule, err := services.Schedule(principal*services.LakhToRupees, rate, years)
	if err != nil {
		return d.failure(IntentEMI, err)
	}
	text := fmt.Sprintf("Loan of ₹%.2f lakh at %.2f%% for %d years:\n• EMI: ₹%.0f per month\n• Total interest: ₹%.2f lakh\n• Total payment: ₹%.2f lakh",
		principal, rate, years, schedule.EMI,
		schedule.TotalInterest/services.LakhToRupees, schedule.TotalPayment/services.LakhToRupees)
	return Reply{Intent: IntentEMI, Text: text, Data: schedule}
}

func (d *Dispatcher) compare(_ context.Context, e Entities) Reply {
	report := d.app.Comparator.Compare(e.Localities[0], e.Localities[1])
	if report == nil {
		return Reply{Intent: IntentCompare, Text: fmt.Sprintf("I don't have data for both %s and %s yet.",
			services.DisplayName(e.Localities[0]), services.DisplayName(e.Localities[1]))}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s\n", report.Loc1.Name, report.Loc2.Name)
	fmt.Fprintf(&b, "• Avg price: ₹%.2fL vs ₹%.2fL\n", report.Loc1.Stats.AvgPrice, report.Loc2.Stats.AvgPrice)
	fmt.Fprintf(&b, "• Avg rent: ₹%.0f vs ₹%.0f\n", report.Loc1.Stats.AvgRent, report.Loc2.Stats.AvgRent)
	fmt.Fprintf(&b, "• Avg ROI: %.2f%% vs %.2f%%\n", report.Loc1.Stats.AvgROI, report.Loc2.Stats.AvgROI)
	b.WriteString(strings.Join(report.Summary, ".\n"))
	b.WriteString(".")
	return Reply{Intent: IntentCompare, Text: b.String(), Data: report}
}

func (d *Dispatcher) investment(_ context.Context, e Entities) Reply {
	horizon := defaultTenureYears
	if len(e.Years) > 0 {
		horizon = e.Years[0]
	}
	tolerance := string(models.RiskMedium)
	switch {
	case e.HasPhrase("low risk", "safe", "conservative"):
		tolerance = string(models.RiskLow)
	case e.HasPhrase("high risk", "aggressive"):
		tolerance = string(models.RiskHigh)
	}

	req := d.app.Engine.Request(e.Localities[0], e.AmountsLakh[0], horizon, tolerance)
	if len(e.Percentages) > 0 {
		req.InterestRatePct = e.Percentages[0]
	}
	report, err := d.app.Engine.Analyze(req)
	if err != nil {
		return d.failure(IntentInvestment, err)
	}

	breakEven := "never at current rents"
	if report.BreakEvenYears != nil {
		breakEven = fmt.Sprintf("%.1f years", *report.BreakEvenYears)
	}
	text := fmt.Sprintf("%s, ₹%.2f lakh over %d years (%s risk):\n• EMI: ₹%.0f\n• Expected rent: ₹%.0f\n• Monthly cash flow: ₹%.0f\n• ROI on cash: %.2f%%\n• Break-even: %s\n• Risk score: %.1f\n→ %s",
		report.Locality, report.PropertyPrice, report.Horizon, report.RiskTolerance,
		report.MonthlyEMI, report.EstimatedMonthlyRent, report.MonthlyCashFlow,
		report.ROIOnCashInvested, breakEven, report.RiskScore, report.Recommendation)
	return Reply{Intent: IntentInvestment, Text: text, Data: report}
}

func (d *Dispatcher) roi(ctx context.Context, e Entities) Reply {
	locality := e.Localities[0]
	price := 0.0
	if len(e.AmountsLakh) > 0 {
		price = e.AmountsLakh[0]
	} else if rec, ok := d.app.Stats.GetStats(locality); ok {
		price = rec.AvgPrice
	} else {
		return d.failure(IntentROI, d.app.Stats.NotFound(locality))
	}

	est, err := d.app.ROI.Estimate(ctx, locality, price)
	if err != nil {
		return d.failure(IntentROI, err)
	}
	text := fmt.Sprintf("Expected rental yield in %s at ₹%.2f lakh: %.2f%% (%s).",
		est.Locality, est.Price, est.PredictedROI, est.Method)
	return Reply{Intent: IntentROI, Text: text, Data: est}
}

func (d *Dispatcher) stats(_ context.Context, e Entities) Reply {
	rec, err := d.app.Stats.Lookup(e.Localities[0])
	if err != nil {
		return d.failure(IntentStats, err)
	}
	text := fmt.Sprintf("%s:\n• Avg price: ₹%.2f lakh (₹%.2fL to ₹%.2fL)\n• Avg rent: ₹%.0f per month\n• Avg ROI: %.2f%% (%.2f%% to %.2f%%)\n• Avg rate: ₹%.0f per sqft",
		services.DisplayName(rec.Locality), rec.AvgPrice, rec.PriceRange.Min, rec.PriceRange.Max,
		rec.AvgRent, rec.AvgROI, rec.ROIRange.Min, rec.ROIRange.Max, rec.AvgRate)
	return Reply{Intent: IntentStats, Text: text, Data: rec}
}

func (d *Dispatcher) failure(intent Intent, err error) Reply {
	var notFound *services.LocalityNotFoundError
	switch {
	case errors.As(err, &notFound):
		text := fmt.Sprintf("I don't have data for %q.", notFound.Query)
		if len(notFound.Suggestions) > 0 {
			names := make([]string, len(notFound.Suggestions))
			for i, s := range notFound.Suggestions {
				names[i] = services.DisplayName(s)
			}
			text += " Did you mean: " + strings.Join(names, ", ") + "?"
		}
		return Reply{Intent: intent, Text: text}
	case services.IsValidation(err):
		return Reply{Intent: intent, Text: "That doesn't look right: " + err.Error()}
	default:
		d.logger.Error("[chat] %s failed: %v", intent, err)
		return Reply{Intent: intent, Text: "Sorry, something went wrong. Please try again."}
	}
}
