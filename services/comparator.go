package services

import (
	"fmt"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

var chartLabels = []string{"Price (₹L)", "Rent (₹)", "ROI (%)", "Rate/sqft (₹)"}

// Comparator contrasts the statistics of two localities.
type Comparator struct {
	stats  *StatsService
	logger *utils.Logger
}

func NewComparator(stats *StatsService, logger *utils.Logger) *Comparator {
	return &Comparator{stats: stats, logger: logger}
}

// Compare returns nil when either locality is unknown. Differences are
// second minus first. On a tie every verdict goes to the second locality.
func (c *Comparator) Compare(locA, locB string) *models.ComparisonReport {
	a, okA := c.stats.GetStats(locA)
	b, okB := c.stats.GetStats(locB)
	if !okA || !okB {
		c.logger.Debug("[compare] Missing stats (%q: %v, %q: %v)", locA, okA, locB, okB)
		return nil
	}

	v1 := models.LocalityView{Name: DisplayName(a.Locality), Stats: *a}
	v2 := models.LocalityView{Name: DisplayName(b.Locality), Stats: *b}

	betterPrice := pick(a.AvgPrice < b.AvgPrice, v1.Name, v2.Name)
	betterROI := pick(a.AvgROI > b.AvgROI, v1.Name, v2.Name)
	betterRent := pick(a.AvgRent > b.AvgRent, v1.Name, v2.Name)

	return &models.ComparisonReport{
		Loc1: v1,
		Loc2: v2,
		Comparison: models.ComparisonMetrics{
			PriceDifference: utils.Round2(b.AvgPrice - a.AvgPrice),
			ROIDifference:   utils.Round2(b.AvgROI - a.AvgROI),
			RentDifference:  utils.Round2(b.AvgRent - a.AvgRent),
			BetterPrice:     betterPrice,
			BetterROI:       betterROI,
			BetterRent:      betterRent,
		},
		ChartData: models.ChartData{
			Labels:     append([]string(nil), chartLabels...),
			Loc1Values: []float64{a.AvgPrice, a.AvgRent, a.AvgROI, a.AvgRate},
			Loc2Values: []float64{b.AvgPrice, b.AvgRent, b.AvgROI, b.AvgRate},
		},
		Summary: []string{
			fmt.Sprintf("%s is more affordable with lower average prices", betterPrice),
			fmt.Sprintf("%s offers better ROI for investors", betterROI),
			fmt.Sprintf("%s has higher rental income potential", betterRent),
		},
	}
}

func pick(firstWins bool, first, second string) string {
	if firstWins {
		return first
	}
	return second
}
