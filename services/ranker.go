package services

import (
	"sort"
	"sync"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

// Ranker orders localities by yield, either from the summary alone or by
// running the same investment scenario everywhere.
type Ranker struct {
	stats       *StatsService
	engine      *InvestmentEngine
	concurrency int
	logger      *utils.Logger
}

func NewRanker(stats *StatsService, engine *InvestmentEngine, concurrency int, logger *utils.Logger) *Ranker {
	return &Ranker{stats: stats, engine: engine, concurrency: concurrency, logger: logger}
}

// Heatmap lists every locality by average ROI, highest first.
func (r *Ranker) Heatmap() []models.RankEntry {
	t := r.stats.Table()
	entries := make([]models.RankEntry, 0, len(t.Localities))
	for _, key := range t.Localities {
		rec := toStatsRecord(t.Summaries[key])
		entries = append(entries, models.RankEntry{
			Locality: DisplayName(key),
			AvgROI:   rec.AvgROI,
			AvgPrice: rec.AvgPrice,
			AvgRent:  rec.AvgRent,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AvgROI > entries[j].AvgROI
	})
	return entries
}

// RankInvestments analyses base in every locality concurrently and orders
// the outcomes by ROI on cash invested. base.Locality is ignored.
func (r *Ranker) RankInvestments(base InvestmentRequest) ([]models.InvestmentRank, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}

	localities := r.stats.Localities()
	var (
		mu    sync.Mutex
		ranks = make([]models.InvestmentRank, 0, len(localities))
	)

	pool := utils.NewWorkerPool(r.concurrency)
	for _, loc := range localities {
		req := base
		req.Locality = loc
		pool.Submit(func() {
			report, err := r.engine.Analyze(req)
			if err != nil {
				r.logger.Warn("[ranker] Skipping %s: %v", req.Locality, err)
				return
			}
			mu.Lock()
			ranks = append(ranks, models.InvestmentRank{
				Locality:          report.Locality,
				ROIOnCashInvested: report.ROIOnCashInvested,
				MonthlyCashFlow:   report.MonthlyCashFlow,
				RiskScore:         report.RiskScore,
				Recommendation:    report.Recommendation,
			})
			mu.Unlock()
		})
	}
	pool.Wait()

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].ROIOnCashInvested != ranks[j].ROIOnCashInvested {
			return ranks[i].ROIOnCashInvested > ranks[j].ROIOnCashInvested
		}
		return ranks[i].Locality < ranks[j].Locality
	})
	return ranks, nil
}
