package services

import (
	"context"
	"fmt"
	"sync"

	"proptech-analytics/models"
	"proptech-analytics/storage"
	"proptech-analytics/utils"
)

// Options configures an App. Zero values select the defaults.
type Options struct {
	Vocabulary     []string
	Defaults       InvestmentDefaults
	Predictor      Predictor
	MaxConcurrency int
}

// App wires every service around one shared summary table.
type App struct {
	Resolver   *Resolver
	Merger     *Merger
	Stats      *StatsService
	Engine     *InvestmentEngine
	Comparator *Comparator
	ROI        *ROIService
	Ranker     *Ranker

	reloadMu sync.Mutex
	logger   *utils.Logger
}

// NewApp builds the services with an empty table. Call Load or Rebuild to
// populate it.
func NewApp(opts Options, logger *utils.Logger) *App {
	vocab := opts.Vocabulary
	if len(vocab) == 0 {
		vocab = DefaultVocabulary
	}
	defaults := opts.Defaults
	if defaults == (InvestmentDefaults{}) {
		defaults = StandardDefaults
	}

	resolver := NewResolver(vocab)
	stats := NewStatsService(nil, logger)
	engine := NewInvestmentEngine(stats, defaults, logger)

	return &App{
		Resolver:   resolver,
		Merger:     NewMerger(resolver, logger),
		Stats:      stats,
		Engine:     engine,
		Comparator: NewComparator(stats, logger),
		ROI:        NewROIService(stats, opts.Predictor, logger),
		Ranker:     NewRanker(stats, engine, opts.MaxConcurrency, logger),
		logger:     logger,
	}
}

// Rebuild merges the datasets and swaps the result in. An empty result still
// replaces the current table.
func (a *App) Rebuild(prices []models.RawRecord, rents []models.RawRentRecord) *models.SummaryTable {
	table := a.Merger.Build(prices, rents)
	a.Stats.Swap(table)
	return table
}

// Load reads both datasets from source concurrently and rebuilds the table.
// On failure, or when nothing could be merged, the current table is kept and
// the error wraps ErrDataUnavailable.
func (a *App) Load(ctx context.Context, source storage.DatasetSource) error {
	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()

	var (
		prices []models.RawRecord
		rents  []models.RawRentRecord
		errs   utils.ErrorGroup
	)

	pool := utils.NewWorkerPool(2)
	pool.Submit(func() {
		var err error
		prices, err = source.LoadPrices(ctx)
		errs.Set(err)
	})
	pool.Submit(func() {
		var err error
		rents, err = source.LoadRents(ctx)
		errs.Set(err)
	})
	pool.Wait()

	if err := errs.Err(); err != nil {
		a.logger.Error("[app] Dataset load failed, keeping %d localities: %v", len(a.Stats.Table().Localities), err)
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	table := a.Merger.Build(prices, rents)
	if table.IsEmpty() {
		a.logger.Warn("[app] Datasets loaded but no locality could be summarised")
		return fmt.Errorf("%w: no locality present in both datasets", ErrDataUnavailable)
	}
	a.Stats.Swap(table)
	a.logger.Info("[app] Serving %d localities", len(table.Localities))
	return nil
}
