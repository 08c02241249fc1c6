package services

import (
	"strings"
	"sync/atomic"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

const maxSuggestions = 5

// StatsService answers locality lookups against the current summary table.
// The table is swapped atomically on rebuild, so readers always see one
// complete table.
type StatsService struct {
	table  atomic.Pointer[models.SummaryTable]
	logger *utils.Logger
}

// NewStatsService serves lookups from table; nil means no data yet.
func NewStatsService(table *models.SummaryTable, logger *utils.Logger) *StatsService {
	s := &StatsService{logger: logger}
	s.Swap(table)
	return s
}

// Table returns the current table snapshot.
func (s *StatsService) Table() *models.SummaryTable {
	return s.table.Load()
}

// Swap replaces the current table. A nil table becomes an empty one.
func (s *StatsService) Swap(table *models.SummaryTable) {
	if table == nil {
		table = models.EmptySummaryTable()
	}
	s.table.Store(table)
}

// Available reports whether any locality can be served.
func (s *StatsService) Available() bool {
	return !s.Table().IsEmpty()
}

// Localities returns the sorted canonical locality keys.
func (s *StatsService) Localities() []string {
	return append([]string(nil), s.Table().Localities...)
}

// Resolve maps free text to a canonical key present in the table.
func (s *StatsService) Resolve(locality string) (string, bool) {
	return resolveIn(s.Table(), locality)
}

func resolveIn(t *models.SummaryTable, locality string) (string, bool) {
	if t.IsEmpty() {
		return "", false
	}
	return Resolve(locality, t.Localities, func(key string) int {
		return t.Summaries[key].Rows
	})
}

// GetStats returns the rounded statistics of the best matching locality.
func (s *StatsService) GetStats(locality string) (*models.StatsRecord, bool) {
	t := s.Table()
	key, ok := resolveIn(t, locality)
	if !ok {
		s.logger.Debug("[stats] No match for %q", locality)
		return nil, false
	}
	rec := toStatsRecord(t.Summaries[key])
	return &rec, true
}

// Lookup is GetStats returning a LocalityNotFoundError with suggestions on a miss.
func (s *StatsService) Lookup(locality string) (*models.StatsRecord, error) {
	if rec, ok := s.GetStats(locality); ok {
		return rec, nil
	}
	return nil, s.NotFound(locality)
}

// NotFound builds the not-found error for query.
func (s *StatsService) NotFound(query string) error {
	return &LocalityNotFoundError{
		Query:       strings.TrimSpace(query),
		Suggestions: Suggest(query, s.Table().Localities, maxSuggestions),
	}
}

func toStatsRecord(sum *models.LocalitySummary) models.StatsRecord {
	return models.StatsRecord{
		Locality:   sum.Locality,
		AvgPrice:   utils.Round2(sum.Price.Mean),
		PriceRange: models.Range{Min: utils.Round2(sum.Price.Min), Max: utils.Round2(sum.Price.Max)},
		AvgRent:    utils.Round2(sum.Rent.Mean),
		AvgROI:     utils.Round2(sum.ROI.Mean),
		ROIRange:   models.Range{Min: utils.Round2(sum.ROI.Min), Max: utils.Round2(sum.ROI.Max)},
		AvgRate:    utils.Round2(sum.Rate.Mean),
	}
}
