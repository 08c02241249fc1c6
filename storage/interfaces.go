package storage

import (
	"context"
	"errors"

	"proptech-analytics/models"
)

// ErrMissingColumns is returned when a dataset lacks a required column.
var ErrMissingColumns = errors.New("required columns missing")

// DatasetSource supplies the price and rent datasets at startup.
type DatasetSource interface {
	LoadPrices(ctx context.Context) ([]models.RawRecord, error)
	LoadRents(ctx context.Context) ([]models.RawRentRecord, error)
	Close() error
}

// RankingWriter persists a locality ranking.
type RankingWriter interface {
	WriteRanking(entries []models.RankEntry) error
	Close() error
}
