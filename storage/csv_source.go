package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

// columnAliases maps normalised header names onto canonical column names.
var columnAliases = map[string]string{
	"location":      "locality",
	"rent/month":    "rent",
	"rent_month":    "rent",
	"price":         "price_lakh",
	"rate_per_sqft": "rate_sqft",
	"rate":          "rate_sqft",
	"area":          "area_sqft",
	"bhk":           "bedrooms",
	"age_years":     "age",
}

// CSVSource reads the datasets from two CSV files.
type CSVSource struct {
	pricePath string
	rentPath  string
	logger    *utils.Logger
}

func NewCSVSource(pricePath, rentPath string, logger *utils.Logger) *CSVSource {
	return &CSVSource{pricePath: pricePath, rentPath: rentPath, logger: logger}
}

func (s *CSVSource) LoadPrices(_ context.Context) ([]models.RawRecord, error) {
	f, err := os.Open(s.pricePath)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", s.pricePath, err)
	}
	defer f.Close()
	return ReadPrices(f, s.logger)
}

func (s *CSVSource) LoadRents(_ context.Context) ([]models.RawRentRecord, error) {
	f, err := os.Open(s.rentPath)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", s.rentPath, err)
	}
	defer f.Close()
	return ReadRents(f, s.logger)
}

func (s *CSVSource) Close() error { return nil }

// NormalizeColumn trims and lower-cases a header, replaces spaces with
// underscores and applies the known aliases.
func NormalizeColumn(name string) string {
	col := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	col = strings.TrimPrefix(col, "\ufeff")
	if canonical, ok := columnAliases[col]; ok {
		return canonical
	}
	return col
}

type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: empty file: %w", ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	t := &table{index: make(map[string]int, len(header))}
	for i, h := range header {
		col := NormalizeColumn(h)
		if _, dup := t.index[col]; !dup {
			t.index[col] = i
		}
	}
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			return nil, fmt.Errorf("csv: column %q: %w", col, ErrMissingColumns)
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read rows: %w", err)
	}
	t.rows = rows
	return t, nil
}

func (t *table) cell(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) number(row []string, col string) (float64, bool) {
	return utils.ParseAmount(t.cell(row, col))
}

func (t *table) integer(row []string, col string) int {
	v, ok := t.number(row, col)
	if !ok {
		return 0
	}
	return int(v)
}

// ReadPrices parses a price dataset. Rows whose price cannot be parsed are skipped.
func ReadPrices(r io.Reader, logger *utils.Logger) ([]models.RawRecord, error) {
	t, err := readTable(r, "locality", "price_lakh")
	if err != nil {
		return nil, err
	}

	out := make([]models.RawRecord, 0, len(t.rows))
	for i, row := range t.rows {
		price, ok := t.number(row, "price_lakh")
		if !ok {
			logger.Warn("[csv] Skipping price row %d: unparseable price %q", i+2, t.cell(row, "price_lakh"))
			continue
		}
		rate, _ := t.number(row, "rate_sqft")
		area, _ := t.number(row, "area_sqft")
		out = append(out, models.RawRecord{
			Locality:     t.cell(row, "locality"),
			PriceLakh:    price,
			AreaSqft:     area,
			RateSqft:     rate,
			Bedrooms:     t.integer(row, "bedrooms"),
			AgeYears:     t.integer(row, "age"),
			Availability: t.cell(row, "availability"),
		})
	}
	logger.Info("[csv] Loaded %d price rows", len(out))
	return out, nil
}

// ReadRents parses a rent dataset. Rows whose rent cannot be parsed are skipped.
func ReadRents(r io.Reader, logger *utils.Logger) ([]models.RawRentRecord, error) {
	t, err := readTable(r, "locality", "rent")
	if err != nil {
		return nil, err
	}

	out := make([]models.RawRentRecord, 0, len(t.rows))
	for i, row := range t.rows {
		rent, ok := t.number(row, "rent")
		if !ok {
			logger.Warn("[csv] Skipping rent row %d: unparseable rent %q", i+2, t.cell(row, "rent"))
			continue
		}
		out = append(out, models.RawRentRecord{Locality: t.cell(row, "locality"), Rent: rent})
	}
	logger.Info("[csv] Loaded %d rent rows", len(out))
	return out, nil
}

// formatFloat renders v without trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
