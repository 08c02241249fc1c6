package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite3"
)

// SQLSource reads and writes the datasets in a SQL database.
// Postgres and SQLite share one schema.
type SQLSource struct {
	db     *sql.DB
	driver string
}

// NewPostgresSource opens a PostgreSQL connection, retrying the ping
// according to retry, and runs schema migrations.
func NewPostgresSource(ctx context.Context, dsn string, retry *utils.RetryConfig) (*SQLSource, error) {
	db, err := sql.Open(driverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return newSQLSource(ctx, db, driverPostgres)
}

// NewSQLiteSource opens (or creates) the SQLite database at path.
// Use ":memory:" for a throwaway database.
func NewSQLiteSource(ctx context.Context, path string) (*SQLSource, error) {
	db, err := sql.Open(driverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across queries.
	db.SetMaxOpenConns(1)

	return newSQLSource(ctx, db, driverSQLite)
}

func newSQLSource(ctx context.Context, db *sql.DB, driver string) (*SQLSource, error) {
	s := &SQLSource{db: db, driver: driver}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: migrate: %w", driver, err)
	}
	return s, nil
}

// Migrate creates the dataset tables if they do not exist.
func (s *SQLSource) Migrate(ctx context.Context) error {
	id := "id SERIAL PRIMARY KEY"
	if s.driver == driverSQLite {
		id = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS price_listings (
			` + id + `,
			locality     TEXT             NOT NULL,
			price_lakh   DOUBLE PRECISION NOT NULL DEFAULT 0,
			area_sqft    DOUBLE PRECISION NOT NULL DEFAULT 0,
			rate_sqft    DOUBLE PRECISION NOT NULL DEFAULT 0,
			bedrooms     INTEGER          NOT NULL DEFAULT 0,
			age          INTEGER          NOT NULL DEFAULT 0,
			availability TEXT             NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS rent_listings (
			` + id + `,
			locality TEXT             NOT NULL,
			rent     DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_listings_locality ON price_listings(locality)`,
		`CREATE INDEX IF NOT EXISTS idx_rent_listings_locality ON rent_listings(locality)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Clear deletes all rows from both dataset tables.
func (s *SQLSource) Clear(ctx context.Context) error {
	return s.clear(ctx, s.db)
}

// SavePrices batch-inserts price rows.
func (s *SQLSource) SavePrices(ctx context.Context, records []models.RawRecord) error {
	return s.savePrices(ctx, s.db, records)
}

// SaveRents batch-inserts rent rows.
func (s *SQLSource) SaveRents(ctx context.Context, records []models.RawRentRecord) error {
	return s.saveRents(ctx, s.db, records)
}

// Replace swaps both datasets for prices and rents in one transaction.
// On any error the previous rows are left untouched.
func (s *SQLSource) Replace(ctx context.Context, prices []models.RawRecord, rents []models.RawRentRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", s.driver, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.clear(ctx, tx); err != nil {
		return err
	}
	if err := s.savePrices(ctx, tx, prices); err != nil {
		return err
	}
	if err := s.saveRents(ctx, tx, rents); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", s.driver, err)
	}
	return nil
}

func (s *SQLSource) clear(ctx context.Context, ex execer) error {
	for _, tbl := range []string{"price_listings", "rent_listings"} {
		if _, err := ex.ExecContext(ctx, "DELETE FROM "+tbl); err != nil {
			return fmt.Errorf("%s: clear %s: %w", s.driver, tbl, err)
		}
	}
	return nil
}

const batchSize = 50

func (s *SQLSource) savePrices(ctx context.Context, ex execer, records []models.RawRecord) error {
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		args := make([]interface{}, 0, (end-i)*7)
		for _, r := range records[i:end] {
			args = append(args, r.Locality, r.PriceLakh, r.AreaSqft, r.RateSqft, r.Bedrooms, r.AgeYears, r.Availability)
		}
		query := s.insertQuery("price_listings",
			[]string{"locality", "price_lakh", "area_sqft", "rate_sqft", "bedrooms", "age", "availability"}, end-i)
		if _, err := ex.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%s: insert prices: %w", s.driver, err)
		}
	}
	return nil
}

func (s *SQLSource) saveRents(ctx context.Context, ex execer, records []models.RawRentRecord) error {
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		args := make([]interface{}, 0, (end-i)*2)
		for _, r := range records[i:end] {
			args = append(args, r.Locality, r.Rent)
		}
		query := s.insertQuery("rent_listings", []string{"locality", "rent"}, end-i)
		if _, err := ex.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%s: insert rents: %w", s.driver, err)
		}
	}
	return nil
}

// insertQuery builds a multi-row INSERT using the driver's placeholder style.
func (s *SQLSource) insertQuery(table string, columns []string, rows int) string {
	values := make([]string, 0, rows)
	n := 0
	for r := 0; r < rows; r++ {
		ph := make([]string, len(columns))
		for c := range columns {
			n++
			if s.driver == driverPostgres {
				ph[c] = fmt.Sprintf("$%d", n)
			} else {
				ph[c] = "?"
			}
		}
		values = append(values, "("+strings.Join(ph, ",")+")")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(columns, ", "), strings.Join(values, ","))
}

func (s *SQLSource) LoadPrices(ctx context.Context) ([]models.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT locality, price_lakh, area_sqft, rate_sqft, bedrooms, age, availability
		FROM price_listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch prices: %w", s.driver, err)
	}
	defer rows.Close()

	var out []models.RawRecord
	for rows.Next() {
		var r models.RawRecord
		if err := rows.Scan(&r.Locality, &r.PriceLakh, &r.AreaSqft, &r.RateSqft,
			&r.Bedrooms, &r.AgeYears, &r.Availability); err != nil {
			return nil, fmt.Errorf("%s: scan price row: %w", s.driver, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLSource) LoadRents(ctx context.Context) ([]models.RawRentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT locality, rent FROM rent_listings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch rents: %w", s.driver, err)
	}
	defer rows.Close()

	var out []models.RawRentRecord
	for rows.Next() {
		var r models.RawRentRecord
		if err := rows.Scan(&r.Locality, &r.Rent); err != nil {
			return nil, fmt.Errorf("%s: scan rent row: %w", s.driver, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}
