package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proptech-analytics/utils"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{" Location ", "locality"},
		{"Rent/Month", "rent"},
		{"Price", "price_lakh"},
		{"price_lakh", "price_lakh"},
		{"Rate per sqft", "rate_sqft"},
		{"Area", "area_sqft"},
		{"Availability", "availability"},
	}

	for _, tt := range tests {
		if got := NormalizeColumn(tt.raw); got != tt.want {
			t.Errorf("NormalizeColumn(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestReadPrices(t *testing.T) {
	data := `Location,Price,Area,Rate per sqft,Bedrooms,Age,Availability
"Andheri West, Mumbai",150,1000,"15,000",2,5,Ready
Powai,n/a,800,12000,2,3,Ready
Thane West,"85.5",950,9000,2,,Under Construction
`
	got, err := ReadPrices(strings.NewReader(data), utils.NewNopLogger())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Andheri West, Mumbai", got[0].Locality)
	assert.Equal(t, 150.0, got[0].PriceLakh)
	assert.Equal(t, 15000.0, got[0].RateSqft)
	assert.Equal(t, 2, got[0].Bedrooms)
	assert.Equal(t, "Ready", got[0].Availability)

	assert.Equal(t, 85.5, got[1].PriceLakh)
	assert.Equal(t, 0, got[1].AgeYears)
}

func TestReadRents(t *testing.T) {
	data := "locality,rent\nAndheri,\"45,000\"\nPowai,40000\nBandra,\n"
	got, err := ReadRents(strings.NewReader(data), utils.NewNopLogger())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 45000.0, got[0].Rent)
	assert.Equal(t, "Powai", got[1].Locality)
}

func TestReadMissingColumns(t *testing.T) {
	_, err := ReadPrices(strings.NewReader("locality,area\nAndheri,100\n"), utils.NewNopLogger())
	assert.True(t, errors.Is(err, ErrMissingColumns))

	_, err = ReadRents(strings.NewReader(""), utils.NewNopLogger())
	assert.True(t, errors.Is(err, ErrMissingColumns))
}

func TestCSVSourceLoad(t *testing.T) {
	dir := t.TempDir()
	pricePath := filepath.Join(dir, "prices.csv")
	rentPath := filepath.Join(dir, "rents.csv")
	require.NoError(t, os.WriteFile(pricePath, []byte("locality,price_lakh,rate_sqft\nPowai,120,15000\n"), 0644))
	require.NoError(t, os.WriteFile(rentPath, []byte("locality,rent\nPowai,40000\n"), 0644))

	src := NewCSVSource(pricePath, rentPath, utils.NewNopLogger())
	defer src.Close()

	prices, err := src.LoadPrices(context.Background())
	require.NoError(t, err)
	assert.Len(t, prices, 1)

	rents, err := src.LoadRents(context.Background())
	require.NoError(t, err)
	assert.Len(t, rents, 1)
}

func TestCSVSourceMissingFile(t *testing.T) {
	src := NewCSVSource("/nonexistent/prices.csv", "/nonexistent/rents.csv", utils.NewNopLogger())
	_, err := src.LoadPrices(context.Background())
	assert.Error(t, err)
}
