package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"proptech-analytics/models"
)

func TestCSVWriterRanking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "ranking.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	err = w.WriteRanking([]models.RankEntry{
		{Locality: "Thane", AvgROI: 4.5, AvgPrice: 80, AvgRent: 30000},
		{Locality: "Powai", AvgROI: 3.25, AvgPrice: 150, AvgRent: 40000},
	})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Equal(t, []string{
		"rank,locality,avg_roi,avg_price_lakh,avg_rent",
		"1,Thane,4.5,80,30000",
		"2,Powai,3.25,150,40000",
	}, lines)
}
