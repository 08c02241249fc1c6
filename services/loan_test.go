package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMI(t *testing.T) {
	tests := []struct {
		principal float64
		rate      float64
		years     int
		want      float64
		delta     float64
	}{
		{4000000, 8.5, 20, 34712.9, 1},
		{120000, 0, 10, 1000, 1e-9},
		{0, 8.5, 20, 0, 1e-9},
	}

	for _, tt := range tests {
		got, err := EMI(tt.principal, tt.rate, tt.years)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, tt.delta, "EMI(%v, %v, %d)", tt.principal, tt.rate, tt.years)
	}
}

func TestEMIInvalidTenure(t *testing.T) {
	for _, years := range []int{0, -1} {
		_, err := EMI(100000, 8.5, years)
		assert.True(t, errors.Is(err, ErrInvalidTenure), "years=%d", years)
	}
}

func TestEMIInvalidInput(t *testing.T) {
	_, err := EMI(-1, 8.5, 10)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = EMI(100000, -0.5, 10)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestEMIMonotonic(t *testing.T) {
	base, _ := EMI(5000000, 8.5, 20)

	higherRate, _ := EMI(5000000, 9.5, 20)
	assert.Greater(t, higherRate, base)

	higherPrincipal, _ := EMI(6000000, 8.5, 20)
	assert.Greater(t, higherPrincipal, base)

	longer, _ := EMI(5000000, 8.5, 25)
	assert.Less(t, longer, base)
}

func TestSchedule(t *testing.T) {
	s, err := Schedule(4000000, 8.5, 20)
	require.NoError(t, err)

	assert.Equal(t, 240, s.Months)
	assert.InDelta(t, 34712.9, s.EMI, 1)
	assert.InDelta(t, s.EMI*240, s.TotalPayment, 1)
	assert.InDelta(t, s.TotalPayment-4000000, s.TotalInterest, 1)

	_, err = Schedule(4000000, 8.5, 0)
	assert.True(t, errors.Is(err, ErrInvalidTenure))
}

func TestEMILongTenure(t *testing.T) {
	got, err := EMI(4800000, 8.5, 10000)
	require.NoError(t, err)
	assert.InDelta(t, 4800000*8.5/1200, got, 1e-6)

	s, err := Schedule(4000000, 8.5, 10000)
	require.NoError(t, err)
	assert.Equal(t, 120000, s.Months)
	assert.True(t, isFinite(s.EMI, s.TotalInterest, s.TotalPayment))
}

func TestEMITinyRateMatchesZeroRate(t *testing.T) {
	got, err := EMI(120000, 1e-12, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1000, got, 1e-6)
}

func TestEMIUnrepresentable(t *testing.T) {
	_, err := EMI(1e308, 1e10, 20)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
