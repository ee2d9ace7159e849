package application

import (
	"testing"
	"time"

	"fxsnapshot/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestNormalize_EndToEndExample(t *testing.T) {
	t.Parallel()
	got := Normalize(sampleTable(), "USD", []domain.Currency{"EUR", "GBP", "JPY", "CAD"})
	require.Len(t, got, 3)
	require.InDelta(t, 0.9, got["EUR"], 1e-12)
	require.InDelta(t, 0.8, got["GBP"], 1e-12)
	require.InDelta(t, 150, got["JPY"], 1e-12)
	require.NotContains(t, got, domain.Currency("CAD"))
	require.NotContains(t, got, domain.Currency("XYZ"))
}

func TestNormalize_DividesByBaseRate(t *testing.T) {
	t.Parallel()
	raw := domain.RateTable{Rates: map[string]float64{"EUR": 1, "USD": 1.25, "GBP": 0.85}}
	got := Normalize(raw, "USD", []domain.Currency{"EUR", "GBP"})
	require.InDelta(t, 0.8, got["EUR"], 1e-12)
	require.InDelta(t, 0.68, got["GBP"], 1e-12)
}

func TestNormalize_MissingBaseLeavesRatesUnchanged(t *testing.T) {
	t.Parallel()
	raw := domain.RateTable{Rates: map[string]float64{"EUR": 0.9, "JPY": 150}}
	got := Normalize(raw, "USD", []domain.Currency{"EUR", "JPY"})
	require.Equal(t, domain.NormalizedRates{"EUR": 0.9, "JPY": 150}, got)
}

func TestNormalize_ZeroBaseTreatedAsUnit(t *testing.T) {
	t.Parallel()
	raw := domain.RateTable{Rates: map[string]float64{"USD": 0, "EUR": 0.9}}
	got := Normalize(raw, "USD", []domain.Currency{"EUR"})
	require.Equal(t, domain.NormalizedRates{"EUR": 0.9}, got)
}

func TestNormalize_OutputKeysAreSubsetOfTargetsAndSource(t *testing.T) {
	t.Parallel()
	targets := []domain.Currency{"EUR", "MXN", "CAD", "AUD"}
	raw := domain.RateTable{Rates: map[string]float64{"USD": 1, "EUR": 0.9, "MXN": 17, "BRL": 5}}
	got := Normalize(raw, "USD", targets)
	for k := range got {
		require.Contains(t, targets, k)
		require.Contains(t, raw.Rates, string(k))
	}
	require.Equal(t, []domain.Currency{"CAD", "AUD"}, MissingTargets(raw, targets))
}

func TestBuildSnapshot_UsesRunDateNotSourceDate(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, 6, 30, 22, 30, 0, 0, loc)
	s := BuildSnapshot(now, domain.NormalizedRates{"EUR": 0.9}, "USD")
	require.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), s.Date)
	require.Equal(t, domain.Currency("USD"), s.Base)
	require.Equal(t, domain.NormalizedRates{"EUR": 0.9}, s.Rates)
}
