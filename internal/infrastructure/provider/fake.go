package provider

import (
	"context"
	"maps"
	"time"

	"fxsnapshot/internal/application"
	"fxsnapshot/internal/domain"
)

// Ensure Fake implements application.RateFetcher.
var _ application.RateFetcher = (*Fake)(nil)

// Fake serves a fixed USD-quoted table.
type Fake struct {
	rates map[string]float64
}

func NewFake() *Fake {
	return &Fake{rates: map[string]float64{
		"USD": 1, "EUR": 0.92, "GBP": 0.79, "JPY": 151.2, "CAD": 1.36, "MXN": 17.05,
	}}
}

func (f *Fake) Fetch(_ context.Context, _ domain.Currency) (domain.RateTable, error) {
	return domain.RateTable{
		Base:  "USD",
		Date:  time.Now().UTC().Format(time.DateOnly),
		Rates: maps.Clone(f.rates),
	}, nil
}
