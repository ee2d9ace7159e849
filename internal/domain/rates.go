package domain

// RateTable is the payload of the rates source for one base currency.
// Rates holds every currency the source returned, not only the configured targets.
type RateTable struct {
	Base  string
	Date  string
	Rates map[string]float64
}

// NormalizedRates maps a target currency to its rate relative to the base currency.
type NormalizedRates map[Currency]float64
