package application

import "fxsnapshot/internal/domain"

// Normalize expresses every target present in raw relative to base.
// When base is missing from raw (or quoted as zero) the table is assumed to
// already be quoted in base and rates pass through unchanged. Targets absent
// from raw are left out of the result.
func Normalize(raw domain.RateTable, base domain.Currency, targets []domain.Currency) domain.NormalizedRates {
	baseRate := 1.0
	if v, ok := raw.Rates[string(base)]; ok && v != 0 {
		baseRate = v
	}

	out := make(domain.NormalizedRates, len(targets))
	for _, t := range targets {
		v, ok := raw.Rates[string(t)]
		if !ok {
			continue
		}
		out[t] = v / baseRate
	}
	return out
}

// MissingTargets lists the targets the source did not quote, in target order.
func MissingTargets(raw domain.RateTable, targets []domain.Currency) []domain.Currency {
	var missing []domain.Currency
	for _, t := range targets {
		if _, ok := raw.Rates[string(t)]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}
