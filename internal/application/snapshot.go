package application

import (
	"time"

	"fxsnapshot/internal/domain"
)

// BuildSnapshot stamps normalized rates with the calendar date of now.
// The date is taken in now's location and stored as UTC midnight.
func BuildSnapshot(now time.Time, normalized domain.NormalizedRates, base domain.Currency) domain.Snapshot {
	y, m, d := now.Date()
	return domain.Snapshot{
		Date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Base:  base,
		Rates: normalized,
	}
}
