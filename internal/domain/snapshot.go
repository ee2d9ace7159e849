package domain

import "time"

const (
	ColumnDate = "fecha"
	ColumnBase = "moneda_base"
)

type Snapshot struct {
	Date  time.Time
	Base  Currency
	Rates NormalizedRates
}

// Columns returns the two fixed columns followed by the rate columns present
// in the snapshot, ordered as in targets.
func (s Snapshot) Columns(targets []Currency) []string {
	cols := []string{ColumnDate, ColumnBase}
	for _, t := range targets {
		if _, ok := s.Rates[t]; ok {
			cols = append(cols, string(t))
		}
	}
	return cols
}

// Key identifies the snapshot for deduplication purposes.
func (s Snapshot) Key() string {
	return SnapshotKey(s.Date, s.Base)
}

func SnapshotKey(date time.Time, base Currency) string {
	return "snapshot:" + date.Format(time.DateOnly) + ":" + string(base)
}
