package services

import (
	"time"

	apperrors "ledgerly/internal/errors"
)

const (
	minYear = 2000
	maxYear = 2100
)

// Period is one calendar month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// PeriodOf returns the month containing t, in UTC.
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Validate rejects months outside 1..12 and years outside 2000..2100.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 || p.Year < minYear || p.Year > maxYear {
		return apperrors.ErrInvalidPeriod
	}
	return nil
}

// Bounds returns the first and last calendar day of the month.
func (p Period) Bounds() (first, last time.Time) {
	first = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}
