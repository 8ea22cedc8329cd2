package types

import (
	"fmt"
	"time"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// MonthPeriod identifies a calendar month for assessments and statements.
// Together with the clinic id it forms the uniqueness key that guarantees at
// most one assessment per period.
type MonthPeriod struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func NewMonthPeriod(month, year int) (MonthPeriod, error) {
	p := MonthPeriod{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return MonthPeriod{}, err
	}
	return p, nil
}

func (p MonthPeriod) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ierr.NewError("invalid month").
			WithHintf("Month must be between 1 and 12, got %d", p.Month).
			Mark(ierr.ErrValidation)
	}
	if p.Year < 2000 || p.Year > 2100 {
		return ierr.NewError("invalid year").
			WithHintf("Year must be between 2000 and 2100, got %d", p.Year).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (p MonthPeriod) String() string {
	return fmt.Sprintf("%02d/%04d", p.Month, p.Year)
}

// Window returns the calendar-month window [first day 00:00:00, last day
// 23:59:59] in UTC.
func (p MonthPeriod) Window() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// TrailingTwelveMonthsWindow returns the rolling 12-month window ending at the
// last instant of this period, i.e. the trailing twelve months including the
// current one. Used to compute the RBT12 figure for bracket selection.
func (p MonthPeriod) TrailingTwelveMonthsWindow() (time.Time, time.Time) {
	_, end := p.Window()
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	return start, end
}

// Previous returns the preceding calendar month.
func (p MonthPeriod) Previous() MonthPeriod {
	if p.Month == 1 {
		return MonthPeriod{Month: 12, Year: p.Year - 1}
	}
	return MonthPeriod{Month: p.Month - 1, Year: p.Year}
}

// PeriodOf returns the MonthPeriod containing the given instant.
func PeriodOf(t time.Time) MonthPeriod {
	t = t.UTC()
	return MonthPeriod{Month: int(t.Month()), Year: t.Year()}
}
