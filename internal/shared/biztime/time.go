// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. The business timezone is only used for
// calculating date boundaries (start/end of day and month).
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is the default business timezone.
const DefaultTimezone = "America/Sao_Paulo"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location, auto-initializing with the
// default timezone when not yet configured.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the start of day (00:00:00) in business timezone,
// converted to UTC for storage and queries.
func StartOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// StartOfMonthUTC returns the start of the month containing t in business
// timezone, converted to UTC.
func StartOfMonthUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfMonth := time.Date(bizTime.Year(), bizTime.Month(), 1, 0, 0, 0, 0, Location())
	return startOfMonth.UTC()
}

// AddMonths advances t by the given number of calendar months, preserving the
// wall-clock time in the business timezone. Day-of-month overflow follows
// time.AddDate semantics (Jan 31 + 1 month = Mar 2/3).
func AddMonths(t time.Time, months int) time.Time {
	bizTime := t.In(Location())
	return bizTime.AddDate(0, months, 0).UTC()
}

// MonthlyPeriodsElapsed reports how many whole monthly periods starting at
// periodStart have fully elapsed by now. Returns 0 when now is still inside
// the first period.
func MonthlyPeriodsElapsed(periodStart, now time.Time) int {
	elapsed := 0
	cursor := AddMonths(periodStart, 1)
	for !now.Before(cursor) {
		elapsed++
		cursor = AddMonths(cursor, 1)
	}
	return elapsed
}
