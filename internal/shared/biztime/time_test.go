package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func init() {
	MustInit("UTC")
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		in     time.Time
		months int
		want   time.Time
	}{
		{
			"plain month",
			time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC), 1,
			time.Date(2026, 2, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			"year boundary",
			time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), 1,
			time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"jan 31 overflows into march",
			time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 1,
			time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.in, tt.months))
		})
	}
}

func TestMonthlyPeriodsElapsed(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, MonthlyPeriodsElapsed(start, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, MonthlyPeriodsElapsed(start, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, MonthlyPeriodsElapsed(start, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 4, MonthlyPeriodsElapsed(start, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)))
}

func TestStartOfMonthUTC(t *testing.T) {
	in := time.Date(2026, 3, 17, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), StartOfMonthUTC(in))
}

func TestStartOfDayUTC(t *testing.T) {
	in := time.Date(2026, 3, 17, 13, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), StartOfDayUTC(in))
}
