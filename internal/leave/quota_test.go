package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuotaWindows(t *testing.T) {
	tests := []struct {
		frequency string
		ref       time.Time
		from, to  time.Time
	}{
		{FrequencyWeekly, day(2026, 3, 18), day(2026, 3, 16), day(2026, 3, 22)},
		{FrequencyWeekly, day(2026, 3, 22), day(2026, 3, 16), day(2026, 3, 22)},
		{FrequencyWeekly, day(2026, 3, 16), day(2026, 3, 16), day(2026, 3, 22)},
		{FrequencyMonthly, day(2026, 2, 14), day(2026, 2, 1), day(2026, 2, 28)},
		{FrequencyMonthly, day(2028, 2, 14), day(2028, 2, 1), day(2028, 2, 29)},
		{FrequencyYearly, day(2026, 7, 1), day(2026, 1, 1), day(2026, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.frequency+" "+tt.ref.Format(dateLayout), func(t *testing.T) {
			s, err := quotaStrategyFor(tt.frequency)
			assert.NoError(t, err)

			from, to := s.Window(tt.ref)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}

func TestQuotaStrategy_Unknown(t *testing.T) {
	_, err := quotaStrategyFor("HOURLY")
	assert.Error(t, err)
}

func TestRegisterQuotaStrategy(t *testing.T) {
	RegisterQuotaStrategy("QUARTERLY", QuotaStrategyFunc(func(ref time.Time) (time.Time, time.Time) {
		q := (int(ref.Month()) - 1) / 3
		from := time.Date(ref.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, ref.Location())
		return from, from.AddDate(0, 3, -1)
	}))

	s, err := quotaStrategyFor("QUARTERLY")
	assert.NoError(t, err)
	from, to := s.Window(day(2026, 5, 20))
	assert.Equal(t, day(2026, 4, 1), from)
	assert.Equal(t, day(2026, 6, 30), to)
}
