package leave

import (
	"fmt"
	"sync"
	"time"
)

const (
	FrequencyWeekly  = "WEEKLY"
	FrequencyMonthly = "MONTHLY"
	FrequencyYearly  = "YEARLY"
)

// QuotaStrategy picks the window in which approved days count against a
// policy. Window returns inclusive calendar bounds containing ref.
type QuotaStrategy interface {
	Window(ref time.Time) (from, to time.Time)
}

type QuotaStrategyFunc func(ref time.Time) (time.Time, time.Time)

func (f QuotaStrategyFunc) Window(ref time.Time) (time.Time, time.Time) {
	return f(ref)
}

var (
	strategiesMu sync.RWMutex
	strategies   = map[string]QuotaStrategy{
		FrequencyWeekly:  QuotaStrategyFunc(weekWindow),
		FrequencyMonthly: QuotaStrategyFunc(monthWindow),
		FrequencyYearly:  QuotaStrategyFunc(yearWindow),
	}
)

// RegisterQuotaStrategy adds or replaces the strategy for a frequency.
func RegisterQuotaStrategy(frequency string, s QuotaStrategy) {
	strategiesMu.Lock()
	defer strategiesMu.Unlock()
	strategies[frequency] = s
}

func quotaStrategyFor(frequency string) (QuotaStrategy, error) {
	strategiesMu.RLock()
	defer strategiesMu.RUnlock()
	s, ok := strategies[frequency]
	if !ok {
		return nil, fmt.Errorf("no quota strategy for frequency %q", frequency)
	}
	return s, nil
}

// weeks start on Monday
func weekWindow(ref time.Time) (time.Time, time.Time) {
	day := truncateDay(ref)
	offset := (int(day.Weekday()) + 6) % 7
	from := day.AddDate(0, 0, -offset)
	return from, from.AddDate(0, 0, 6)
}

func monthWindow(ref time.Time) (time.Time, time.Time) {
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return from, from.AddDate(0, 1, -1)
}

func yearWindow(ref time.Time) (time.Time, time.Time) {
	from := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
	return from, time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, ref.Location())
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
