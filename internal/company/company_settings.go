package company

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	companyerrors "go-hrpay/internal/company/errors"
)

const (
	fieldLatePenaltyRate  = "late_attendance_penalty_rate"
	fieldAttendanceBonus  = "attendance_bonus_rate"
	fieldCheckInStart     = "check_in_start_time"
	fieldCheckInEnd       = "check_in_end_time"
	fieldMinimumWorkHours = "minimum_work_hours"

	clockLayout = "15:04"
)

// settingsPatch holds the recognized keys of an update. Unknown keys are
// dropped while parsing.
type settingsPatch struct {
	latePenaltyRate  *float64
	attendanceBonus  *float64
	checkInStart     *string
	checkInEnd       *string
	minimumWorkHours *float64
}

func (p settingsPatch) empty() bool {
	return p.latePenaltyRate == nil && p.attendanceBonus == nil &&
		p.checkInStart == nil && p.checkInEnd == nil && p.minimumWorkHours == nil
}

func parseSettingsPatch(fields map[string]any) (settingsPatch, error) {
	var p settingsPatch

	if v, ok := fields[fieldLatePenaltyRate]; ok {
		rate, err := parseRate(v)
		if err != nil {
			return p, err
		}
		p.latePenaltyRate = &rate
	}

	if v, ok := fields[fieldAttendanceBonus]; ok {
		rate, err := parseRate(v)
		if err != nil {
			return p, err
		}
		p.attendanceBonus = &rate
	}

	if v, ok := fields[fieldCheckInStart]; ok {
		t, err := parseClock(v)
		if err != nil {
			return p, err
		}
		p.checkInStart = &t
	}

	if v, ok := fields[fieldCheckInEnd]; ok {
		t, err := parseClock(v)
		if err != nil {
			return p, err
		}
		p.checkInEnd = &t
	}

	if v, ok := fields[fieldMinimumWorkHours]; ok {
		hours, ok := toFloat(v)
		if !ok || hours <= 0 || hours > 24 {
			return p, companyerrors.ErrInvalidMinimumWorkHours
		}
		p.minimumWorkHours = &hours
	}

	if p.empty() {
		return p, companyerrors.ErrNoValidFields
	}
	return p, nil
}

// apply merges the patch into c and returns the column updates. The merged
// check-in window must still have start before end.
func (p settingsPatch) apply(c *Company) (map[string]any, error) {
	start, end := c.CheckInStartTime, c.CheckInEndTime
	if p.checkInStart != nil {
		start = *p.checkInStart
	}
	if p.checkInEnd != nil {
		end = *p.checkInEnd
	}
	if p.checkInStart != nil || p.checkInEnd != nil {
		if !clockBefore(start, end) {
			return nil, companyerrors.ErrInvalidCheckInWindow
		}
	}

	updates := make(map[string]any)
	if p.latePenaltyRate != nil {
		c.LateAttendancePenaltyRate = *p.latePenaltyRate
		updates[fieldLatePenaltyRate] = *p.latePenaltyRate
	}
	if p.attendanceBonus != nil {
		c.AttendanceBonusRate = *p.attendanceBonus
		updates[fieldAttendanceBonus] = *p.attendanceBonus
	}
	if p.checkInStart != nil {
		c.CheckInStartTime = start
		updates[fieldCheckInStart] = start
	}
	if p.checkInEnd != nil {
		c.CheckInEndTime = end
		updates[fieldCheckInEnd] = end
	}
	if p.minimumWorkHours != nil {
		c.MinimumWorkHours = *p.minimumWorkHours
		updates[fieldMinimumWorkHours] = *p.minimumWorkHours
	}
	return updates, nil
}

func parseRate(v any) (float64, error) {
	rate, ok := toFloat(v)
	if !ok || rate < 0 || rate > 100 {
		return 0, companyerrors.ErrInvalidRate
	}
	return rate, nil
}

func parseClock(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", companyerrors.ErrInvalidCheckInWindow
	}
	s = strings.TrimSpace(s)
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return "", companyerrors.ErrInvalidCheckInWindow
	}
	return t.Format(clockLayout), nil
}

func clockBefore(a, b string) bool {
	ta, errA := time.Parse(clockLayout, a)
	tb, errB := time.Parse(clockLayout, b)
	if errA != nil || errB != nil {
		return false
	}
	return ta.Before(tb)
}

// toFloat accepts what encoding/json and form values produce.
// toFloat accepts JSON numbers and numeric strings. NaN and infinities are
// never valid settings.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ClockOn returns the HH:MM time-of-day on the calendar day of ref, in ref's
// location.
func ClockOn(ref time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse(clockLayout, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := ref.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
}
