package salary

import (
	"math"
	"strconv"
	"time"

	"go-hrpay/internal/attendance"
	"go-hrpay/internal/company"
	salaryerrors "go-hrpay/internal/salary/errors"
)

// MaxAmount caps bonus, deduction and attendance bonus on a salary, and the
// base salary on an employee.
const MaxAmount int64 = 1_000_000_000_000_000

// ComputeTotal is the salary formula. It has no side effects.
func ComputeTotal(baseSalary, bonus, attendanceBonus, deduction int64) int64 {
	return baseSalary + bonus + attendanceBonus - deduction
}

// TotalOf is ComputeTotal with an overflow check. Inputs must be
// non-negative; subtracting the deduction can then never overflow.
func TotalOf(baseSalary, bonus, attendanceBonus, deduction int64) (int64, error) {
	if baseSalary < 0 || bonus < 0 || attendanceBonus < 0 || deduction < 0 {
		return 0, salaryerrors.ErrTotalOutOfRange
	}
	if bonus > math.MaxInt64-attendanceBonus || baseSalary > math.MaxInt64-bonus-attendanceBonus {
		return 0, salaryerrors.ErrTotalOutOfRange
	}
	return ComputeTotal(baseSalary, bonus, attendanceBonus, deduction), nil
}

// Adjustments are the attendance driven amounts suggested for a month.
type Adjustments struct {
	AttendanceBonus int64
	Deduction       int64
}

// SuggestAdjustments grants the attendance bonus only to a month without
// ABSENT or LATE days, and charges the late penalty once per LATE day.
// Rates are percentages of the base salary.
func SuggestAdjustments(base int64, counts map[attendance.Status]int64, settings company.Settings) Adjustments {
	var adj Adjustments

	late := counts[attendance.StatusLate]
	absent := counts[attendance.StatusAbsent]

	if late == 0 && absent == 0 {
		adj.AttendanceBonus = percentOf(base, settings.AttendanceBonusRate)
	}
	if late > 0 {
		adj.Deduction = late * percentOf(base, settings.LateAttendancePenaltyRate)
	}
	return adj
}

func percentOf(base int64, rate float64) int64 {
	if rate <= 0 {
		return 0
	}
	return int64(math.Round(float64(base) * rate / 100))
}

func validateMonth(month string) error {
	if len(month) != 2 {
		return salaryerrors.ErrInvalidMonth
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return salaryerrors.ErrInvalidMonth
	}
	return nil
}

func validateYear(year string) error {
	if len(year) != 4 {
		return salaryerrors.ErrInvalidYear
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return salaryerrors.ErrInvalidYear
		}
	}
	return nil
}

func validatePeriod(month, year string) error {
	if err := validateMonth(month); err != nil {
		return err
	}
	return validateYear(year)
}

func validateAmounts(req CreateSalaryRequest) error {
	switch {
	case req.Bonus < 0:
		return salaryerrors.ErrNegativeBonus
	case req.Bonus > MaxAmount:
		return salaryerrors.ErrBonusTooLarge
	case req.Deduction < 0:
		return salaryerrors.ErrNegativeDeduction
	case req.Deduction > MaxAmount:
		return salaryerrors.ErrDeductionTooLarge
	case req.AttendanceBonus < 0:
		return salaryerrors.ErrNegativeAttendanceBonus
	case req.AttendanceBonus > MaxAmount:
		return salaryerrors.ErrAttendanceBonusTooLarge
	}
	return nil
}

// periodRange returns the first and last day of the month in UTC dates,
// matching how attendance dates are stored.
func periodRange(month, year string) (time.Time, time.Time) {
	m, _ := strconv.Atoi(month)
	y, _ := strconv.Atoi(year)
	from := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}
