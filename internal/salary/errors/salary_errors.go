package salaryerrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrInvalidSalaryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeValidationError,
		"employee_id must be a valid id",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeValidationError,
		"month must be between 01 and 12",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeValidationError,
		"year must be a 4 digit year",
		http.StatusBadRequest,
	)
	ErrNegativeBonus = apperror.New(
		apperror.CodeValidationError,
		"bonus must not be negative",
		http.StatusBadRequest,
	)
	ErrNegativeDeduction = apperror.New(
		apperror.CodeValidationError,
		"deduction must not be negative",
		http.StatusBadRequest,
	)
	ErrNegativeAttendanceBonus = apperror.New(
		apperror.CodeValidationError,
		"attendance_bonus must not be negative",
		http.StatusBadRequest,
	)
	ErrBonusTooLarge = apperror.New(
		apperror.CodeValidationError,
		"bonus must not exceed 1000000000000000",
		http.StatusBadRequest,
	)
	ErrDeductionTooLarge = apperror.New(
		apperror.CodeValidationError,
		"deduction must not exceed 1000000000000000",
		http.StatusBadRequest,
	)
	ErrAttendanceBonusTooLarge = apperror.New(
		apperror.CodeValidationError,
		"attendance_bonus must not exceed 1000000000000000",
		http.StatusBadRequest,
	)
	ErrTotalOutOfRange = apperror.New(
		apperror.CodeValidationError,
		"total salary is out of range",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of PAID, UNPAID",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		"EMPLOYEE_NOT_FOUND",
		"employee not found",
		http.StatusNotFound,
	)
	ErrSalaryExists = apperror.New(
		apperror.CodeConflict,
		"salary already exists for this period",
		http.StatusConflict,
	)
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary not found",
		http.StatusNotFound,
	)
	ErrAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"a paid salary cannot be reverted to UNPAID",
		http.StatusBadRequest,
	)
	ErrPayslipNotReady = apperror.New(
		apperror.CodeNotFound,
		"payslip has not been generated yet",
		http.StatusNotFound,
	)
	ErrCompanyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"company_id is required",
		http.StatusBadRequest,
	)
)
