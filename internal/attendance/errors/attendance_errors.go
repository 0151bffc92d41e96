package attendanceerrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeForbidden,
		"Only employees can record attendance",
		http.StatusForbidden,
	)
	ErrCheckInTooEarly = apperror.New(
		"CHECK_IN_TOO_EARLY",
		"Check-in is not open yet",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedIn = apperror.New(
		"ALREADY_CHECKED_IN",
		"Attendance for today is already recorded",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		"NOT_CHECKED_IN",
		"No check-in found for today",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		"ALREADY_CHECKED_OUT",
		"Already checked out for today",
		http.StatusConflict,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from and to must be YYYY-MM-DD with from <= to",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeValidationError,
		"company_id must be a valid id",
		http.StatusBadRequest,
	)
	ErrCompanyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"company_id is required",
		http.StatusBadRequest,
	)
)
