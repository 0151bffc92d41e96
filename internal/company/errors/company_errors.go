package companyerrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrCompanyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Company with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	// settings updates answer 401 rather than 403 for a caller that cannot
	// manage the company
	ErrUnauthorizedSettings = apperror.New(
		apperror.CodeUnauthorized,
		"You are not allowed to change this company's settings",
		http.StatusUnauthorized,
	)

	ErrNoValidFields = apperror.New(
		"NO_VALID_FIELDS",
		"No valid settings fields provided",
		http.StatusBadRequest,
	)

	ErrInvalidMinimumWorkHours = apperror.New(
		"INVALID_MINIMUM_WORK_HOURS",
		"minimum_work_hours must be greater than 0 and at most 24",
		http.StatusBadRequest,
	)

	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"Rates must be numbers between 0 and 100",
		http.StatusBadRequest,
	)

	ErrInvalidCheckInWindow = apperror.New(
		apperror.CodeInvalidInput,
		"check_in_start_time and check_in_end_time must be HH:MM with start before end",
		http.StatusBadRequest,
	)

	ErrInvalidLogo = apperror.New(
		apperror.CodeInvalidInput,
		"Logo must be a png, jpg or webp image",
		http.StatusBadRequest,
	)
)
