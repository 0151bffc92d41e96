package autherrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)
	// invalid and expired tokens are 403 so the client does not loop back
	// through the login redirect
	ErrInvalidToken = apperror.New(
		apperror.CodeInvalidToken,
		"Invalid authentication token",
		http.StatusForbidden,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeTokenExpired,
		"Authentication token has expired",
		http.StatusForbidden,
	)
	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeInvalidToken,
		"Invalid refresh token",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)
	ErrNoCompany = apperror.New(
		apperror.CodeForbidden,
		"Your account is not assigned to a company yet",
		http.StatusForbidden,
	)
	ErrInvalidCredentials = apperror.New(
		"AUTH_FAILED",
		"Email atau password salah",
		http.StatusUnauthorized,
	)
	ErrInactiveUser = apperror.New(
		"AUTH_FAILED",
		"Account is inactive",
		http.StatusUnauthorized,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		"EMAIL_ALREADY_REGISTERED",
		"Email is already registered",
		http.StatusConflict,
	)
	ErrInvalidDateOfBirth = apperror.New(
		apperror.CodeValidationError,
		"dob must be a past date formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
)
