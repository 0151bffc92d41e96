package employeeerrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		"EMPLOYEE_NOT_FOUND",
		"Employee not found",
		http.StatusNotFound,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrUserAlreadyEmployed = apperror.New(
		apperror.CodeConflict,
		"User already belongs to a company",
		http.StatusConflict,
	)
	ErrUserInactive = apperror.New(
		apperror.CodeInvalidState,
		"User account is inactive",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists in this company",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidJoinDate = apperror.New(
		apperror.CodeInvalidInput,
		"join_date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrAlreadyInactive = apperror.New(
		apperror.CodeInvalidState,
		"Employee is already inactive",
		http.StatusBadRequest,
	)
	ErrCannotDeactivateSelf = apperror.New(
		apperror.CodeInvalidInput,
		"You cannot deactivate yourself",
		http.StatusBadRequest,
	)
	ErrInvalidPhoto = apperror.New(
		apperror.CodeInvalidInput,
		"Photo must be a png, jpg or webp image",
		http.StatusBadRequest,
	)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeNotFound,
		"No employee profile is linked to this account",
		http.StatusNotFound,
	)
)
