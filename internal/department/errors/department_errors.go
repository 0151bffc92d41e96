package departmenterrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameExists = apperror.New(
		apperror.CodeConflict,
		"A department with this name already exists",
		http.StatusConflict,
	)
	ErrDepartmentInUse = apperror.New(
		"DEPARTMENT_IN_USE",
		"Department still has active employees",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
)
