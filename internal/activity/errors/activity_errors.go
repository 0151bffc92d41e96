package activityerrors

import (
	"net/http"

	"go-hrpay/internal/shared/apperror"
)

var ErrForbidden = apperror.New(
	apperror.CodeForbidden,
	"Only administrators can read the activity log",
	http.StatusForbidden,
)
