package leave

import (
	"errors"
	"strings"

	leaveerrors "go-hrpay/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_policy_company_type" {
			return leaveerrors.ErrDuplicatePolicy
		}
		if pgErr.Code == "22P02" {
			return leaveerrors.ErrInvalidLeaveID
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_policy_company_type") {
		return leaveerrors.ErrDuplicatePolicy
	}

	return err
}

func mapPolicyError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrPolicyNotFound
	}
	return mapRepositoryError(err)
}
