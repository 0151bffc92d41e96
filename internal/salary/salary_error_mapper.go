package salary

import (
	"errors"
	"strings"

	salaryerrors "go-hrpay/internal/salary/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const periodConstraint = "uq_salary_employee_period"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == periodConstraint {
			return salaryerrors.ErrSalaryExists
		}
		if pgErr.Code == "22P02" {
			return salaryerrors.ErrInvalidSalaryID
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, periodConstraint) {
		return salaryerrors.ErrSalaryExists
	}

	return err
}
