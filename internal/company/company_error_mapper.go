package company

import (
	"errors"
	"strings"

	companyerrors "go-hrpay/internal/company/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_companies_email" {
			return companyerrors.ErrCompanyAlreadyExists
		}
		// 22P02: invalid text representation, e.g. a malformed uuid
		if pgErr.Code == "22P02" {
			return companyerrors.ErrInvalidCompanyID
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_companies_email") {
		return companyerrors.ErrCompanyAlreadyExists
	}

	return err
}
