package company

import (
	"errors"

	companyerrors "go-flexile/internal/company/errors"
	"go-flexile/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}
	return apperror.Internal(err)
}
