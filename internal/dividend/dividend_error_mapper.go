package dividend

import (
	"errors"

	"go-flexile/internal/shared/apperror"

	"gorm.io/gorm"
)

// mapRepositoryError translates not-found into notFound and wraps
// everything else as an internal error.
func mapRepositoryError(err error, notFound *apperror.AppError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperror.Internal(err)
}
