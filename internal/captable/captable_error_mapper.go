package captable

import (
	"errors"

	captableerrors "go-flexile/internal/captable/errors"
	"go-flexile/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return captableerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return captableerrors.ErrDuplicateInvestor
	}

	return apperror.Internal(err)
}
