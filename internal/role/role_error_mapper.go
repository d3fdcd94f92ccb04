package role

import (
	"errors"

	roleerrors "go-flexile/internal/role/errors"
	"go-flexile/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapCreateError turns a unique violation on the membership table into the
// role specific "already" error.
func mapCreateError(err error, r Role) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return alreadyErr(r)
	}
	return apperror.Internal(err)
}

func alreadyErr(r Role) error {
	switch r {
	case Admin:
		return roleerrors.ErrAlreadyAdministrator
	case Lawyer:
		return roleerrors.ErrAlreadyLawyer
	}
	return roleerrors.ErrInvalidRole
}

func notMemberErr(r Role) error {
	switch r {
	case Admin:
		return roleerrors.ErrNotAdministrator
	case Lawyer:
		return roleerrors.ErrNotLawyer
	}
	return roleerrors.ErrInvalidRole
}
