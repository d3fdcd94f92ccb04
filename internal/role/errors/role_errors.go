package roleerrors

import (
	"go-flexile/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid role. Must be one of: admin, lawyer",
		http.StatusBadRequest,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrAlreadyAdministrator = apperror.New(
		apperror.CodeConflict,
		"User is already an administrator",
		http.StatusConflict,
	)

	ErrAlreadyLawyer = apperror.New(
		apperror.CodeConflict,
		"User is already a lawyer",
		http.StatusConflict,
	)

	ErrNotAdministrator = apperror.New(
		apperror.CodeNotFound,
		"User is not an administrator",
		http.StatusNotFound,
	)

	ErrNotLawyer = apperror.New(
		apperror.CodeNotFound,
		"User is not a lawyer",
		http.StatusNotFound,
	)

	ErrLastAdministrator = apperror.New(
		apperror.CodeInvalidState,
		"Cannot remove the last administrator",
		http.StatusUnprocessableEntity,
	)

	ErrSelfRemoval = apperror.New(
		apperror.CodeInvalidState,
		"You cannot remove your own admin role",
		http.StatusUnprocessableEntity,
	)
)
