package dividenderrors

import (
	"go-flexile/internal/shared/apperror"
	"net/http"
)

var (
	ErrComputationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Dividend computation not found",
		http.StatusNotFound,
	)

	ErrRoundNotFound = apperror.New(
		apperror.CodeNotFound,
		"Dividend round not found",
		http.StatusNotFound,
	)

	ErrAlreadyFinalized = apperror.New(
		apperror.CodeInvalidState,
		"Dividend computation is already finalized",
		http.StatusUnprocessableEntity,
	)

	ErrNoOutputs = apperror.New(
		apperror.CodeInvalidState,
		"Dividend computation has no outputs",
		http.StatusUnprocessableEntity,
	)
)
