package captableerrors

import (
	"go-flexile/internal/shared/apperror"
	"net/http"
)

var (
	ErrEquityNotEnabled = apperror.New(
		apperror.CodeInvalidState,
		"Company must have equity enabled",
		http.StatusUnprocessableEntity,
	)

	ErrCapTableExists = apperror.New(
		apperror.CodeConflict,
		"Company already has cap table data",
		http.StatusConflict,
	)

	// ErrInvalidInvestors carries the per-row messages in Details.
	ErrInvalidInvestors = apperror.New(
		apperror.CodeInvalidInput,
		"Cap table investors are invalid",
		http.StatusBadRequest,
	)

	ErrNoInvestors = apperror.New(
		apperror.CodeInvalidInput,
		"At least one investor is required",
		http.StatusBadRequest,
	)

	ErrDuplicateInvestor = apperror.New(
		apperror.CodeConflict,
		"User is already an investor in this company",
		http.StatusConflict,
	)

	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)
)
