package companyerrors

import (
	"go-flexile/internal/shared/apperror"
	"net/http"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidSharePrice = apperror.New(
		apperror.CodeInvalidInput,
		"Share price must be a positive decimal",
		http.StatusBadRequest,
	)

	ErrMissingCompanyContext = apperror.New(
		apperror.CodeUnauthorized,
		"Company ID not found in context",
		http.StatusUnauthorized,
	)
)
