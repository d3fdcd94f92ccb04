package reporterrors

import (
	"go-flexile/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Start date must be on or before end date",
		http.StatusBadRequest,
	)

	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Period must be formatted as YYYY-MM",
		http.StatusBadRequest,
	)

	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"Report has not been generated for this period",
		http.StatusNotFound,
	)
)
