package apperror

import "net/http"

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converts any error returned by a service into the shape the
// response envelope expects. Unknown errors become a generic 500.
func ToHTTP(err error) HTTPError {
	var app *AppError
	if As(err, &app) {
		status := app.HTTPStatus
		if status == 0 {
			status = StatusFor(app.Code)
		}
		return HTTPError{
			Status:  status,
			Code:    app.Code,
			Message: app.Message,
			Details: app.Details,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
