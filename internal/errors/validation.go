package errors

import "net/http"

var ErrValidation = &Exception{
	Message:    "validation failed",
	StatusCode: http.StatusBadRequest,
}

var ErrConfirmationRequired = &Exception{
	Message:    "confirmation required",
	StatusCode: http.StatusPreconditionRequired,
}
