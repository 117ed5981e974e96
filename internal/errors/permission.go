package errors

import "net/http"

// ErrUnauthenticated is returned when an operation runs without an acting user.
var ErrUnauthenticated = &Exception{
	Message:    "authentication required",
	StatusCode: http.StatusUnauthorized,
}

var ErrForbidden = &Exception{
	Message:    "insufficient permissions",
	StatusCode: http.StatusForbidden,
}
