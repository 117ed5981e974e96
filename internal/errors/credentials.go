package errors

import "net/http"

var ErrUserNotAuthorized = &Exception{
	Message:    "user not authorized",
	StatusCode: http.StatusUnauthorized,
}

var ErrMissingCredential = &Exception{
	Message:    "password is required",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidCredential = &Exception{
	Message:    "invalid credentials",
	StatusCode: http.StatusUnauthorized,
}
