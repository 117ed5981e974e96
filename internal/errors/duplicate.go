package errors

import "net/http"

var ErrDuplicateReference = &Exception{
	Message:    "a task with this reference already exists",
	StatusCode: http.StatusConflict,
}

var ErrDuplicateEmail = &Exception{
	Message:    "a user with this email already exists",
	StatusCode: http.StatusConflict,
}

var ErrAlreadyBootstrapped = &Exception{
	Message:    "user directory is not empty",
	StatusCode: http.StatusConflict,
}
