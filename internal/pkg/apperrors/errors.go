package apperrors

import "errors"

// Authentication errors. Unknown username and wrong password share one
// sentinel and one message so callers cannot enumerate valid usernames.
var (
	ErrInvalidCredentials = errors.New("invalid login details")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenFormat        = errors.New("invalid token format")
)

// Employee errors
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Is reports whether err matches target or any of the errors in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
