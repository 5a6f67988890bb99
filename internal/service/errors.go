package service

import "errors"

// Sentinel errors mapped to HTTP statuses by the handler layer.
var (
	ErrNotFound       = errors.New("no matching record")
	ErrUserExists     = errors.New("user already exists")
	ErrBadCredentials = errors.New("incorrect email or password")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrForbidden      = errors.New("forbidden")
)

// InvalidArgumentError carries the client-facing message for a
// malformed or forbidden request input.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string { return e.Message }

func invalidArgument(msg string) error {
	return &InvalidArgumentError{Message: msg}
}
