package service

import "errors"

// Error kinds. Handlers pick the HTTP status with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrConflict    = errors.New("conflict")
	ErrAuth        = errors.New("authentication failed")
	ErrNotFound    = errors.New("not found")
	ErrImageDecode = errors.New("image could not be decoded")
	ErrStorage     = errors.New("storage failure")
)

// Error carries a user-facing message and unwraps to its kind
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

var (
	ErrPasswordMismatch   = newError(ErrValidation, "Passwords do not match!", nil)
	ErrEmailExists        = newError(ErrConflict, "Email address already exists", nil)
	ErrInvalidCredentials = newError(ErrAuth, "Login failed. Check your email and password.", nil)
	ErrSessionExpired     = newError(ErrAuth, "Session expired, please log in again", nil)
	ErrBarcodeNotFound    = newError(ErrNotFound, "Barcode not found in database", nil)
	ErrNoBarcodeInImage   = newError(ErrNotFound, "No barcode found in image", nil)
)

// Message returns the user-facing part of err
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
