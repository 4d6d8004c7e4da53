package domain

import "errors"

// ErrorKind is the closed set of expected failure conditions. Matching is
// always by kind; the message is diagnostic only. Adding a kind requires a
// matching case in the API boundary, otherwise responses for that kind
// surface as internal failures.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "NotFound"
	KindAlreadyExists ErrorKind = "AlreadyExists"
	KindValidation    ErrorKind = "Validation"
)

// Error is an expected domain failure. Unexpected failures (store down,
// programming errors) are never modelled as *Error — they travel as plain
// errors and terminate the request with a generic internal response.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Is matches two domain errors by kind, ignoring the message.
func (e *Error) Is(target error) bool {
	var de *Error
	if !errors.As(target, &de) {
		return false
	}
	return e.Kind == de.Kind
}

// NotFound builds a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// AlreadyExists builds a KindAlreadyExists error.
func AlreadyExists(msg string) *Error {
	return &Error{Kind: KindAlreadyExists, Message: msg}
}

// Invalid builds a KindValidation error.
func Invalid(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// AsError extracts a domain error from err, unwrapping as needed.
// The second return is false when err is not an expected domain failure.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// ErrInvalidCredentials is returned by login when the username is unknown or
// the password does not match. Deliberately indistinguishable between the two.
var ErrInvalidCredentials = errors.New("invalid credentials")
