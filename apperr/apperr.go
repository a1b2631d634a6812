package apperr

import (
	"errors"
	"net/http"
)

/* Kind is the closed set of failures the API knows how to report.
 * Each kind carries a fixed HTTP status, so the HTTP layer never has to
 * guess a status from an error message.
 */
type Kind int

const (
	Validation Kind = iota + 1
	NoDataProvided
	NotFound
	Unauthorized
	MethodNotAllowed
	Storage
)

// String returns the name used in logs and metrics
func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NoDataProvided:
		return "no_data_provided"
	case NotFound:
		return "not_found"
	case Unauthorized:
		return "unauthorized"
	case MethodNotAllowed:
		return "method_not_allowed"
	case Storage:
		return "storage"
	}
	return "unknown"
}

// Status returns the HTTP status code bound to the kind
func (k Kind) Status() int {
	switch k {
	case Validation, NoDataProvided:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	}
	return http.StatusInternalServerError
}

// Error is a failure that can be shown to API clients as is.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.cause
}

// Status is a shortcut for e.Kind.Status()
func (e *Error) Status() int {
	return e.Kind.Status()
}

func NewValidation(message string) *Error {
	return &Error{Kind: Validation, Message: message}
}

func NewNoDataProvided(message string) *Error {
	return &Error{Kind: NoDataProvided, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: Unauthorized, Message: message}
}

func NewMethodNotAllowed(message string) *Error {
	return &Error{Kind: MethodNotAllowed, Message: message}
}

/* NewStorage wraps a persistence failure.
 * The cause is kept for logs only; Message is what clients see.
 */
func NewStorage(message string, cause error) *Error {
	return &Error{Kind: Storage, Message: message, cause: cause}
}

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err carries a taxonomy error of the given kind
func Is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
