package schema

import "net/http"

// Kind classifies an Error and determines the HTTP status code it is sent with
type Kind string

const (
	KindInvalidIdentifier Kind = "InvalidIdentifier"
	KindInvalidFieldType  Kind = "InvalidFieldType"
	KindInvalidRange      Kind = "InvalidRange"
	KindMalformedBody     Kind = "MalformedBody"
	KindBodyTooLarge      Kind = "BodyTooLarge"
	KindNotFound          Kind = "NotFound"
	KindMethodNotAllowed  Kind = "MethodNotAllowed"
	KindInternal          Kind = "Internal"
)

// Status returns the HTTP status code errors of this kind are sent with
func (kind Kind) Status() int {
	switch kind {
	case KindInvalidIdentifier, KindInvalidFieldType, KindInvalidRange, KindMalformedBody:
		return http.StatusBadRequest
	case KindBodyTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrInternal = &Error{
		Kind:    KindInternal,
		Message: "An internal error occurred.",
	}
	ErrNotFound = &Error{
		Kind:    KindNotFound,
		Message: "Resource not found.",
	}
	ErrMethodNotAllowed = &Error{
		Kind:    KindMethodNotAllowed,
		Message: "Method not allowed.",
	}
)

// Error represents the response structure sent by the API whenever a request could not be served.
// Only the message is part of the response body; the kind determines the status code.
type Error struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
}

// NewError creates a new error of the given kind
func NewError(kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

func (err *Error) Error() string {
	return err.Message
}

// Status returns the HTTP status code the error is sent with
func (err *Error) Status() int {
	return err.Kind.Status()
}
