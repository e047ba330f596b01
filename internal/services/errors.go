package services

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// Kind classifies expected domain errors. Anything that is not an *Error is
// an unexpected fault.
type Kind int

const (
	KindInvalidID Kind = iota + 1
	KindInvalidInput
	KindNotFound
	KindUnknownRoute
)

// Messages returned to clients for expected errors
const (
	MessageInvalidID      = "Book id must be an integer"
	MessageRequiredFields = "Title and Author are required fields"
	MessageInvalidTitle   = "Title must be a non-empty string"
	MessageInvalidAuthor  = "Author must be a non-empty string"
	MessageNotFound       = "Not Found"
	MessageInternal       = "Internal Server Error"
)

// String returns the kind name used in logs
func (k Kind) String() string {
	switch k {
	case KindInvalidID:
		return "invalid_id"
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindUnknownRoute:
		return "unknown_route"
	default:
		return "unknown"
	}
}

// StatusCode maps the kind to its HTTP status
func (k Kind) StatusCode() int {
	switch k {
	case KindInvalidID, KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound, KindUnknownRoute:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is an expected, client-caused failure with a message safe to return
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status for the error
func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// ErrInvalidID is returned when a path id is not an integer
func ErrInvalidID() *Error {
	return &Error{Kind: KindInvalidID, Message: MessageInvalidID}
}

// ErrRequiredFields is returned when title or author is missing
func ErrRequiredFields() *Error {
	return &Error{Kind: KindInvalidInput, Message: MessageRequiredFields}
}

// ErrInvalidInput wraps a client input problem with its own message
func ErrInvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// ErrBookNotFound is returned when no book has the given id
func ErrBookNotFound(id int64) *Error {
	return errBookNotFound(strconv.FormatInt(id, 10))
}

func errBookNotFound(id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("Book %s not found", id)}
}

// ErrUnknownRoute is returned for methods the collection does not serve
func ErrUnknownRoute() *Error {
	return &Error{Kind: KindUnknownRoute, Message: MessageNotFound}
}

// AsError reports whether err is an expected domain error
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
