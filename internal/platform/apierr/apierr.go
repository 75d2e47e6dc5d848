package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure independently of the transport.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindConflict        Kind = "conflict"
	KindNotFound        Kind = "not_found"
	KindInvalidArgument Kind = "invalid_argument"
	KindInternal        Kind = "internal"
)

type Error struct {
	Kind   Kind
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Kind: kindForStatus(status), Status: status, Code: code, Err: err}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Status: http.StatusUnauthorized, Code: "unauthorized", Err: errors.New(msg)}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Code: "forbidden", Err: errors.New(msg)}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Code: "conflict", Err: errors.New(msg)}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Code: "not_found", Err: errors.New(msg)}
}

func InvalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Status: http.StatusBadRequest, Code: "invalid_request", Err: errors.New(msg)}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Code: "internal", Err: err}
}

// KindOf reports the Kind of err, defaulting to KindInternal for untyped errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != "" {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusConflict:
		return KindConflict
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindInvalidArgument
	default:
		return KindInternal
	}
}
