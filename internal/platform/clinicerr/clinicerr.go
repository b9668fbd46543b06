// Package clinicerr defines the error taxonomy shared by every service in the
// backend. Each failure carries a Kind so that callers branch on a single
// tagged type instead of inspecting ad-hoc response shapes.
package clinicerr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Kind classifies a failure.
type Kind string

const (
	KindUnauthorized    Kind = "unauthorized"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindInvalidArgument Kind = "invalid_argument"
	KindInternal        Kind = "internal"
)

// Error is the single error type returned by validation and service paths.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a tagged error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap tags an underlying error. A nil cause returns nil so store calls can be
// wrapped unconditionally.
func Wrap(kind Kind, message string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

func Unauthorized(message string) *Error    { return New(KindUnauthorized, message) }
func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }
func InvalidArgument(message string) *Error { return New(KindInvalidArgument, message) }

// Internal tags a store or infrastructure failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for untagged
// errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

var statusByKind = map[Kind]int{
	KindUnauthorized:    http.StatusUnauthorized,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindInvalidArgument: http.StatusBadRequest,
	KindInternal:        http.StatusInternalServerError,
}

// ToHTTPError maps a tagged error to the echo error the boundary returns.
// Internal errors are presented with a generic message so store details never
// reach the client.
func ToHTTPError(err error) *echo.HTTPError {
	var e *Error
	if !errors.As(err, &e) {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	if e.Kind == KindInternal {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return echo.NewHTTPError(statusByKind[e.Kind], e.Message)
}
