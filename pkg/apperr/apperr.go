// Package apperr defines the error kinds the HTTP layer knows how to render.
//
// Services return *Error values (or wrap them); pkg/response.Fail maps the
// kind to a status code and a client-safe message. Anything that is not an
// *Error is treated as Internal.
//
//	if customer == nil {
//	    return apperr.New(apperr.InvalidCredentials)
//	}
//	return apperr.Wrap(apperr.Upstream, err)
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for translation into an HTTP response.
type Kind int

const (
	Internal Kind = iota
	EmailOrPasswordRequired
	InvalidCredentials
	Unauthenticated
	InvalidToken
	NotFound
	Validation
	Conflict
	Upstream
	BadRequest
)

var kindInfo = map[Kind]struct {
	name    string
	status  int
	message string
}{
	Internal:                {"Internal", http.StatusInternalServerError, "Internal server error"},
	EmailOrPasswordRequired: {"EmailOrPasswordRequired", http.StatusBadRequest, "Email or password is required"},
	InvalidCredentials:      {"InvalidCredentials", http.StatusUnauthorized, "Invalid email or password"},
	Unauthenticated:         {"Unauthenticated", http.StatusUnauthorized, "Please login first"},
	InvalidToken:            {"InvalidToken", http.StatusUnauthorized, "Invalid token"},
	NotFound:                {"ErrorNotFound", http.StatusNotFound, "Data not found"},
	Validation:              {"Validation", http.StatusUnprocessableEntity, "Validation failed"},
	Conflict:                {"Conflict", http.StatusConflict, "Email is already registered"},
	Upstream:                {"Upstream", http.StatusBadGateway, "Upstream service error"},
	BadRequest:              {"BadRequest", http.StatusBadRequest, "Invalid request body"},
}

func (k Kind) String() string { return kindInfo[k].name }

// Status is the HTTP status code for k.
func (k Kind) Status() int { return kindInfo[k].status }

// Message is the client-facing message for k.
func (k Kind) Message() string { return kindInfo[k].message }

// Error is a classified error.
type Error struct {
	Kind    Kind
	Message string            // overrides Kind.Message() when set
	Fields  map[string]string // per-field problems for Validation
	Err     error             // cause; logged, never sent to clients
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Message()
	}
	if e.Err != nil {
		return e.Kind.String() + ": " + msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so callers can write
// errors.Is(err, apperr.New(apperr.NotFound)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New returns an *Error of kind k with the default message.
func New(k Kind) *Error { return &Error{Kind: k} }

// Wrap classifies err as kind k. A nil err yields nil.
func Wrap(k Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, Err: err}
}

// Invalid builds a Validation error from a field → message map.
func Invalid(fields map[string]string) *Error {
	return &Error{Kind: Validation, Fields: fields}
}

// KindOf extracts the kind of err, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
