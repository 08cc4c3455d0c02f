package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrEmptyMessage       = errors.New("message is empty")
	ErrChatBusy           = errors.New("a chat request is already in flight")
	ErrFormIncomplete     = errors.New("required prediction fields are missing")
	ErrNotEditing         = errors.New("prediction form is not editable")
	ErrNoResult           = errors.New("no prediction result available")
)

// RequestErrorKind classifies gateway failures for the caller.
type RequestErrorKind string

const (
	KindUnauthorized RequestErrorKind = "unauthorized"
	KindValidation   RequestErrorKind = "validation"
	KindNetwork      RequestErrorKind = "network"
	KindServer       RequestErrorKind = "server"
)

// RequestError is the uniform failure surfaced by the request gateway.
// Detail carries the server-provided message when one was decoded.
type RequestError struct {
	Kind   RequestErrorKind
	Op     string
	Detail string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *RequestError) Unwrap() error { return e.Err }

// RequestErrorKindOf reports the taxonomy kind of err, or "" when err
// is not a gateway failure.
func RequestErrorKindOf(err error) RequestErrorKind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return ""
}

func IsUnauthorized(err error) bool {
	return RequestErrorKindOf(err) == KindUnauthorized
}

// ValidationError reports malformed or missing input caught before any
// request is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
