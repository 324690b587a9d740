package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable error tag surfaced to callers. Every failure leaving
// the gateway carries exactly one kind; none are silently swallowed.
type ErrorKind string

const (
	// KindValidation is bad caller input. Never retried.
	KindValidation ErrorKind = "validation_error"

	// KindAuth is a credential or token problem, surfaced after the single
	// automatic refresh-and-retry in the export client.
	KindAuth ErrorKind = "auth_error"

	// KindRemoteQuery means the provider rejected the query. Surfaced as-is
	// with the provider's detail, no retry.
	KindRemoteQuery ErrorKind = "remote_query_error"

	// KindParse is an unexpected provider response shape, treated as a
	// provider contract violation.
	KindParse ErrorKind = "parse_error"

	// KindTimeout means a network call exceeded its budget. Not retried.
	KindTimeout ErrorKind = "timeout_error"
)

// Error is the gateway's caller-facing error: a stable kind plus a
// human-readable message. Provider detail is folded into the message rather
// than echoed as a raw payload.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Validationf builds a KindValidation error. The offending field should be
// named in the message.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Authf builds a KindAuth error.
func Authf(format string, args ...any) *Error {
	return &Error{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

// RemoteQueryf builds a KindRemoteQuery error.
func RemoteQueryf(format string, args ...any) *Error {
	return &Error{Kind: KindRemoteQuery, Message: fmt.Sprintf(format, args...)}
}

// Parsef builds a KindParse error.
func Parsef(format string, args ...any) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...)}
}

// Timeoutf builds a KindTimeout error.
func Timeoutf(format string, args ...any) *Error {
	return &Error{Kind: KindTimeout, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind, defaulting to KindRemoteQuery for errors
// that did not originate in the gateway's taxonomy.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindRemoteQuery
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
