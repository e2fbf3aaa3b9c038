package apperr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of domain failure categories. Callers branch on
// the kind, never on message text.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindInvalidCredential Kind = "invalid_credential"
	KindAccountBlocked    Kind = "account_blocked"
	KindAlreadyExists     Kind = "already_exists"
	KindUnauthenticated   Kind = "unauthenticated"
)

// Error is a tagged domain failure. Field names the first unmet input for
// validation failures and is empty otherwise.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// KindOf extracts the kind from err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
