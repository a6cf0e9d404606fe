// Package apperr carries the failure kinds the facade reports. The message of
// every error is the human-readable reason shown to the user; Kind lets
// callers branch without inspecting the text.
package apperr

import "errors"

type Kind string

const (
	KindInternal           Kind = "internal"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindUnauthenticated    Kind = "unauthenticated"
	KindValidation         Kind = "validation"
	KindForbidden          Kind = "forbidden"
)

type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// Is matches any *Error of the same kind, so errors.Is(err, ErrPostNotFound)
// and errors.Is(err, &Error{Kind: KindNotFound}) both work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Reason == "" {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Reason == t.Reason
}

func New(kind Kind, reason string) *Error { return &Error{Kind: kind, Reason: reason} }

var (
	// An unknown login email is a credentials failure; the reason still says so.
	ErrUserNotFound     = New(KindInvalidCredentials, "User not found")
	ErrPostNotFound     = New(KindNotFound, "Post not found")
	ErrInvalidPassword  = New(KindInvalidCredentials, "Invalid password")
	ErrEmailTaken       = New(KindConflict, "User with this email already exists")
	ErrNotAuthenticated = New(KindUnauthenticated, "User not authenticated")
	ErrInvalidToken     = New(KindUnauthenticated, "Invalid token")
	ErrNotPostAuthor    = New(KindForbidden, "Only the author can change this post")
)

// KindOf reports the kind of err; anything that is not an *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Reason is the text a rejected action stores in its slice.
func Reason(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
