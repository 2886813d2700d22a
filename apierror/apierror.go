// Package apierror provides the typed error taxonomy shared by the
// dispatcher, the session and consumers. Errors are classified exactly once,
// at the dispatcher boundary; callers branch on Kind instead of re-inspecting
// status codes or payloads.
package apierror

import (
	"errors"
	"fmt"
)

// Kind is the error category a failed operation resolves to.
type Kind string

const (
	// KindDomain is a structured application error with a user-facing
	// message taken from the server's error body.
	KindDomain Kind = "domain"
	// KindNetwork means no response was received at all.
	KindNetwork Kind = "network"
	// KindServer is an unstructured 5xx or a malformed payload.
	KindServer Kind = "server"
	// KindSessionExpired means credential renewal failed; the session has
	// been signed out and the caller should redirect to authentication.
	KindSessionExpired Kind = "session_expired"
	// KindPayloadTooLarge is a local size-gate rejection; no network call
	// was made.
	KindPayloadTooLarge Kind = "payload_too_large"
	// KindValidation is a local form-rule failure; it never reaches the
	// network.
	KindValidation Kind = "validation"
	// KindStorage is a durable-store write failure (save/clear).
	KindStorage Kind = "storage"
)

// Error is a classified failure with an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns a classified error without a cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns a classified error preserving the underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Domain builds a domain error carrying the server's user-facing message.
func Domain(message string) *Error {
	return New(KindDomain, message)
}

// Network builds a connectivity error.
func Network(cause error) *Error {
	return Wrap(KindNetwork, "network unavailable", cause)
}

// Server builds an unexpected-server-failure error.
func Server(message string, cause error) *Error {
	return Wrap(KindServer, message, cause)
}

// SessionExpired builds the forced sign-out error delivered to requests
// pending on a renewal that failed.
func SessionExpired(cause error) *Error {
	return Wrap(KindSessionExpired, "session expired, sign in again", cause)
}

// PayloadTooLarge builds the local size-gate rejection.
func PayloadTooLarge(message string) *Error {
	return New(KindPayloadTooLarge, message)
}

// Validation builds a local form-rule failure.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Storage builds a durable-store failure.
func Storage(message string, cause error) *Error {
	return Wrap(KindStorage, message, cause)
}

// KindOf extracts the classification of err, or KindServer when err carries
// no classification (an unclassified error is by definition unexpected).
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindServer
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	var classified *Error
	return errors.As(err, &classified) && classified.Kind == kind
}

// Message returns the user-facing message of err, or a generic fallback for
// unclassified errors.
func Message(err error) string {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Message
	}
	return "something went wrong, try again later"
}
