// Package common provides shared constants, types, and utilities
// used across the Tunnelsplit application.
package common

import "errors"

// Sentinel errors for bridge and catalog operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Bridge errors.
	ErrHelperUnavailable = errors.New("helper service unavailable")
	ErrCallFailed        = errors.New("bridge call failed")
	ErrUnauthorized      = errors.New("helper rejected session token")
	ErrInvalidReply      = errors.New("invalid helper reply")
	ErrTimeout           = errors.New("operation timed out")
	ErrCancelled         = errors.New("operation cancelled")

	// Catalog errors.
	ErrAppNotFound  = errors.New("application not found")
	ErrEmptyCatalog = errors.New("no installed applications reported")

	// Token errors.
	ErrTokenNotFound = errors.New("helper token not found")
	ErrTokenStorage  = errors.New("failed to store helper token")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
