package provider

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes provider errors.
type ErrorCode string

// ErrCodeDataUnavailable indicates the dataset could not be produced.
const ErrCodeDataUnavailable ErrorCode = "DATA_UNAVAILABLE"

// ErrDataUnavailable is the sentinel for errors.Is. Any provider Error with
// the same code matches.
var ErrDataUnavailable = &Error{Code: ErrCodeDataUnavailable, Message: "data unavailable"}

// Error reports a failed dataset load.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Key is the cache key being loaded, if any.
	Key Key

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Key != "" {
		msg += fmt.Sprintf(" (key=%s)", e.Key)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a provider Error with the same code.
func (e *Error) Is(target error) bool {
	var pe *Error
	if !errors.As(target, &pe) {
		return false
	}
	return pe.Code == e.Code
}

// IsDataUnavailable returns true if the error is a DATA_UNAVAILABLE error.
// Uses errors.Is to handle wrapped errors.
func IsDataUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}

// unavailable wraps cause as a DATA_UNAVAILABLE error. A bare provider
// Error of that code is copied with the key added; anything else, including
// a provider Error wrapped with more context, becomes the cause.
func unavailable(key Key, message string, cause error) *Error {
	if pe, ok := cause.(*Error); ok && pe.Code == ErrCodeDataUnavailable {
		out := *pe
		if out.Key == "" {
			out.Key = key
		}
		return &out
	}
	return &Error{Code: ErrCodeDataUnavailable, Message: message, Key: key, Err: cause}
}
