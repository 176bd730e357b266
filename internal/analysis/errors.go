package analysis

import "errors"

const failurePrefix = "Failed to analyze code: "

// ErrNoAPIKey is the cause reported when no credential is configured
var ErrNoAPIKey = errors.New("No API key found")

// errUnknown stands in for causes that carry no message
var errUnknown = errors.New("Unknown error")

// Error is the single failure kind returned by Analyze
type Error struct {
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil || e.Cause.Error() == "" {
		return failurePrefix + errUnknown.Error()
	}
	return failurePrefix + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}
