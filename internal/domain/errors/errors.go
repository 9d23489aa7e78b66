package errors

import (
	"errors"
	"fmt"
)

// MalformedCommandError indicates the slash-command text does not have the
// expected "<matcher> <duration> <comment>" shape.
type MalformedCommandError struct {
	Text string
}

// NewMalformedCommand creates a MalformedCommandError for the given command text.
func NewMalformedCommand(text string) *MalformedCommandError {
	return &MalformedCommandError{Text: text}
}

func (e *MalformedCommandError) Error() string {
	return "malformed command: expected <matcher> <duration> <comment>"
}

// InvalidDurationError indicates a duration token that does not match
// "<number><unit>" with unit one of m, h, d, w.
type InvalidDurationError struct {
	Token string
}

// NewInvalidDuration creates an InvalidDurationError for the offending token.
func NewInvalidDuration(token string) *InvalidDurationError {
	return &InvalidDurationError{Token: token}
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid duration %q: use <number><unit> where unit is m, h, d or w", e.Token)
}

// InvalidMatcherError indicates a matcher clause or pair that does not parse
// into non-empty name=value matchers.
type InvalidMatcherError struct {
	Pair string
}

// NewInvalidMatcher creates an InvalidMatcherError for the offending pair.
func NewInvalidMatcher(pair string) *InvalidMatcherError {
	return &InvalidMatcherError{Pair: pair}
}

func (e *InvalidMatcherError) Error() string {
	return fmt.Sprintf("invalid matcher %q: use name=value pairs joined with commas", e.Pair)
}

// InternalInvariantError indicates a consistency check failed during request
// assembly. It points at a bug in an upstream parsing stage, not at user
// input, and must never surface its detail to the chat user.
type InternalInvariantError struct {
	Reason string
}

// NewInternalInvariant creates an InternalInvariantError with the violated condition.
func NewInternalInvariant(reason string) *InternalInvariantError {
	return &InternalInvariantError{Reason: reason}
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.Reason)
}

// IsUserInput reports whether err originates from user input and should be
// rendered as a one-line message back to the command invoker.
func IsUserInput(err error) bool {
	var malformed *MalformedCommandError
	var duration *InvalidDurationError
	var matcher *InvalidMatcherError
	return errors.As(err, &malformed) || errors.As(err, &duration) || errors.As(err, &matcher)
}

// TransientError wraps failures that might succeed on a later, independent
// request (network errors, upstream 5xx).
type TransientError struct {
	msg   string
	cause error
}

// NewTransientError creates a TransientError wrapping the cause.
func NewTransientError(msg string, cause error) *TransientError {
	return &TransientError{msg: msg, cause: cause}
}

func (e *TransientError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *TransientError) Unwrap() error {
	return e.cause
}

// PermanentError wraps failures that will not succeed without a change on
// our side (bad request, authentication, unknown upstream error).
type PermanentError struct {
	msg   string
	cause error
}

// NewPermanentError creates a PermanentError wrapping the cause.
func NewPermanentError(msg string, cause error) *PermanentError {
	return &PermanentError{msg: msg, cause: cause}
}

func (e *PermanentError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *PermanentError) Unwrap() error {
	return e.cause
}

// IsTransient reports whether err is categorized as transient.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsPermanent reports whether err is categorized as permanent.
func IsPermanent(err error) bool {
	var permanent *PermanentError
	return errors.As(err, &permanent)
}
