package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUserInput(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "malformed command",
			err:  NewMalformedCommand("alertname=Foo"),
			want: true,
		},
		{
			name: "invalid duration",
			err:  NewInvalidDuration("30x"),
			want: true,
		},
		{
			name: "invalid matcher",
			err:  NewInvalidMatcher("=Foo"),
			want: true,
		},
		{
			name: "wrapped invalid duration",
			err:  fmt.Errorf("parsing command: %w", NewInvalidDuration("0h")),
			want: true,
		},
		{
			name: "internal invariant",
			err:  NewInternalInvariant("empty matcher list"),
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: false,
		},
		{
			name: "transient error",
			err:  NewTransientError("posting silence", errors.New("connection refused")),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUserInput(tt.err))
		})
	}
}

func TestInvalidDurationError_CarriesToken(t *testing.T) {
	err := NewInvalidDuration("30x")

	var durErr *InvalidDurationError
	assert.True(t, errors.As(err, &durErr))
	assert.Equal(t, "30x", durErr.Token)
	assert.Contains(t, err.Error(), `"30x"`)
}

func TestInvalidMatcherError_CarriesPair(t *testing.T) {
	err := NewInvalidMatcher("=Foo")

	var matchErr *InvalidMatcherError
	assert.True(t, errors.As(err, &matchErr))
	assert.Equal(t, "=Foo", matchErr.Pair)
	assert.Contains(t, err.Error(), `"=Foo"`)
}

func TestTransientPermanentCategorization(t *testing.T) {
	cause := errors.New("status 503")
	transient := NewTransientError("posting silence", cause)
	permanent := NewPermanentError("posting silence", errors.New("status 400"))

	assert.True(t, IsTransient(transient))
	assert.False(t, IsPermanent(transient))
	assert.True(t, IsPermanent(permanent))
	assert.False(t, IsTransient(permanent))

	// Wrapped causes stay reachable through errors.Is.
	assert.True(t, errors.Is(transient, cause))

	wrapped := fmt.Errorf("create silence: %w", transient)
	assert.True(t, IsTransient(wrapped))
}
