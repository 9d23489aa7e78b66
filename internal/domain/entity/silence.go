package entity

import (
	"time"

	domainerrors "github.com/qj0r9j0vc2/silence-bridge/internal/domain/errors"
)

// SilenceWindow is the time range a silence is active for. StartsAt is the
// request-handling time; EndsAt must be strictly after it.
type SilenceWindow struct {
	StartsAt time.Time
	EndsAt   time.Time
}

// Duration returns the window length.
func (w SilenceWindow) Duration() time.Duration {
	return w.EndsAt.Sub(w.StartsAt)
}

// SilenceRequest aggregates everything needed to create a silence in the
// monitoring system. It is assembled once per command and never mutated;
// its lifecycle ends when it is handed to the outbound API call.
type SilenceRequest struct {
	Matchers  []Matcher
	StartsAt  time.Time
	EndsAt    time.Time
	Comment   string
	CreatedBy string
}

// NewSilenceRequest assembles a SilenceRequest from already-validated parts.
// The parser stages guarantee a non-empty matcher list and a window that
// ends after it starts, so a failure here indicates a bug upstream, not
// bad user input.
func NewSilenceRequest(matchers []Matcher, window SilenceWindow, comment, createdBy string) (*SilenceRequest, error) {
	if len(matchers) == 0 {
		return nil, domainerrors.NewInternalInvariant("silence request assembled with no matchers")
	}
	if !window.EndsAt.After(window.StartsAt) {
		return nil, domainerrors.NewInternalInvariant("silence window does not end after it starts")
	}

	return &SilenceRequest{
		Matchers:  matchers,
		StartsAt:  window.StartsAt,
		EndsAt:    window.EndsAt,
		Comment:   comment,
		CreatedBy: createdBy,
	}, nil
}
