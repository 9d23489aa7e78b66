package silence

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/logger"
)

// CreateSilenceResult describes a successfully created silence for response
// formatting. MatcherText, DurationText and Comment echo the clauses as the
// user typed them.
type CreateSilenceResult struct {
	SilenceID    string
	MatcherText  string
	DurationText string
	Comment      string
	UserName     string
}

// CreateSilenceUseCase turns slash-command text into a silence in the
// monitoring system: parse the clauses, resolve the time window, assemble
// the request and post it.
type CreateSilenceUseCase struct {
	creator         SilenceCreator
	createdByPrefix string
	clock           quartz.Clock
	logger          logger.Logger
}

// NewCreateSilenceUseCase creates the use case. createdByPrefix identifies
// this bridge in the silence's createdBy field, e.g. "silence-bridge" yields
// createdBy "silence-bridge:<username>".
func NewCreateSilenceUseCase(creator SilenceCreator, createdByPrefix string, log logger.Logger) *CreateSilenceUseCase {
	return &CreateSilenceUseCase{
		creator:         creator,
		createdByPrefix: createdByPrefix,
		clock:           quartz.NewReal(),
		logger:          log,
	}
}

// Execute runs the parsing pipeline over cmd and posts the assembled silence.
// User-input errors come back as the typed errors from the domain errors
// package; callers render those to the invoker and treat everything else as
// an internal failure.
func (uc *CreateSilenceUseCase) Execute(ctx context.Context, cmd *entity.SlashCommand) (*CreateSilenceResult, error) {
	parsed, err := ParseCommand(cmd.Text)
	if err != nil {
		return nil, err
	}

	// startsAt is pinned once per invocation; second precision is enough
	// for silence windows.
	now := uc.clock.Now().UTC().Truncate(time.Second)

	duration, endsAt, err := ResolveDuration(parsed.DurationText, now)
	if err != nil {
		return nil, err
	}

	matchers, err := ParseMatchers(parsed.MatcherText)
	if err != nil {
		return nil, err
	}

	req, err := entity.NewSilenceRequest(
		matchers,
		entity.SilenceWindow{StartsAt: now, EndsAt: endsAt},
		fmt.Sprintf("%s (created-by: %s)", parsed.Comment, cmd.UserName),
		fmt.Sprintf("%s:%s", uc.createdByPrefix, cmd.UserName),
	)
	if err != nil {
		return nil, err
	}

	silenceID, err := uc.creator.CreateSilence(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating silence: %w", err)
	}

	uc.logger.Info("silence created",
		"silence_id", silenceID,
		"platform", cmd.Platform,
		"matcher", parsed.MatcherText,
		"duration", duration.String(),
		"user_name", cmd.UserName,
	)

	return &CreateSilenceResult{
		SilenceID:    silenceID,
		MatcherText:  parsed.MatcherText,
		DurationText: parsed.DurationText,
		Comment:      parsed.Comment,
		UserName:     cmd.UserName,
	}, nil
}
