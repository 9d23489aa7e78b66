package handler

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/qj0r9j0vc2/silence-bridge/internal/adapter/dto"
	"github.com/qj0r9j0vc2/silence-bridge/internal/adapter/presenter"
	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/entity"
	domainerrors "github.com/qj0r9j0vc2/silence-bridge/internal/domain/errors"
	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/observability"
	"github.com/qj0r9j0vc2/silence-bridge/internal/usecase/silence"
)

// Command outcomes recorded on the silence request metrics.
const (
	outcomeCreated  = "created"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// commandProcessor runs the platform-independent part of a /silence
// invocation: allow-list check, pipeline execution, response rendering and
// metrics. The platform handlers embed it and supply the decoded command.
type commandProcessor struct {
	createSilence *silence.CreateSilenceUseCase
	allowedUsers  func() []string
	formatter     *presenter.SilenceFormatter
	metrics       *observability.Metrics
	logger        logger.Logger
}

// process runs cmd through the silence pipeline and writes the chat response.
func (p *commandProcessor) process(w http.ResponseWriter, r *http.Request, cmd *entity.SlashCommand) {
	start := time.Now()

	if !p.userAllowed(cmd.UserName) {
		p.logger.Warn("user not in allow list",
			"platform", cmd.Platform,
			"user_name", cmd.UserName)
		p.metrics.RecordSilenceRequest(r.Context(), cmd.Platform, outcomeRejected, time.Since(start))
		writeCommandResponse(w, p.logger, dto.NewEphemeralResponse(p.formatter.FormatNotAuthorized()))
		return
	}

	result, err := p.createSilence.Execute(r.Context(), cmd)
	if err != nil {
		if domainerrors.IsUserInput(err) {
			p.logger.Warn("rejected silence command",
				"platform", cmd.Platform,
				"user_name", cmd.UserName,
				"error", err.Error())
		} else {
			p.logger.Error("silence command failed",
				"platform", cmd.Platform,
				"user_name", cmd.UserName,
				"error", err.Error())
		}
		p.metrics.RecordSilenceRequest(r.Context(), cmd.Platform, commandOutcome(err), time.Since(start))
		writeCommandResponse(w, p.logger, dto.NewEphemeralResponse(p.formatter.FormatError(err)))
		return
	}

	p.metrics.RecordSilenceRequest(r.Context(), cmd.Platform, outcomeCreated, time.Since(start))
	writeCommandResponse(w, p.logger, dto.NewInChannelResponse(p.formatter.FormatSuccess(result)))
}

// userAllowed reports whether name may create silences. An empty allow list
// admits everyone.
func (p *commandProcessor) userAllowed(name string) bool {
	allowed := p.allowedUsers()
	if len(allowed) == 0 {
		return true
	}
	return slices.Contains(allowed, name)
}

// commandOutcome maps a pipeline error to the metric outcome label.
func commandOutcome(err error) string {
	if domainerrors.IsUserInput(err) {
		return outcomeRejected
	}
	return outcomeFailed
}

// writeCommandResponse writes a slash-command JSON response. Chat platforms
// read the outcome from the body, so the HTTP status is always 200.
func writeCommandResponse(w http.ResponseWriter, log logger.Logger, response *dto.CommandResponseDTO) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to encode command response", "error", err.Error())
	}
}
