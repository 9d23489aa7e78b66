package handler

import (
	"net/http"

	"github.com/slack-go/slack"

	"github.com/qj0r9j0vc2/silence-bridge/internal/adapter/presenter"
	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/observability"
	silenceUseCase "github.com/qj0r9j0vc2/silence-bridge/internal/usecase/silence"
)

// SlackCommandsHandler handles Slack /silence slash-command webhooks.
type SlackCommandsHandler struct {
	commandProcessor
}

// NewSlackCommandsHandler creates a new Slack commands handler.
// allowedUsers is consulted on every request so config reloads take effect
// without a restart; an empty list admits everyone.
func NewSlackCommandsHandler(
	createSilence *silenceUseCase.CreateSilenceUseCase,
	allowedUsers func() []string,
	metrics *observability.Metrics,
	log logger.Logger,
) *SlackCommandsHandler {
	return &SlackCommandsHandler{
		commandProcessor: commandProcessor{
			createSilence: createSilence,
			allowedUsers:  allowedUsers,
			formatter:     presenter.NewSilenceFormatter(),
			metrics:       metrics,
			logger:        log,
		},
	}
}

// ServeHTTP handles POST /webhook/slack/command requests. Signature
// verification happens in the auth middleware before this handler runs.
// Slack expects the response within 3 seconds; creating a silence is a
// single upstream call, so the handler answers synchronously.
func (h *SlackCommandsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slashCmd, err := slack.SlashCommandParse(r)
	if err != nil {
		h.logger.Error("failed to parse slash command", "error", err.Error())
		http.Error(w, "Invalid slash command", http.StatusBadRequest)
		return
	}

	cmd := &entity.SlashCommand{
		Platform:    entity.PlatformSlack,
		Text:        slashCmd.Text,
		UserID:      slashCmd.UserID,
		UserName:    slashCmd.UserName,
		ChannelID:   slashCmd.ChannelID,
		ChannelName: slashCmd.ChannelName,
		TeamID:      slashCmd.TeamID,
		ResponseURL: slashCmd.ResponseURL,
	}

	h.logger.Info("received slash command",
		"platform", cmd.Platform,
		"command", slashCmd.Command,
		"user_name", cmd.UserName,
		"channel_name", cmd.ChannelName,
		"text", cmd.Text)

	h.process(w, r, cmd)
}
