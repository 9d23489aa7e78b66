package handler

import (
	"net/http"

	"github.com/qj0r9j0vc2/silence-bridge/internal/adapter/dto"
	"github.com/qj0r9j0vc2/silence-bridge/internal/adapter/presenter"
	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/observability"
	"github.com/qj0r9j0vc2/silence-bridge/internal/usecase/silence"
)

// MattermostCommandsHandler handles Mattermost /silence slash-command webhooks.
type MattermostCommandsHandler struct {
	commandProcessor
}

// NewMattermostCommandsHandler creates a new Mattermost commands handler.
// allowedUsers is consulted on every request so config reloads take effect
// without a restart; an empty list admits everyone.
func NewMattermostCommandsHandler(
	createSilence *silence.CreateSilenceUseCase,
	allowedUsers func() []string,
	metrics *observability.Metrics,
	log logger.Logger,
) *MattermostCommandsHandler {
	return &MattermostCommandsHandler{
		commandProcessor: commandProcessor{
			createSilence: createSilence,
			allowedUsers:  allowedUsers,
			formatter:     presenter.NewSilenceFormatter(),
			metrics:       metrics,
			logger:        log,
		},
	}
}

// ServeHTTP handles POST /webhook/mattermost/command requests. Token
// verification happens in the auth middleware before this handler runs.
func (h *MattermostCommandsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cmdDTO, err := dto.ParseMattermostCommand(r)
	if err != nil {
		h.logger.Error("failed to parse slash command", "error", err.Error())
		http.Error(w, "Invalid slash command", http.StatusBadRequest)
		return
	}

	cmd := cmdDTO.ToSlashCommand()

	h.logger.Info("received slash command",
		"platform", cmd.Platform,
		"command", cmdDTO.Command,
		"user_name", cmd.UserName,
		"channel_name", cmd.ChannelName,
		"text", cmd.Text)

	h.process(w, r, cmd)
}
