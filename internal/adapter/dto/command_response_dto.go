package dto

// Response visibility types shared by Mattermost and Slack.
const (
	ResponseTypeEphemeral = "ephemeral"
	ResponseTypeInChannel = "in_channel"
)

// CommandResponseDTO represents a slash-command response. Mattermost and
// Slack accept the same response_type/text JSON shape, so one DTO serves
// both webhook handlers.
type CommandResponseDTO struct {
	ResponseType string `json:"response_type"` // "ephemeral" or "in_channel"
	Text         string `json:"text"`
}

// NewEphemeralResponse creates a response visible only to the command invoker.
func NewEphemeralResponse(text string) *CommandResponseDTO {
	return &CommandResponseDTO{
		ResponseType: ResponseTypeEphemeral,
		Text:         text,
	}
}

// NewInChannelResponse creates a response visible to everyone in the channel.
func NewInChannelResponse(text string) *CommandResponseDTO {
	return &CommandResponseDTO{
		ResponseType: ResponseTypeInChannel,
		Text:         text,
	}
}
