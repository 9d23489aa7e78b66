package dto

import (
	"net/http"

	"github.com/gorilla/schema"

	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/entity"
)

// MattermostCommandDTO represents a Mattermost slash-command request.
// Mattermost delivers it as application/x-www-form-urlencoded.
// See: https://developers.mattermost.com/integrate/slash-commands/custom/
type MattermostCommandDTO struct {
	Token       string `schema:"token"`
	TeamID      string `schema:"team_id"`
	TeamDomain  string `schema:"team_domain"`
	ChannelID   string `schema:"channel_id"`
	ChannelName string `schema:"channel_name"`
	UserID      string `schema:"user_id"`
	UserName    string `schema:"user_name"`
	Command     string `schema:"command"`
	Text        string `schema:"text"`
	ResponseURL string `schema:"response_url"`
}

// formDecoder caches struct metadata and is safe for concurrent use.
var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// ParseMattermostCommand decodes the slash-command form from an incoming
// Mattermost webhook request.
func ParseMattermostCommand(r *http.Request) (*MattermostCommandDTO, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	var cmd MattermostCommandDTO
	if err := formDecoder.Decode(&cmd, r.PostForm); err != nil {
		return nil, err
	}

	return &cmd, nil
}

// ToSlashCommand converts the DTO to the domain slash command.
func (d *MattermostCommandDTO) ToSlashCommand() *entity.SlashCommand {
	return &entity.SlashCommand{
		Platform:    entity.PlatformMattermost,
		Text:        d.Text,
		UserID:      d.UserID,
		UserName:    d.UserName,
		ChannelID:   d.ChannelID,
		ChannelName: d.ChannelName,
		TeamID:      d.TeamID,
		ResponseURL: d.ResponseURL,
	}
}
