package entity

// Chat platforms that can deliver slash commands to the bridge.
const (
	PlatformMattermost = "mattermost"
	PlatformSlack      = "slack"
)

// SlashCommand represents a slash-command invocation received from a chat
// platform. The parsing pipeline reads only Text and UserName; the remaining
// fields are request metadata carried along for logging and display.
type SlashCommand struct {
	// Platform identifies the source chat platform.
	Platform string

	// Text is the raw argument string following the command name,
	// e.g. "alertname=HighCPU,severity=critical 2h CPU alert silenced".
	Text string

	// User context
	UserID   string
	UserName string

	// Channel context
	ChannelID   string
	ChannelName string

	// Team context
	TeamID string

	// ResponseURL is the platform callback for delayed responses. The bridge
	// answers synchronously, so it is kept for diagnostics only.
	ResponseURL string
}
