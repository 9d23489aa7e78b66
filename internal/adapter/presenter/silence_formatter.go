package presenter

import (
	"errors"
	"fmt"

	domainerrors "github.com/qj0r9j0vc2/silence-bridge/internal/domain/errors"
	"github.com/qj0r9j0vc2/silence-bridge/internal/usecase/silence"
)

const usageText = "Usage: /silence <matcher> <duration> <comment>\n" +
	"Example: /silence alertname=HighCPU,severity=critical 2h CPU alert silenced"

const notAuthorizedText = "You are not authorized to create silences."

// SilenceFormatter renders silence-command outcomes as chat message text.
// The output is plain text accepted verbatim by both Mattermost and Slack.
type SilenceFormatter struct{}

// NewSilenceFormatter creates a new silence formatter.
func NewSilenceFormatter() *SilenceFormatter {
	return &SilenceFormatter{}
}

// FormatSuccess renders the in-channel confirmation for a created silence.
func (f *SilenceFormatter) FormatSuccess(result *silence.CreateSilenceResult) string {
	return fmt.Sprintf("🔕 Alert silenced successfully!\n"+
		"Silence ID: %s\n"+
		"Matcher: %s\n"+
		"Duration: %s\n"+
		"Comment: %s\n"+
		"Created by: %s",
		result.SilenceID,
		result.MatcherText,
		result.DurationText,
		result.Comment,
		result.UserName,
	)
}

// FormatError renders a command failure as an ephemeral message. Malformed
// commands get the usage text, invalid duration and matcher errors echo the
// parser's message, and anything else is reported generically so internal
// detail never reaches the channel.
func (f *SilenceFormatter) FormatError(err error) string {
	var malformed *domainerrors.MalformedCommandError
	if errors.As(err, &malformed) {
		return usageText
	}

	var duration *domainerrors.InvalidDurationError
	if errors.As(err, &duration) {
		return "Error: " + duration.Error()
	}

	var matcher *domainerrors.InvalidMatcherError
	if errors.As(err, &matcher) {
		return "Error: " + matcher.Error()
	}

	return "An error occurred: failed to create silence"
}

// FormatNotAuthorized renders the rejection for users missing from the allow list.
func (f *SilenceFormatter) FormatNotAuthorized() string {
	return notAuthorizedText
}
