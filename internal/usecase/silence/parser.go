package silence

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/entity"
	domainerrors "github.com/qj0r9j0vc2/silence-bridge/internal/domain/errors"
)

// Command holds the three clauses of a /silence invocation.
type Command struct {
	MatcherText  string
	DurationText string
	Comment      string
}

// ParseCommand splits the raw argument text into matcher clause, duration
// token and comment. The matcher clause is exactly one whitespace-delimited
// token (pairs are comma-joined), the duration is the next token, and the
// comment is every remaining token joined with single spaces.
func ParseCommand(text string) (Command, error) {
	tokens := strings.Fields(text)
	if len(tokens) < 3 {
		return Command{}, domainerrors.NewMalformedCommand(text)
	}

	return Command{
		MatcherText:  tokens[0],
		DurationText: tokens[1],
		Comment:      strings.Join(tokens[2:], " "),
	}, nil
}

// durationPattern matches compact duration tokens like "30m", "2h", "1d", "1w".
var durationPattern = regexp.MustCompile(`(?i)^(\d+)([mhdw])$`)

// ResolveDuration converts a compact duration token into a concrete duration
// and the end timestamp relative to now. Units are minutes, hours, days and
// weeks with fixed lengths; no calendar or timezone adjustment is applied.
// The returned end time is strictly after now since the magnitude must be
// positive.
func ResolveDuration(token string, now time.Time) (time.Duration, time.Time, error) {
	matches := durationPattern.FindStringSubmatch(token)
	if matches == nil {
		return 0, time.Time{}, domainerrors.NewInvalidDuration(token)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil || value <= 0 {
		return 0, time.Time{}, domainerrors.NewInvalidDuration(token)
	}

	var d time.Duration
	switch strings.ToLower(matches[2]) {
	case "m":
		d = time.Duration(value) * time.Minute
	case "h":
		d = time.Duration(value) * time.Hour
	case "d":
		d = time.Duration(value) * 24 * time.Hour
	case "w":
		d = time.Duration(value) * 7 * 24 * time.Hour
	}

	return d, now.Add(d), nil
}

// ParseMatchers converts a comma-separated name=value clause into exact-match
// matchers. Each pair splits on the first "=" only, so values keep any later
// "=" verbatim. Duplicate names are kept in input order; the silencing API
// treats the matcher set as unordered. Values cannot contain commas since
// "," always separates pairs.
func ParseMatchers(clause string) ([]entity.Matcher, error) {
	if clause == "" {
		return nil, domainerrors.NewInvalidMatcher(clause)
	}

	pairs := strings.Split(clause, ",")
	matchers := make([]entity.Matcher, 0, len(pairs))
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, domainerrors.NewInvalidMatcher(pair)
		}

		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if name == "" || value == "" {
			return nil, domainerrors.NewInvalidMatcher(pair)
		}

		matchers = append(matchers, entity.NewEqualMatcher(name, value))
	}

	return matchers, nil
}
