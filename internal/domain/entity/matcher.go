package entity

// Matcher is a label-name/label-value equality condition selecting which
// alerts a silence applies to. The bridge only produces exact matches, so
// IsRegex is always false.
type Matcher struct {
	Name    string
	Value   string
	IsRegex bool
}

// NewEqualMatcher creates an exact-match matcher.
func NewEqualMatcher(name, value string) Matcher {
	return Matcher{Name: name, Value: value}
}
