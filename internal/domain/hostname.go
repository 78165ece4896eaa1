package domain

import (
	"regexp"
	"strings"
)

var hostLabelRegexp = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

// IsValidHostLabel reports whether s is a legal single hostname label:
// non-empty, alphanumeric or hyphen, no leading or trailing hyphen.
func IsValidHostLabel(s string) bool {
	return hostLabelRegexp.MatchString(s)
}

// CleanHostLabel normalizes a candidate name to a bare lowercase label,
// stripping any domain part a container may already carry.
func CleanHostLabel(name string) string {
	label, _, _ := strings.Cut(name, ".")
	return strings.ToLower(strings.TrimSpace(label))
}
