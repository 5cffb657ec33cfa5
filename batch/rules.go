package batch

import (
	"net/url"
	"strings"
)

// IsComment reports whether a batch file line should be skipped.
func IsComment(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}

// LooksLikeURL reports whether s is an absolute http(s) URL rather than a
// path to a batch file.
func LooksLikeURL(s string) bool {
	parsed, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
