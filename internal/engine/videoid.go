package engine

import (
	"regexp"
	"strings"
)

// Video ID extraction from the known YouTube URL shapes. Runs before any
// network call; an unextractable input is a caller-facing validation error,
// never part of the cascade diagnostics.

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/v/|youtu\.be/|/embed/|/shorts/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// ExtractVideoID pulls an 11-character video ID out of a YouTube URL or a
// bare ID. Returns "" if no pattern matches.
func ExtractVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(raw); len(m) >= 2 {
			return m[1]
		}
	}
	return ""
}

var validVideoID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ValidVideoID reports whether id is a well-formed 11-character video ID.
func ValidVideoID(id string) bool {
	return validVideoID.MatchString(id)
}
