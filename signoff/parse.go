package signoff

import (
	"regexp"
	"strings"
)

// TrailerKey is the literal prefix of a sign-off trailer line. Matching is
// case sensitive, same as the reference DCO tooling.
const TrailerKey = "Signed-off-by:"

// Trailer is a single Signed-off-by line, split into display name and
// address.
type Trailer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// A trailer line is the key, optional whitespace, a display name, whitespace,
// and an address in angle brackets. The address must contain exactly one @
// and no whitespace or angle brackets.
var trailerRE = regexp.MustCompile(`^Signed-off-by:[ \t]*(?P<name>[^<\s][^<]*?)[ \t]+<(?P<email>[^<>\s@]+@[^<>\s@]+)>[ \t]*$`)

// Parse extracts every well-formed sign-off trailer from a commit message.
// Lines that don't match are skipped rather than reported: a message with no
// usable trailer yields an empty set, never an error.
func Parse(message string) []Trailer {
	var trailers []Trailer
	for _, line := range strings.Split(message, "\n") {
		if t, ok := parseLine(line); ok {
			trailers = append(trailers, t)
		}
	}
	return trailers
}

func parseLine(line string) (Trailer, bool) {
	line = strings.TrimSuffix(line, "\r")
	if !strings.HasPrefix(line, TrailerKey) {
		return Trailer{}, false
	}
	m := trailerRE.FindStringSubmatch(line)
	if m == nil {
		return Trailer{}, false
	}
	return Trailer{
		Name:  strings.TrimSpace(m[trailerRE.SubexpIndex("name")]),
		Email: m[trailerRE.SubexpIndex("email")],
	}, true
}
