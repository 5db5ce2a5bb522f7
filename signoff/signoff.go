// Package signoff contains code for validating Developer Certificate of
// Origin sign-off trailers in commit messages.
package signoff

import (
	"github.com/dcolint/dcolint/model"
)

type Status int

const (
	_ Status = iota

	StatusValid
	StatusMissing
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusMissing:
		return "missing"
	case 0:
		return "<invalid>"
	default:
		return "<unknown>"
	}
}

// Result is the classification of a single commit.
type Result struct {
	Commit   *model.Commit
	Status   Status
	Trailers []Trailer
}

func (r Result) Valid() bool { return r.Status == StatusValid }

type Results []Result

// Missing returns the subset of results whose commits carry no well-formed
// sign-off trailer, preserving order.
func (rs Results) Missing() Results {
	var missing Results
	for _, r := range rs {
		if r.Status == StatusMissing {
			missing = append(missing, r)
		}
	}
	return missing
}

// Validate classifies each commit as signed off (StatusValid) or not
// (StatusMissing). The result slice has the same length and order as
// commits, and each element is derived from its commit's message text
// alone. Malformed messages classify as missing; Validate never fails.
func Validate(commits []*model.Commit) Results {
	results := make(Results, len(commits))
	for i, c := range commits {
		results[i] = validateCommit(c)
	}
	return results
}

func validateCommit(c *model.Commit) Result {
	trailers := Parse(c.Message())
	status := StatusMissing
	if len(trailers) > 0 {
		status = StatusValid
	}
	return Result{Commit: c, Status: status, Trailers: trailers}
}
