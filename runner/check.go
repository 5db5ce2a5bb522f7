package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dcolint/dcolint/model"
	"github.com/dcolint/dcolint/signoff"
)

// CheckFailure is returned by the Check operations when one or more
// commits are missing a valid sign-off. It carries one entry per
// failed commit.
type CheckFailure struct {
	Failures []FailureEntry
}

type FailureEntry struct {
	commitID      string
	commitSubject string
	err           error
}

func (cf CheckFailure) Error() string {
	return fmt.Sprintf("%d commit(s) failed the sign-off check", len(cf.Failures))
}

func (cf CheckFailure) Is(other error) bool {
	_, ok := other.(CheckFailure)
	return ok
}

func (cf CheckFailure) WriteFailure(w io.Writer) error {
	if len(cf.Failures) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)
	for _, failure := range cf.Failures {
		if failure.commitID != "" {
			id := failure.commitID
			if len(id) > 8 {
				id = id[:8]
			}
			bw.WriteString(id)
			bw.WriteString(" ")
		}
		bw.WriteString(failure.commitSubject)
		bw.WriteString("\n")
		bw.WriteString("  ")
		bw.WriteString(failure.err.Error())
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// CheckRange validates sign-offs for a range of commits. An empty
// query checks <base>..HEAD, resolving base from configuration or the
// repository's main branch. In CI the base branch is fetched first so
// the range covers exactly the commits the proposed change adds.
func (r *Runner) CheckRange(ctx context.Context, query string) (signoff.Results, error) {
	var base string
	if query == "" {
		var err error
		base, err = r.resolveBase(ctx)
		if err != nil {
			return nil, err
		}
		if r.cfg.InCI {
			if err := r.vcs.Fetch(ctx, r.cfg.Upstream, base); err != nil {
				return nil, err
			}
			base = remoteRef(r.cfg.Upstream, base)
		}
		query = base + "..HEAD"
	}

	commits, err := r.vcs.ReadCommits(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 && base != "" {
		if currBranch, cerr := r.vcs.CurrentBranch(ctx); cerr == nil && currBranch == base {
			r.cfg.Printf("HEAD is on %q; pass a revision range to check commits already on it", base)
		}
	}
	// git log emits newest first. reports read better oldest first.
	commits = reversed(commits)

	results := signoff.Validate(commits)
	if failures := r.collectFailures(results); len(failures) > 0 {
		return nil, CheckFailure{Failures: failures}
	}
	return results, nil
}

// CheckMessages validates raw commit messages that didn't come from a
// repository, such as the contents of COMMIT_EDITMSG.
func (r *Runner) CheckMessages(ctx context.Context, messages []string) (signoff.Results, error) {
	commits := make([]*model.Commit, len(messages))
	for i, m := range messages {
		commits[i] = parseCommit(m)
	}
	results := signoff.Validate(commits)
	if failures := r.collectFailures(results); len(failures) > 0 {
		return nil, CheckFailure{Failures: failures}
	}
	return results, nil
}

// CheckReadCommit validates a single commit message read from rdr.
func (r *Runner) CheckReadCommit(ctx context.Context, rdr io.Reader) (signoff.Results, error) {
	raw, err := io.ReadAll(rdr)
	if err != nil {
		return nil, err
	}
	return r.CheckMessages(ctx, []string{string(raw)})
}

func (r *Runner) collectFailures(results signoff.Results) []FailureEntry {
	var failures []FailureEntry
	for _, res := range results {
		failures = append(failures, r.checkResult(res)...)
	}
	return failures
}

func (r *Runner) checkResult(res signoff.Result) []FailureEntry {
	c := res.Commit
	if res.Status == signoff.StatusMissing {
		return []FailureEntry{{
			commitID:      c.ID,
			commitSubject: c.Subject,
			err:           errors.New("missing Signed-off-by trailer"),
		}}
	}
	if r.cfg.RequireAuthorMatch && c.AuthorEmail != "" && !authorSigned(c, res.Trailers) {
		return []FailureEntry{{
			commitID:      c.ID,
			commitSubject: c.Subject,
			err:           fmt.Errorf("no Signed-off-by matches author <%s>", c.AuthorEmail),
		}}
	}
	return nil
}

func authorSigned(c *model.Commit, trailers []signoff.Trailer) bool {
	for _, tr := range trailers {
		if strings.EqualFold(tr.Email, c.AuthorEmail) {
			return true
		}
	}
	return false
}

// parseCommit reads a raw commit message, dropping comment lines the
// way git does when an editor is involved. The subject is the first
// line that survives cleanup; hook files often open with comments.
func parseCommit(s string) *model.Commit {
	var subject string
	var cleaned []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if subject == "" {
			if strings.TrimSpace(line) == "" {
				continue
			}
			subject = line
			continue
		}
		cleaned = append(cleaned, line)
	}
	body := strings.TrimSpace(strings.Join(cleaned, "\n"))
	return &model.Commit{Subject: subject, Body: body}
}

func reversed(commits []*model.Commit) []*model.Commit {
	out := make([]*model.Commit, len(commits))
	for i, c := range commits {
		out[len(commits)-1-i] = c
	}
	return out
}
