// Package gitcli implements vcs.Interface using the git commandline tool.
package gitcli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dcolint/dcolint/config"
	"github.com/dcolint/dcolint/model"
	"github.com/dcolint/dcolint/vcs"
)

// Git implements vcs.Interface using the git commandline tool.
type Git struct {
	cfg config.Config
	wd  string
}

func New(cfg config.Config, wd string) *Git {
	return &Git{
		cfg: cfg,
		wd:  wd,
	}
}

func (g *Git) Fetch(ctx context.Context, upstream, ref string) error {
	if upstream == "" {
		upstream = "origin"
	}
	_, err := g.call(ctx, []string{"fetch", upstream, ref})
	return err
}

const EXPECTED_LOG_PARTS = 9

// bufio.Scanner caps tokens at 64KB by default. A single body line in a
// commit message can be bigger.
const MAX_LOG_LINE = 10 * 1024 * 1024

func (g *Git) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	args := []string{
		"log", "--pretty=tformat:_START_%H_SEP_%aN_SEP_%ae_SEP_%ai_SEP_%cN_SEP_%ce_SEP_%ci_SEP_%s_SEP_%b_END_",
	}
	if !g.cfg.IncludeMerges {
		args = append(args, "--no-merges")
	}
	args = append(args, query)
	b, err := g.call(ctx, args)
	if err != nil {
		if strings.Contains(err.Error(), "unknown revision") {
			return nil, vcs.NotFoundError{Ref: query}
		}
		return nil, err
	}

	var commits []*model.Commit
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	scanner.Buffer(nil, MAX_LOG_LINE)
	for scanner.Scan() {
		s := scanner.Text()
		parts := strings.Split(s, "_SEP_")
		if len(parts) != EXPECTED_LOG_PARTS {
			return nil, fmt.Errorf("gitcli: expected %d parts from git log, got %d", EXPECTED_LOG_PARTS, len(parts))
		}

		commitID := parts[0]
		if !strings.HasPrefix(commitID, "_START_") {
			return nil, fmt.Errorf("gitcli: unexpected git log line: %q", s)
		}
		commitID = strings.TrimPrefix(commitID, "_START_")

		// body can be multiple lines.
		var body string
		bodypart := parts[len(parts)-1]
		if strings.HasSuffix(bodypart, "_END_") {
			body = strings.TrimSuffix(bodypart, "_END_")
		} else {
			var bodyb strings.Builder
			bodyb.WriteString(bodypart)
			bodyb.WriteString("\n")
			for scanner.Scan() {
				bodyline := scanner.Text()
				if strings.HasSuffix(bodyline, "_END_") {
					if trimmed := strings.TrimSuffix(bodyline, "_END_"); trimmed != "" {
						bodyb.WriteString(trimmed)
					}
					break
				}
				bodyb.WriteString(bodyline)
				bodyb.WriteString("\n")
			}
			body = strings.TrimRight(bodyb.String(), "\n")
		}

		authorDate, err := parseGitDate(parts[3])
		if err != nil {
			return nil, err
		}
		committerDate, err := parseGitDate(parts[6])
		if err != nil {
			return nil, err
		}

		commits = append(commits, &model.Commit{
			ID:             commitID,
			Author:         parts[1],
			AuthorEmail:    parts[2],
			AuthorDate:     authorDate,
			Committer:      parts[4],
			CommitterEmail: parts[5],
			CommitterDate:  committerDate,
			Subject:        parts[7],
			Body:           body,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gitcli: scanning git log: %w", err)
	}
	return commits, nil
}

func (g *Git) GetMainBranch(ctx context.Context, candidates []string) (string, error) {
	for _, cand := range candidates {
		if _, err := g.call(ctx, []string{"show-ref", "--verify", "--quiet", "refs/heads/" + cand}); err == nil {
			return cand, nil
		}
	}

	// none of the candidates exist locally. the remote HEAD is the next
	// best guess.
	upstream := g.cfg.Upstream
	if upstream == "" {
		upstream = "origin"
	}
	b, err := g.call(ctx, []string{"symbolic-ref", "refs/remotes/" + upstream + "/HEAD"})
	if err != nil {
		return "", vcs.NotFoundError{Ref: strings.Join(candidates, ", ")}
	}
	ref := strings.TrimSpace(string(b))
	branch := strings.TrimPrefix(ref, "refs/remotes/"+upstream+"/")
	if branch == "" || branch == ref {
		return "", vcs.NotFoundError{Ref: ref}
	}
	return branch, nil
}

func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	b, err := g.call(ctx, []string{"rev-parse", "--abbrev-ref", "HEAD"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// gitISO8601 is the date format of git log, such as
// "2020-08-17 16:26:10 -0700".
const gitISO8601 = "2006-01-02 15:04:05 -0700"

func parseGitDate(s string) (time.Time, error) {
	return time.Parse(gitISO8601, s)
}
