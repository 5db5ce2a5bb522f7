// Package vcs abstracts version control systems. Currently just git.
package vcs

import (
	"context"
	"fmt"

	"github.com/blang/semver/v4"

	"github.com/dcolint/dcolint/model"
)

type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("vcs: ref %q not found", e.Ref)
}

type Interface interface {
	Fetch(ctx context.Context, upstream, ref string) error
	ReadCommits(ctx context.Context, query string) ([]*model.Commit, error)
	GetMainBranch(ctx context.Context, candidates []string) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
	Version(ctx context.Context) (semver.Version, error)
}
