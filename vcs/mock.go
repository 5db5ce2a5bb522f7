package vcs

import (
	"context"
	"time"

	"github.com/blang/semver/v4"

	"github.com/dcolint/dcolint/model"
)

// Mock implements Interface in memory for tests.
type Mock struct {
	t             time.Time
	commits       []*model.Commit
	currentBranch string
	mainBranch    string
	version       semver.Version
	fetches       []string
}

func NewMock() *Mock {
	return &Mock{
		t:             time.Now(),
		currentBranch: "feature",
		mainBranch:    "main",
		version:       semver.Version{Major: 2, Minor: 30, Patch: 0},
	}
}

// SetCommits stores commits newest-first, the order git log produces them.
func (m *Mock) SetCommits(commits ...*model.Commit) *Mock {
	finalCommits := make([]*model.Commit, len(commits))
	for i, commit := range commits {
		c := *commit
		if c.CommitterDate.IsZero() {
			c.CommitterDate = m.t
			m.t = m.t.Add(-time.Minute)
		}
		finalCommits[i] = &c
	}
	m.commits = finalCommits
	return m
}

func (m *Mock) SetCurrentBranch(branch string) *Mock {
	m.currentBranch = branch
	return m
}

func (m *Mock) SetMainBranch(branch string) *Mock {
	m.mainBranch = branch
	return m
}

func (m *Mock) SetVersion(v semver.Version) *Mock {
	m.version = v
	return m
}

// Fetches returns the upstream/ref pairs Fetch was called with.
func (m *Mock) Fetches() []string {
	return m.fetches
}

func (m *Mock) Fetch(ctx context.Context, upstream, ref string) error {
	m.fetches = append(m.fetches, upstream+" "+ref)
	return nil
}

func (m *Mock) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	return m.commits, nil
}

func (m *Mock) GetMainBranch(ctx context.Context, candidates []string) (string, error) {
	for _, cand := range candidates {
		if cand == m.mainBranch {
			return cand, nil
		}
	}
	return "", NotFoundError{Ref: m.mainBranch}
}

func (m *Mock) CurrentBranch(ctx context.Context) (string, error) {
	return m.currentBranch, nil
}

func (m *Mock) Version(ctx context.Context) (semver.Version, error) {
	return m.version, nil
}
