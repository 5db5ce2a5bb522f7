package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dcolint/dcolint/config"
	"github.com/dcolint/dcolint/model"
	"github.com/dcolint/dcolint/vcs"
)

var signedCommit = &model.Commit{
	ID:          "deadbeefcafedeadbeefcafedeadbeefcafe0000",
	Author:      "Cool Author",
	AuthorEmail: "cool@example.com",
	Subject:     "add cool feature",
	Body:        "Signed-off-by: Cool Author <cool@example.com>",
}

var unsignedCommit = &model.Commit{
	ID:          "4242424242424242424242424242424242424242",
	Author:      "Sleepy Author",
	AuthorEmail: "sleepy@example.com",
	Subject:     "fix the bug",
	Body:        "it was a bad bug",
}

var proxySignedCommit = &model.Commit{
	ID:          "abcabcabcabcabcabcabcabcabcabcabcabc0000",
	Author:      "Drive By",
	AuthorEmail: "driveby@example.com",
	Subject:     "update the docs",
	Body:        "Signed-off-by: Some Maintainer <maintainer@example.com>",
}

func newTestRunner(t testing.TB, cfg config.Config, mock *vcs.Mock) *Runner {
	t.Helper()
	rnr, err := New(cfg, mock)
	if err != nil {
		t.Fatal(err)
	}
	return rnr
}

func TestCheckRangeSigned(t *testing.T) {
	cfg := config.New(nil)
	mock := vcs.NewMock().SetCommits(signedCommit)
	rnr := newTestRunner(t, cfg, mock)

	results, err := rnr.CheckRange(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Valid() {
		t.Error("expected commit to be valid")
	}
}

func TestCheckRangeUnsigned(t *testing.T) {
	cfg := config.New(nil)
	mock := vcs.NewMock().SetCommits(signedCommit, unsignedCommit)
	rnr := newTestRunner(t, cfg, mock)

	_, err := rnr.CheckRange(context.Background(), "")
	if err == nil {
		t.Fatal("expected check to fail")
	}
	if !errors.Is(err, CheckFailure{}) {
		t.Fatalf("expected CheckFailure, got %T", err)
	}
	cf := CheckFailure{}
	if !errors.As(err, &cf) {
		t.Fatalf("expected CheckFailure, got %T", err)
	}
	if len(cf.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(cf.Failures))
	}

	b := &bytes.Buffer{}
	if err := cf.WriteFailure(b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "42424242 fix the bug") {
		t.Errorf("expected output to name the failed commit, got:\n%s", out)
	}
	if !strings.Contains(out, "missing Signed-off-by trailer") {
		t.Errorf("expected output to contain the reason, got:\n%s", out)
	}
	if strings.Contains(out, "add cool feature") {
		t.Errorf("expected output not to mention passing commits, got:\n%s", out)
	}
}

func TestCheckRangeExplicitQuery(t *testing.T) {
	cfg := config.New(nil)
	mock := vcs.NewMock().SetCommits(signedCommit)
	rnr := newTestRunner(t, cfg, mock)

	if _, err := rnr.CheckRange(context.Background(), "HEAD~5..HEAD"); err != nil {
		t.Fatal(err)
	}
	if len(mock.Fetches()) != 0 {
		t.Errorf("expected no fetches, got %v", mock.Fetches())
	}
}

func TestCheckRangeCI(t *testing.T) {
	cfg := config.New(&config.Config{InCI: true})
	mock := vcs.NewMock().SetCommits(signedCommit)
	rnr := newTestRunner(t, cfg, mock)

	if _, err := rnr.CheckRange(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	fetches := mock.Fetches()
	if len(fetches) != 1 {
		t.Fatalf("expected 1 fetch, got %d", len(fetches))
	}
	if fetches[0] != "origin main" {
		t.Errorf("expected fetch of %q, got %q", "origin main", fetches[0])
	}
}

func TestCheckRangeOnBaseBranch(t *testing.T) {
	b := &bytes.Buffer{}
	cfg := config.NewWithTerminalIO(nil, &config.TerminalIO{Stdout: b, Stderr: b})
	mock := vcs.NewMock().SetCurrentBranch("main")
	rnr := newTestRunner(t, cfg, mock)

	results, err := rnr.CheckRange(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if !strings.Contains(b.String(), `HEAD is on "main"`) {
		t.Errorf("expected a note about the empty range, got:\n%s", b.String())
	}
}

func TestCheckRangeAuthorMatch(t *testing.T) {
	mock := vcs.NewMock().SetCommits(proxySignedCommit)

	// fine without the author requirement
	rnr := newTestRunner(t, config.New(nil), mock)
	if _, err := rnr.CheckRange(context.Background(), ""); err != nil {
		t.Fatal(err)
	}

	rnr = newTestRunner(t, config.New(&config.Config{RequireAuthorMatch: true}), mock)
	_, err := rnr.CheckRange(context.Background(), "")
	cf := CheckFailure{}
	if !errors.As(err, &cf) {
		t.Fatalf("expected CheckFailure, got %v", err)
	}
	b := &bytes.Buffer{}
	if err := cf.WriteFailure(b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "driveby@example.com") {
		t.Errorf("expected output to name the unmatched author, got:\n%s", b.String())
	}
}

func TestCheckRangeAuthorMatchCase(t *testing.T) {
	commit := &model.Commit{
		ID:          "f00f00f00f00f00f00f00f00f00f00f00f000000",
		Author:      "Cool Author",
		AuthorEmail: "Cool@Example.COM",
		Subject:     "add cool feature",
		Body:        "Signed-off-by: Cool Author <cool@example.com>",
	}
	cfg := config.New(&config.Config{RequireAuthorMatch: true})
	mock := vcs.NewMock().SetCommits(commit)
	rnr := newTestRunner(t, cfg, mock)

	if _, err := rnr.CheckRange(context.Background(), ""); err != nil {
		t.Fatalf("expected addresses to compare case-insensitively: %v", err)
	}
}

func TestCheckMessages(t *testing.T) {
	tcs := []struct {
		name       string
		message    string
		shouldFail bool
	}{
		{
			name:    "signed",
			message: "add cool feature\n\nSigned-off-by: Cool Author <cool@example.com>\n",
		},
		{
			name:       "unsigned",
			message:    "add cool feature\n\nlonger description here\n",
			shouldFail: true,
		},
		{
			name:    "subject only",
			message: "Signed-off-by: Cool Author <cool@example.com>",
		},
		{
			name:    "editor comments after trailer",
			message: "add cool feature\n\nSigned-off-by: Cool Author <cool@example.com>\n# Please enter the commit message for your changes.\n",
		},
		{
			name:       "commented out trailer",
			message:    "add cool feature\n\n# Signed-off-by: Cool Author <cool@example.com>\n",
			shouldFail: true,
		},
		{
			name:    "comment before subject",
			message: "# Please enter the commit message for your changes.\nadd cool feature\n\nSigned-off-by: Cool Author <cool@example.com>\n",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rnr := newTestRunner(t, config.New(nil), vcs.NewMock())
			res, err := rnr.CheckMessages(context.Background(), []string{tc.message})
			if tc.shouldFail {
				if err == nil {
					t.Fatal("expected check to fail")
				}
				if !errors.Is(err, CheckFailure{}) {
					t.Fatalf("expected CheckFailure, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(res) != 1 {
				t.Fatalf("expected 1 result, got %d", len(res))
			}
		})
	}
}

func TestCheckMessagesLeadingComment(t *testing.T) {
	rnr := newTestRunner(t, config.New(nil), vcs.NewMock())
	_, err := rnr.CheckMessages(context.Background(), []string{"# On branch feature\nfix the bug\n"})
	cf := CheckFailure{}
	if !errors.As(err, &cf) {
		t.Fatalf("expected CheckFailure, got %v", err)
	}

	b := &bytes.Buffer{}
	if err := cf.WriteFailure(b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "fix the bug") {
		t.Errorf("expected the real subject in the report, got:\n%s", b.String())
	}
	if strings.Contains(b.String(), "#") {
		t.Errorf("expected comment lines to stay out of the report, got:\n%s", b.String())
	}
}

func TestCheckMessagesSkipsAuthorMatch(t *testing.T) {
	// raw messages carry no author identity, so the requirement can't
	// apply to them.
	cfg := config.New(&config.Config{RequireAuthorMatch: true})
	rnr := newTestRunner(t, cfg, vcs.NewMock())
	msg := "add cool feature\n\nSigned-off-by: Cool Author <cool@example.com>\n"
	if _, err := rnr.CheckMessages(context.Background(), []string{msg}); err != nil {
		t.Fatal(err)
	}
}

func TestCheckReadCommit(t *testing.T) {
	rnr := newTestRunner(t, config.New(nil), vcs.NewMock())
	res, err := rnr.CheckReadCommit(context.Background(), strings.NewReader("add cool feature\n\nSigned-off-by: Cool Author <cool@example.com>\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res))
	}

	_, err = rnr.CheckReadCommit(context.Background(), strings.NewReader("add cool feature\n"))
	if !errors.Is(err, CheckFailure{}) {
		t.Fatalf("expected CheckFailure, got %v", err)
	}
}

func TestParseCommit(t *testing.T) {
	c := parseCommit("add cool feature\n\nbody line\n# comment\nSigned-off-by: Cool Author <cool@example.com>\n")
	if c.Subject != "add cool feature" {
		t.Errorf("unexpected subject: %q", c.Subject)
	}
	if strings.Contains(c.Body, "# comment") {
		t.Errorf("expected comments to be dropped, got body: %q", c.Body)
	}
	if !strings.HasSuffix(c.Body, "Signed-off-by: Cool Author <cool@example.com>") {
		t.Errorf("unexpected body: %q", c.Body)
	}

	c = parseCommit("# comment first\n\nfix the bug\n")
	if c.Subject != "fix the bug" {
		t.Errorf("expected the first real line as subject, got %q", c.Subject)
	}
	if c.Body != "" {
		t.Errorf("expected empty body, got %q", c.Body)
	}
}
