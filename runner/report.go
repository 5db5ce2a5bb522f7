package runner

import (
	"context"
	"io"

	"github.com/blang/semver/v4"
)

const defaultRemediationTemplate = `To add the missing sign-off{{ if gt .Count 1 }}s{{ end }}, run:
{{- if .CanRebaseSignoff }}

    git rebase --signoff {{ .Base }}
{{- else }}

    git rebase -i {{ .Base }}

amending each commit along the way:

    git commit --amend --no-edit --signoff
{{- end }}

then force-push your branch. New commits can be signed as they are made:

    git commit -s
`

// rebase --signoff arrived in git 2.13.0.
var rebaseSignoffMin = semver.Version{Major: 2, Minor: 13, Patch: 0}

type remediationData struct {
	Count            int
	Base             string
	CanRebaseSignoff bool
}

// WriteRemediation writes instructions for signing off commits after
// the fact. An empty base resolves the same way CheckRange does. The
// advice depends on the installed git version; if that can't be
// determined, the portable flow is suggested.
func (r *Runner) WriteRemediation(ctx context.Context, w io.Writer, base string, count int) error {
	if base == "" {
		var err error
		base, err = r.resolveBase(ctx)
		if err != nil {
			return err
		}
		if r.cfg.InCI {
			base = remoteRef(r.cfg.Upstream, base)
		}
	}

	canRebase := false
	if v, err := r.vcs.Version(ctx); err == nil {
		canRebase = v.GTE(rebaseSignoffMin)
	}
	return r.tmpl.Execute(w, remediationData{
		Count:            count,
		Base:             base,
		CanRebaseSignoff: canRebase,
	})
}
