// Package runner manages command-line execution
package runner

import (
	"context"
	"text/template"

	"github.com/dcolint/dcolint/config"
	"github.com/dcolint/dcolint/vcs"
)

type Runner struct {
	cfg        config.Config
	vcs        vcs.Interface
	tmpl       *template.Template
	mainBranch string
}

func New(cfg config.Config, vcs vcs.Interface) (*Runner, error) {
	tmpl, err := template.New("remediation").Parse(defaultRemediationTemplate)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:  cfg,
		vcs:  vcs,
		tmpl: tmpl,
	}, nil
}

// resolveBase returns the ref commits are checked against: the
// configured base if there is one, otherwise the repository's main
// branch.
func (r *Runner) resolveBase(ctx context.Context) (string, error) {
	if r.cfg.Base != "" {
		return r.cfg.Base, nil
	}
	if r.mainBranch == "" {
		branches := r.cfg.Branches
		if r.cfg.InCI && !r.cfg.BranchesSet {
			branches = nil
		}
		mainBranch, err := r.vcs.GetMainBranch(ctx, branches)
		if err != nil {
			r.cfg.Printf("Get remote failed, falling back to defaults: %v", r.cfg.Branches)
			mainBranch, err = r.vcs.GetMainBranch(ctx, r.cfg.Branches)
			if err != nil {
				return "", err
			}
		}
		r.mainBranch = mainBranch
		r.cfg.Debugf("main branch is %q", mainBranch)
	}
	return r.mainBranch, nil
}

func remoteRef(upstream, ref string) string {
	if upstream == "" {
		upstream = "origin"
	}
	return upstream + "/" + ref
}
