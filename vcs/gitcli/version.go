package gitcli

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/blang/semver/v4"
)

var versionRE = regexp.MustCompile(`\d+\.\d+\.\d+`)

// Version reports the version of the git binary. Output looks like
// "git version 2.30.0", with extra suffixes on some platforms.
func (g *Git) Version(ctx context.Context) (semver.Version, error) {
	b, err := g.call(ctx, []string{"--version"})
	if err != nil {
		return semver.Version{}, err
	}
	m := versionRE.FindString(string(b))
	if m == "" {
		return semver.Version{}, fmt.Errorf("gitcli: unexpected git version output: %q", strings.TrimSpace(string(b)))
	}
	return semver.Parse(m)
}
