package gitcli

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

var CommandContext = exec.CommandContext

// call runs a git command and returns its stdout. Stderr is captured and
// folded into the returned error so failures carry git's own message.
func (g *Git) call(ctx context.Context, args []string) ([]byte, error) {
	g.cfg.Debugf("+ git %s", ArgsString(args))
	cmd := CommandContext(ctx, "git", args...)
	cmd.Dir = g.wd

	ob := &bytes.Buffer{}
	eb := &bytes.Buffer{}
	cmd.Stdout = ob
	cmd.Stderr = eb

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("exec: git %q failed: %s (%w)", args, eb.String(), err)
	}
	return ob.Bytes(), nil
}

// ArgsString renders args the way they would be typed in a shell, quoting
// any argument containing spaces.
func ArgsString(args []string) string {
	b := &strings.Builder{}
	for i, arg := range args {
		if i > 0 {
			b.WriteString(" ")
		}
		if strings.Contains(arg, " ") {
			b.WriteString(`"`)
			b.WriteString(arg)
			b.WriteString(`"`)
		} else {
			b.WriteString(arg)
		}
	}
	return b.String()
}
