package config

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type TerminalIO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var DefaultTermIO = TerminalIO{
	Stdin:  os.Stdin,
	Stdout: os.Stdout,
	Stderr: os.Stderr,
}

func (t *TerminalIO) Printf(msg string, args ...interface{}) {
	fmt.Fprintf(t.Stdout, msg, args...)
}

// IsTTY reports whether Stdout is an interactive terminal. Buffers and
// other non-file writers never are.
func (t *TerminalIO) IsTTY() bool {
	f, ok := t.Stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// StdinIsPipe reports whether Stdin carries piped data. Non-file readers
// (test buffers) count as pipes.
func (t *TerminalIO) StdinIsPipe() bool {
	if t.Stdin == nil {
		return false
	}
	f, ok := t.Stdin.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd())
}
