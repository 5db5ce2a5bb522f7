package config

import (
	"errors"
	"fmt"

	"github.com/imdario/mergo"
)

type Config struct {
	Verbose            bool       `json:"verbose,omitempty"`
	Quiet              bool       `json:"quiet,omitempty"`
	InCI               bool       `json:"ci,omitempty"`
	Base               string     `json:"base,omitempty"`
	Branches           []string   `json:"branches,omitempty"`
	BranchesSet        bool       `json:"-"`
	Upstream           string     `json:"upstream,omitempty"`
	IncludeMerges      bool       `json:"include_merges,omitempty"`
	RequireAuthorMatch bool       `json:"require_author_match,omitempty"`
	Term               TerminalIO `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides); err != nil {
			panic(err)
		}
	}
	return cfg
}

// Validate rejects contradictory settings. It doesn't verify that branches
// or refs exist; that happens against the repository at check time.
func (c Config) Validate() error {
	if c.Quiet && c.Verbose {
		return errors.New("config: cannot be both quiet and verbose")
	}
	return nil
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stdout, msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	c.Printf(msg, args...)
}
