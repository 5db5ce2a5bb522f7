package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/spf13/pflag"

	"github.com/dcolint/dcolint/config"
	"github.com/dcolint/dcolint/runner"
	"github.com/dcolint/dcolint/vcs/gitcli"
)

// Version is overridden by go build -X
var Version string

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	cfg := config.New(nil)

	var help bool
	var version bool
	var cfgFile string
	var messages []string
	var readStats bool
	var printConfig bool
	flags := pflag.NewFlagSet("dcolint", pflag.ExitOnError)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.BoolVar(&cfg.InCI, "ci", false, "Run in CI mode")
	flags.StringVarP(&cfg.Base, "base", "b", "", "check commits since `ref` instead of the main branch")
	flags.StringArrayVar(&cfg.Branches, "branch", []string{"main", "master"}, "set main branch candidate `name`s")
	flags.StringVar(&cfg.Upstream, "upstream", "origin", "fetch the base branch from `remote` in CI mode")
	flags.StringArrayVarP(&messages, "message", "m", nil, "validate the provided commit `message` only")
	flags.BoolVarP(&readStats, "stats", "S", false, "print sign-off stats for the repository")
	flags.BoolVar(&cfg.IncludeMerges, "include-merges", false, "check merge commits too")
	flags.BoolVar(&cfg.RequireAuthorMatch, "require-author-match", false, "require a sign-off from the commit author")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")
	flags.BoolVar(&printConfig, "print-config", false, "Print default configuration and exit")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}
	args := flags.Args()[1:]

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		v := Version
		if v == "" {
			v = "(dev)"
		}
		cfg.Printf("%s", v)
		return nil
	}
	if printConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		cfg.Printf("%s", string(b))
		return nil
	}
	if !cfg.InCI {
		if env := os.Getenv("CI"); env == "true" || env == "1" || env == "yes" {
			cfg.InCI = true
		}
	}

	dcolintYAML, err := readDcolintYAML(cfgFile)
	if err != nil {
		return err
	}
	if dcolintYAML != nil {
		if err := mergo.Merge(&cfg, dcolintYAML, mergo.WithOverride); err != nil {
			return err
		}

		if dcolintYAML.Branches != nil && len(dcolintYAML.Branches) == 0 && !flags.Lookup("branch").Changed {
			cfg.Branches = dcolintYAML.Branches
		}
	}
	if cfg.Verbose {
		b, err := json.MarshalIndent(cfg, "", "  ")
		die(err)
		cfg.Debugf("config: %s", string(b))
	}
	branchesSet := false
	if fl := flags.Lookup("branch"); fl != nil && fl.Changed {
		branchesSet = true
	}
	if dcolintYAML != nil && dcolintYAML.Branches != nil {
		branchesSet = true
	}
	cfg.BranchesSet = branchesSet

	if err := cfg.Validate(); err != nil {
		return err
	}
	messagesSet := flags.Lookup("message").Changed
	if messagesSet && len(args) > 0 {
		return errors.New("a revision range cannot be combined with -m")
	}
	if messagesSet && readStats {
		return errors.New("--stats cannot be combined with -m")
	}
	// done setting up config

	var query string
	if len(args) > 0 {
		query = args[0]
	}

	git := gitcli.New(cfg, "")
	rnr, err := runner.New(cfg, git)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if readStats {
		stats, err := rnr.Stats(ctx, query)
		if err != nil {
			return err
		}
		return stats.TextSummary(cfg.Term.Stdout)
	}

	if messagesSet {
		hasPipe := cfg.Term.StdinIsPipe()
		var err error
		if hasPipe && len(messages) == 1 && messages[0] == "-" {
			_, err = rnr.CheckReadCommit(ctx, cfg.Term.Stdin)
		} else {
			_, err = rnr.CheckMessages(ctx, messages)
		}
		if err != nil {
			cf := runner.CheckFailure{}
			if errors.As(err, &cf) {
				if werr := cf.WriteFailure(cfg.Term.Stdout); werr != nil {
					cfg.Errorf("failed to write failure information: %v", werr)
				}
			}
			return err
		}
		cfg.Printf("OK")
		return nil
	}

	results, err := rnr.CheckRange(ctx, query)
	if err != nil {
		cf := runner.CheckFailure{}
		if errors.As(err, &cf) {
			if werr := cf.WriteFailure(cfg.Term.Stdout); werr != nil {
				cfg.Errorf("failed to write failure information: %v", werr)
			}
			if !cfg.Quiet {
				fmt.Fprintln(cfg.Term.Stdout)
				if rerr := rnr.WriteRemediation(ctx, cfg.Term.Stdout, "", len(cf.Failures)); rerr != nil {
					cfg.Errorf("failed to write remediation: %v", rerr)
				}
			}
		}
		return err
	}

	if cfg.Quiet {
		if cfg.Term.IsTTY() {
			fmt.Fprintln(cfg.Term.Stdout, len(results))
		} else {
			fmt.Fprint(cfg.Term.Stdout, len(results))
		}
		return nil
	}
	if len(results) == 0 {
		cfg.Printf("OK, no commits to check")
		return nil
	}
	cfg.Printf("OK %d commit(s) checked", len(results))
	return nil
}

func die(err error) {
	if err != nil {
		panic(err)
	}
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	cfg.Printf(`%s [revision-range]

A utility for checking Signed-off-by trailers on commits.

FLAGS
%s
EXAMPLES

# check commits on the current branch that aren't on the main branch yet
$ dcolint

# check the last 5 commits
$ dcolint HEAD~5..HEAD

# check against a custom base branch
$ dcolint -b develop

# validate commit messages directly
$ dcolint -m "$(cat .git/COMMIT_EDITMSG)"
$ git log -1 --format=%%B | dcolint -m -

# print sign-off stats for the repository
$ dcolint --stats
`, os.Args[0], flags.FlagUsages())
}

func readDcolintYAML(p string) (*config.Config, error) {
	if p != "" {
		b, err := ioutil.ReadFile(p)
		if err != nil {
			return nil, err
		}
		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	for {
		candPath := filepath.Join(wd, "dcolint.yaml")
		b, err := ioutil.ReadFile(candPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				wd, _ = filepath.Split(filepath.Clean(wd))
				if wd == "/" {
					break
				}
				continue
			}
			return nil, err
		}

		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, nil
}
