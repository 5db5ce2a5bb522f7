// Package dcolint checks commits for Developer Certificate of Origin
// sign-off trailers and reports the commits that are missing one.
//
// Related packages: config, signoff, runner, model, vcs, vcs/gitcli
package dcolint

import "github.com/dcolint/dcolint/config"

// Config holds most of the configuration variables for dcolint. This struct
// is intended for command-line use, so not all of its attributes are
// applicable to every operation.
//
// See "go doc github.com/dcolint/dcolint/config Config" for more information.
type Config = config.Config
