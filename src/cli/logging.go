package cli

import (
	cli "github.com/peterebden/go-cli-init/v5/logging"

	clilogging "github.com/thought-machine/objectguess/src/cli/logging"
)

var log = clilogging.Log

// A Verbosity is used as a flag to define logging verbosity.
// It accepts either a level name (eg. "warning") or a number where higher numbers
// mean more output.
type Verbosity = cli.Verbosity

// InitLogging initialises logging backends, writing to stderr at the given verbosity.
func InitLogging(verbosity Verbosity) {
	cli.InitLogging(verbosity)
}
