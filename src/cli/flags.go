// Package cli contains helper functions related to flag parsing and logging.
// Most of the work is done by go-cli-init; this keeps the rest of the code from
// depending on it directly.
package cli

import (
	"os"

	cli "github.com/peterebden/go-cli-init/v5/flags"
	"github.com/thought-machine/go-flags"
)

// A Duration is used for flags that represent a time duration. Bare integers are
// accepted as a number of seconds.
type Duration = cli.Duration

// ParseFlags parses the app's flags and returns the parser, any extra arguments, and any error encountered.
// args should include the program name as its first element, as os.Args does.
// It may exit if certain options are encountered (eg. --help).
func ParseFlags(appname string, data interface{}, args []string) (*flags.Parser, []string, error) {
	return cli.ParseFlags(appname, data, args, flags.PassDoubleDash, nil, nil)
}

// ParseFlagsOrDie parses the app's flags and dies if unsuccessful.
// Also dies if any unexpected arguments are passed.
// It returns the active command if there is one.
func ParseFlagsOrDie(appname string, data interface{}) string {
	parser, extraArgs, err := ParseFlags(appname, data, os.Args)
	if err != nil {
		log.Fatalf("%s", err)
	} else if len(extraArgs) > 0 {
		log.Fatalf("Unknown option %s", extraArgs)
	}
	return ActiveCommand(parser.Command)
}

// ActiveCommand returns the name of the currently active command, or an empty string
// if no command was given.
func ActiveCommand(command *flags.Command) string {
	if command.Active == nil {
		return ""
	}
	return command.Active.Name
}
