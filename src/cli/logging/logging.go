// Package logging contains the singleton logger that we use globally.
// It deliberately has little else since it's a dependency everywhere.
package logging

import (
	"gopkg.in/op/go-logging.v1"
)

// Log is the singleton logger instance.
var Log = logging.MustGetLogger("objectguess")

// A Level is a log level; this is an alias for convenience so callers don't need to
// import go-logging as well.
type Level = logging.Level
