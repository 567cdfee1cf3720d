// Package config reads the configuration files for objectguess.
// They are in the same INI-like format that git uses, for example:
//
//	[tree]
//	file = animals.txt
//
//	[metrics]
//	pushgatewayurl = http://localhost:9091
package config

import (
	"os"
	"time"

	"github.com/please-build/gcfg"

	"github.com/thought-machine/objectguess/src/cli"
	"github.com/thought-machine/objectguess/src/cli/logging"
)

var log = logging.Log

// FileName is the name of the config file we look for by default.
const FileName = ".objectguessconfig"

// A Configuration contains all the settings that can be configured about objectguess.
type Configuration struct {
	Tree struct {
		File     string `help:"File that the decision tree is loaded from and saved to. Files ending in .xz are compressed."`
		Compress bool   `help:"Save the tree xz-compressed even if the filename doesn't end in .xz."`
	}
	Game struct {
		Plain              bool `help:"Use plain line-based prompts instead of interactive ones."`
		SuggestionDistance int  `help:"Maximum edit distance at which a new object is reported as similar to a known one."`
	}
	Metrics struct {
		PushGatewayURL string       `help:"URL of a Prometheus pushgateway to push metrics to at the end of a session."`
		Timeout        cli.Duration `help:"Timeout for pushing metrics."`
	}
}

// DefaultConfiguration returns the default configuration object with no overrides.
func DefaultConfiguration() *Configuration {
	config := Configuration{}
	config.Tree.File = "objects.txt"
	config.Game.SuggestionDistance = 2
	config.Metrics.Timeout = cli.Duration(5 * time.Second)
	return &config
}

// ReadConfigFiles reads all the config locations, in order, and merges them into a config
// object. Files that don't exist are silently skipped.
func ReadConfigFiles(filenames []string) (*Configuration, error) {
	config := DefaultConfiguration()
	for _, filename := range filenames {
		if err := readConfigFile(config, filename); err != nil {
			return config, err
		}
	}
	return config, nil
}

func readConfigFile(config *Configuration, filename string) error {
	log.Debug("Attempting to read config from %s...", filename)
	if err := gcfg.ReadFileInto(config, filename); err != nil && os.IsNotExist(err) {
		return nil // It's not an error to not have the file at all.
	} else if gcfg.FatalOnly(err) != nil {
		return err
	} else if err != nil {
		log.Warning("Error in config file: %s", err)
	}
	log.Debug("Read config from %s", filename)
	return nil
}
