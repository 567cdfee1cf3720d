// Package main implements objectguess, a guessing game that learns.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"gopkg.in/op/go-logging.v1"

	"github.com/thought-machine/objectguess/src/cli"
	"github.com/thought-machine/objectguess/src/config"
	"github.com/thought-machine/objectguess/src/game"
	"github.com/thought-machine/objectguess/src/metrics"
	"github.com/thought-machine/objectguess/src/metrics/prometheus"
	"github.com/thought-machine/objectguess/src/qatree"
)

var log = logging.MustGetLogger("objectguess")

var opts = struct {
	Usage     string
	Verbosity cli.Verbosity `short:"v" long:"verbosity" default:"warning" description:"Verbosity of output (higher number = more output)"`
	Config    []string      `short:"c" long:"config" default:".objectguessconfig" description:"Config files to read, in order"`
	File      string        `short:"f" long:"file" description:"File to read the decision tree from. Overrides the config file."`

	Play struct {
		Plain bool `short:"p" long:"plain" description:"Use plain line-based prompts instead of interactive ones"`
	} `command:"play" description:"Plays the game"`

	Show struct {
		Keys bool `short:"k" long:"keys" description:"Show the key of each node"`
	} `command:"show" description:"Draws the decision tree"`

	Export struct {
		Output string `short:"o" long:"output" description:"File to write to; defaults to stdout"`
	} `command:"export" description:"Exports the decision tree as YAML"`

	Check struct{} `command:"check" description:"Checks the decision tree for consistency and prints some statistics about it"`
}{
	Usage: `
objectguess is a guessing game that learns.

Think of an object and answer its yes/no questions; if it guesses wrongly it will ask
you for a question that tells your object apart from its guess, and remember it next time.
`,
}

func main() {
	command := cli.ParseFlagsOrDie("objectguess", &opts)
	cli.InitLogging(opts.Verbosity)
	config, err := config.ReadConfigFiles(opts.Config)
	if err != nil {
		log.Fatalf("Failed to read config: %s", err)
	}
	if opts.File != "" {
		config.Tree.File = opts.File
	}
	if opts.Play.Plain {
		config.Game.Plain = true
	}
	switch command {
	case "play":
		err = play(config)
	case "show":
		err = show(config.Tree.File)
	case "export":
		err = export(config.Tree.File, opts.Export.Output)
	case "check":
		err = check(config.Tree.File)
	}
	if err != nil {
		log.Fatalf("%s", err)
	}
}

// play runs an interactive session against the configured tree.
func play(config *config.Configuration) error {
	qa, err := qatree.Load(config.Tree.File)
	if os.IsNotExist(err) {
		log.Notice("%s doesn't exist, starting with an empty tree", config.Tree.File)
		qa = qatree.New()
	} else if err != nil {
		return err
	}
	session := game.NewSession(qa, game.NewPrompter(config.Game.Plain), config.Game.SuggestionDistance)
	prometheus.Register(session.ID)
	defer metrics.Push(config)
	err = session.Run(config.Tree.File, func(filename string, qa *qatree.QATree) error {
		return qatree.Save(filename, qa, config.Tree.Compress)
	})
	if errors.Is(err, game.ErrQuit) {
		if session.Dirty() {
			log.Warning("Exiting without saving changes")
		}
		return nil
	}
	return err
}

// show prints a drawing of the tree.
func show(filename string) error {
	qa, err := qatree.Load(filename)
	if err != nil {
		return err
	}
	fmt.Print(qatree.Render(qa, opts.Show.Keys))
	return nil
}

// export writes the tree as YAML to the given file, or stdout if it's empty.
func export(filename, output string) error {
	qa, err := qatree.Load(filename)
	if err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return qatree.Export(w, qa)
}

// check loads the tree, which validates it, and prints some statistics.
func check(filename string) error {
	info, err := os.Stat(filename)
	if err != nil {
		return err
	}
	qa, err := qatree.Load(filename)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s, OK\n", filename, humanize.Bytes(uint64(info.Size())))
	fmt.Printf("  Objects:     %s\n", humanize.Comma(int64(len(qa.Answers()))))
	fmt.Printf("  Questions:   %s\n", humanize.Comma(int64(len(qa.Questions()))))
	fmt.Printf("  Depth:       %s\n", humanize.Comma(int64(qa.Tree().Depth())))
	fmt.Printf("  Fingerprint: %016x\n", qa.Tree().Fingerprint())
	return nil
}
