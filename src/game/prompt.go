package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrQuit is returned when the player closes the input or interrupts a prompt.
var ErrQuit = errors.New("player quit")

// A Prompter asks the player things.
type Prompter interface {
	// Confirm asks a yes/no question, repeating until it gets a valid response.
	Confirm(label string) (bool, error)
	// Ask asks for a line of free text. An empty response gives def.
	Ask(label, def string) (string, error)
	// Say tells the player something.
	Say(format string, args ...interface{})
}

// NewPrompter returns the appropriate Prompter for the current terminal.
// Interactive prompts are used only when stdin is a terminal and plain is false.
func NewPrompter(plain bool) Prompter {
	if plain || !term.IsTerminal(int(os.Stdin.Fd())) {
		return NewLinePrompter(os.Stdin, os.Stdout)
	}
	return &terminalPrompter{out: os.Stdout}
}

// parseYesNo interprets a response to a yes/no question.
func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("INCORRECT RESPONSE - Please type Y or N")
}

// terminalPrompter implements Prompter with interactive prompts.
type terminalPrompter struct {
	out io.Writer
}

func (p *terminalPrompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label: label + " (Y or N)",
		Validate: func(s string) error {
			_, err := parseYesNo(s)
			return err
		},
	}
	result, err := prompt.Run()
	if err != nil {
		return false, p.convertError(err)
	}
	return parseYesNo(result)
}

func (p *terminalPrompter) Ask(label, def string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: def,
	}
	result, err := prompt.Run()
	if err != nil {
		return "", p.convertError(err)
	}
	return strings.TrimSpace(result), nil
}

func (p *terminalPrompter) Say(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *terminalPrompter) convertError(err error) error {
	if err == promptui.ErrInterrupt || err == promptui.ErrEOF {
		return ErrQuit
	}
	return err
}

// linePrompter implements Prompter by reading lines from a reader.
// It's used when we aren't attached to a terminal, and for tests.
type linePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLinePrompter returns a Prompter that reads responses one line at a time.
func NewLinePrompter(in io.Reader, out io.Writer) Prompter {
	return &linePrompter{scanner: bufio.NewScanner(in), out: out}
}

func (p *linePrompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrQuit
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

func (p *linePrompter) Confirm(label string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s (Y or N): ", label)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		yes, err := parseYesNo(line)
		if err == nil {
			return yes, nil
		}
		fmt.Fprintf(p.out, "\n%s\n\n", err)
	}
}

func (p *linePrompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s] ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s ", label)
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	} else if line == "" {
		return def, nil
	}
	return line, nil
}

func (p *linePrompter) Say(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}
