// Package game implements the interactive guessing game on top of a QATree.
//
// The player thinks of an object and answers yes/no questions about it until the
// computer makes a guess. If the guess is wrong the player teaches it a question
// that tells their object apart from the guess.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/thought-machine/objectguess/src/cli/logging"
	"github.com/thought-machine/objectguess/src/metrics"
	"github.com/thought-machine/objectguess/src/qatree"
)

var log = logging.Log

var rounds = metrics.NewCounter("game", "rounds", "Number of rounds played")
var wins = metrics.NewCounter("game", "wins", "Number of rounds where the computer guessed correctly")
var losses = metrics.NewCounter("game", "losses", "Number of rounds where the computer guessed wrongly")
var questionsAsked = metrics.NewHistogram("game", "questions_asked", "Number of questions asked per round", metrics.LinearBuckets(1, 2, 10))

// A SaveFunc saves the tree to the given file.
type SaveFunc func(filename string, qa *qatree.QATree) error

// A Session is a series of rounds played against one tree.
type Session struct {
	ID                 string
	qa                 *qatree.QATree
	prompter           Prompter
	suggestionDistance int
	saved              uint64
}

// NewSession creates a new session playing against the given tree.
// New objects within suggestionDistance edits of a known answer are queried with the player;
// a negative distance disables that.
func NewSession(qa *qatree.QATree, prompter Prompter, suggestionDistance int) *Session {
	return &Session{
		ID:                 uuid.New().String(),
		qa:                 qa,
		prompter:           prompter,
		suggestionDistance: suggestionDistance,
		saved:              qa.Tree().Fingerprint(),
	}
}

// Dirty returns true if the tree has changed since it was loaded or last saved.
func (s *Session) Dirty() bool {
	return s.qa.Tree().Fingerprint() != s.saved
}

// Run plays rounds until the player doesn't want to play again, then offers to save
// the tree if it has changed.
func (s *Session) Run(filename string, save SaveFunc) error {
	log.Notice("Starting session %s", s.ID)
	for {
		if err := s.PlayRound(); err != nil {
			if !errors.Is(err, ErrQuit) && s.Dirty() {
				if err := s.promptSave(filename, save); err != nil {
					log.Error("Failed to offer to save tree: %s", err)
				}
			}
			return err
		}
		again, err := s.prompter.Confirm("Play again?")
		if err != nil {
			return err
		} else if !again {
			break
		}
	}
	if !s.Dirty() {
		return nil
	}
	return s.promptSave(filename, save)
}

func (s *Session) promptSave(filename string, save SaveFunc) error {
	if yes, err := s.prompter.Confirm("Would you like to save the current decision tree?"); err != nil || !yes {
		return err
	}
	filename, err := s.prompter.Ask("Enter the output path:", filename)
	if err != nil {
		return err
	} else if err := save(filename, s.qa); err != nil {
		log.Error("Failed to save tree: %s", err)
		s.prompter.Say("Unable to resolve output path. Decision tree not saved.")
		return nil
	}
	s.saved = s.qa.Tree().Fingerprint()
	s.prompter.Say("Decision tree saved to %s.", filename)
	return nil
}

// PlayRound plays a single round of the game.
func (s *Session) PlayRound() error {
	rounds.Inc()
	if s.qa.IsEmpty() {
		return s.bootstrap()
	}
	s.prompter.Say("\nYou must think of a single object. Please answer the following questions about this object.\n")
	current, err := s.qa.GetFirstQA()
	if err != nil {
		return err
	}
	for asked := 1; ; asked++ {
		if s.qa.IsAnswer(current) {
			questionsAsked.Observe(float64(asked))
			correct, err := s.prompter.Confirm(fmt.Sprintf("I guess that your object is a(n) %s?", current))
			if err != nil {
				return err
			} else if correct {
				wins.Inc()
				s.prompter.Say("Notice the superior intellect of the computer!\n")
				return nil
			}
			losses.Inc()
			return s.learn(current)
		}
		yes, err := s.prompter.Confirm(current)
		if err != nil {
			return err
		}
		path := qatree.Incorrect
		if yes {
			path = qatree.Correct
		}
		next, err := s.qa.GetNextQA(current, path)
		if err != nil {
			return fmt.Errorf("the decision tree is broken at %q: %w", current, err)
		}
		log.Debug("%q -> %q", current, next)
		current = next
	}
}

// learn asks the player what their object was and how to tell it apart from the wrong guess.
func (s *Session) learn(guess string) error {
	object, err := s.askObject("What were you thinking of?")
	if err != nil || object == "" {
		return err
	}
	if strings.EqualFold(object, guess) {
		s.prompter.Say("But that's what I guessed! I won't learn anything from that.\n")
		return nil
	}
	question, err := s.askQuestion(fmt.Sprintf("Please specify a question that has a yes answer for your object (%s) and a no answer for my guess (%s):", object, guess), object, guess)
	if err != nil {
		return err
	}
	if err := s.qa.CreateQuestionAnswer(question, object, guess); err != nil {
		log.Error("Failed to learn %s: %s", object, err)
		s.prompter.Say("Sorry, I couldn't learn that: %s\n", err)
		return nil
	}
	s.prompter.Say("Thanks, I'll remember that.\n")
	return nil
}

// bootstrap creates the first question in an empty tree.
func (s *Session) bootstrap() error {
	s.prompter.Say("I don't know any objects yet. Please teach me two.\n")
	first, err := s.askNonEmpty("Think of an object. What is it?")
	if err != nil {
		return err
	}
	second, err := s.askNonEmpty("Think of a different object. What is it?")
	if err != nil {
		return err
	}
	for strings.EqualFold(first, second) {
		if second, err = s.askNonEmpty("That's the same object! Please think of a different one:"); err != nil {
			return err
		}
	}
	question, err := s.askQuestion(fmt.Sprintf("Please specify a question that has a yes answer for %s and a no answer for %s:", first, second), first, second)
	if err != nil {
		return err
	} else if err := s.qa.CreateQuestionAnswer(question, first, second); err != nil {
		return err
	}
	s.prompter.Say("Thanks, now I know about %s and %s.\n", first, second)
	return nil
}

// askObject asks the player for a new object. It returns an empty string if the player
// decides against teaching it because it's already known or similar to one that is.
func (s *Session) askObject(label string) (string, error) {
	object, err := s.askNonEmpty(label)
	if err != nil {
		return "", err
	}
	if key, found := s.qa.Tree().Search(object); found {
		if s.qa.Tree().IsLeaf(key) {
			s.prompter.Say("I already know about %s; one of your answers must have differed from what I was taught.\n", object)
		} else {
			s.prompter.Say("%q is one of my questions, not an object.\n", object)
		}
		return "", nil
	}
	if s.suggestionDistance < 0 {
		return object, nil
	}
	if matches := similar(object, s.qa.Answers(), s.suggestionDistance); len(matches) > 0 {
		s.prompter.Say("I know of similar objects: %s", strings.Join(matches, ", "))
		if use, err := s.prompter.Confirm(fmt.Sprintf("Is %s really a different object?", object)); err != nil || !use {
			return "", err
		}
	}
	return object, nil
}

// askQuestion asks the player for a question that isn't already in the tree and
// isn't the same as any of the given objects.
func (s *Session) askQuestion(label string, objects ...string) (string, error) {
	for {
		question, err := s.askNonEmpty(label)
		if err != nil {
			return "", err
		} else if isObject(question, objects) {
			label = "That's an object, not a question. Please specify a question:"
		} else if _, found := s.qa.Tree().Search(question); found {
			label = "I already know that one. Please specify a different question:"
		} else {
			return question, nil
		}
	}
}

func isObject(text string, objects []string) bool {
	for _, object := range objects {
		if strings.EqualFold(text, object) {
			return true
		}
	}
	return false
}

func (s *Session) askNonEmpty(label string) (string, error) {
	for {
		answer, err := s.prompter.Ask(label, "")
		if err != nil || answer != "" {
			return answer, err
		}
	}
}
