// Package qatree implements the learning question & answer decision tree.
//
// Every internal node of the tree holds a yes/no question and every leaf holds an
// answer (a guess). The right child of a question is followed when the answer is
// yes and the left child when it is no. When the computer guesses wrongly the leaf
// it guessed is converted into a new question that distinguishes the player's
// object from the wrong guess.
package qatree

import (
	"errors"
	"fmt"

	"github.com/thought-machine/objectguess/src/cli/logging"
	"github.com/thought-machine/objectguess/src/metrics"
	"github.com/thought-machine/objectguess/src/tree"
)

var log = logging.Log

var learned = metrics.NewCounter("tree", "objects_learned", "Number of new objects learned")
var rescales = metrics.NewCounter("tree", "rescales", "Number of times the tree keys have been rescaled")

var (
	// ErrEmptyTree is returned when the tree has no questions at all.
	ErrEmptyTree = tree.ErrEmptyTree
	// ErrNotFound is returned when a question or answer is not in the tree.
	ErrNotFound = tree.ErrNotFound
	// ErrNotLeaf is returned when trying to learn from something that is a question.
	ErrNotLeaf = tree.ErrNotLeaf
	// ErrDuplicateKey is returned if a splice collides with an existing key.
	ErrDuplicateKey = tree.ErrDuplicateKey
	// ErrInvalidPath is returned when a path other than Correct or Incorrect is given.
	ErrInvalidPath = errors.New("invalid question path")
	// ErrNotQuestion is returned when asking for the next step after an answer.
	ErrNotQuestion = errors.New("not a question")
)

// A Path is the player's response to a question.
type Path int

const (
	// Incorrect is the path followed when the player answers no.
	Incorrect Path = iota
	// Correct is the path followed when the player answers yes.
	Correct
)

// The keys used for the first three nodes of a new tree.
const (
	rootKey        = 0
	firstAnswerKey = 1
	firstMissedKey = -1
)

// A QATree is a decision tree of questions and answers.
type QATree struct {
	tree *tree.SearchTree
}

// New returns a new, empty QATree.
func New() *QATree {
	return &QATree{tree: tree.NewSearchTree()}
}

// Tree returns the underlying keyed tree.
func (qa *QATree) Tree() *tree.SearchTree {
	return qa.tree
}

// Copy returns a deep copy of this tree.
func (qa *QATree) Copy() *QATree {
	return &QATree{tree: qa.tree.Copy()}
}

// IsEmpty returns true if the tree has no questions or answers yet.
func (qa *QATree) IsEmpty() bool {
	return qa.tree.IsEmpty()
}

// Len returns the total number of questions and answers in the tree.
func (qa *QATree) Len() int {
	return qa.tree.Len()
}

// GetFirstQA returns the first question (or answer, for a tree with only one node).
func (qa *QATree) GetFirstQA() (string, error) {
	root := qa.tree.Root()
	if root == nil {
		return "", ErrEmptyTree
	}
	return root.Text, nil
}

// IsAnswer returns true if the given text is in the tree and is an answer.
func (qa *QATree) IsAnswer(text string) bool {
	key, found := qa.tree.Search(text)
	return found && qa.tree.IsLeaf(key)
}

// GetNextQA returns the question or answer that follows the given question
// when the player responds along the given path.
func (qa *QATree) GetNextQA(question string, path Path) (string, error) {
	key, found := qa.tree.Search(question)
	if !found {
		return "", fmt.Errorf("%q: %w", question, ErrNotFound)
	} else if qa.tree.IsLeaf(key) {
		return "", fmt.Errorf("%q: %w", question, ErrNotQuestion)
	}
	var dir tree.Direction
	switch path {
	case Correct:
		dir = tree.Right
	case Incorrect:
		dir = tree.Left
	default:
		log.Error("Incorrect question/answer path %d", path)
		return "", fmt.Errorf("%d: %w", path, ErrInvalidPath)
	}
	text, _, err := qa.tree.Navigate(key, dir)
	return text, err
}

// CreateQuestionAnswer teaches the tree a new object.
// newQuestion is a question that should be answered yes for newAnswer and no for
// missedAnswer, which must be an answer already in the tree (the one that was guessed
// wrongly). The node for missedAnswer becomes newQuestion, with newAnswer as its yes
// child and missedAnswer as its no child.
//
// On an empty tree this creates the first question with its two answers.
//
// The tree is unchanged if missedAnswer can't be found or isn't an answer. Other
// failures may leave the tree partially updated.
func (qa *QATree) CreateQuestionAnswer(newQuestion, newAnswer, missedAnswer string) error {
	if qa.tree.IsEmpty() {
		if err := qa.tree.Insert(newQuestion, rootKey); err != nil {
			return err
		} else if err := qa.tree.Insert(newAnswer, firstAnswerKey); err != nil {
			return err
		} else if err := qa.tree.Insert(missedAnswer, firstMissedKey); err != nil {
			return err
		}
		learned.Add(2)
		return nil
	}
	key, found := qa.tree.Search(missedAnswer)
	if !found {
		log.Error("Unable to find answer %q", missedAnswer)
		return fmt.Errorf("answer %q: %w", missedAnswer, ErrNotFound)
	} else if !qa.tree.IsLeaf(key) {
		log.Error("%q is a question", missedAnswer)
		return fmt.Errorf("%q is a question: %w", missedAnswer, ErrNotLeaf)
	}
	if qa.tree.ScalingRequired() || qa.tree.Contains(key-1) || qa.tree.Contains(key+1) {
		if err := qa.tree.Rescale(); err != nil {
			return fmt.Errorf("failed to rescale tree: %w", err)
		}
		rescales.Inc()
		// Keys have moved; the structure hasn't so the first match is the same node.
		key, _ = qa.tree.Search(missedAnswer)
	}
	if err := qa.tree.ReplaceInfo(key, newQuestion); err != nil {
		return err
	} else if err := qa.tree.Insert(newAnswer, key+1); err != nil {
		return err
	} else if err := qa.tree.Insert(missedAnswer, key-1); err != nil {
		return err
	}
	learned.Inc()
	log.Info("Learned %q, distinguished from %q by %q", newAnswer, missedAnswer, newQuestion)
	return nil
}

// Answers returns every answer in the tree, in the order they'd be found by searching.
func (qa *QATree) Answers() []string {
	return qa.collect(true)
}

// Questions returns every question in the tree, in the order they'd be found by searching.
func (qa *QATree) Questions() []string {
	return qa.collect(false)
}

func (qa *QATree) collect(leaves bool) []string {
	ret := []string{}
	qa.tree.Walk(tree.PreOrder, func(n *tree.Node) bool {
		if n.IsLeaf() == leaves {
			ret = append(ret, n.Text)
		}
		return true
	})
	return ret
}
