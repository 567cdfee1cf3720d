package qatree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thought-machine/objectguess/src/tree"
)

// newAnimalTree returns the tree from learning about a dog and a cat on an empty tree.
func newAnimalTree(t *testing.T) *QATree {
	qa := New()
	require.NoError(t, qa.CreateQuestionAnswer("Is it alive?", "dog", "cat"))
	return qa
}

func TestEmptyTree(t *testing.T) {
	qa := New()
	assert.True(t, qa.IsEmpty())
	_, err := qa.GetFirstQA()
	assert.ErrorIs(t, err, ErrEmptyTree)
	assert.False(t, qa.IsAnswer("anything"))
	_, err = qa.GetNextQA("anything", Correct)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFirstQuestion(t *testing.T) {
	qa := newAnimalTree(t)
	st := qa.Tree()
	assert.Equal(t, []int{-1, 0, 1}, st.Keys())
	text, _ := st.Text(0)
	assert.Equal(t, "Is it alive?", text)
	text, key, err := st.Navigate(0, tree.Right)
	require.NoError(t, err)
	assert.Equal(t, "dog", text)
	assert.Equal(t, 1, key)
	text, key, err = st.Navigate(0, tree.Left)
	require.NoError(t, err)
	assert.Equal(t, "cat", text)
	assert.Equal(t, -1, key)

	first, err := qa.GetFirstQA()
	assert.NoError(t, err)
	assert.Equal(t, "Is it alive?", first)
	assert.True(t, qa.IsAnswer("dog"))
	assert.True(t, qa.IsAnswer("cat"))
	assert.False(t, qa.IsAnswer("Is it alive?"))
	next, err := qa.GetNextQA("Is it alive?", Correct)
	assert.NoError(t, err)
	assert.Equal(t, "dog", next)
	next, err = qa.GetNextQA("Is it alive?", Incorrect)
	assert.NoError(t, err)
	assert.Equal(t, "cat", next)
}

func TestGetNextQAErrors(t *testing.T) {
	qa := newAnimalTree(t)
	_, err := qa.GetNextQA("dog", Correct)
	assert.ErrorIs(t, err, ErrNotQuestion)
	_, err = qa.GetNextQA("Is it blue?", Correct)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = qa.GetNextQA("Is it alive?", Path(7))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLearnOnWrongGuess(t *testing.T) {
	qa := newAnimalTree(t)
	require.NoError(t, qa.CreateQuestionAnswer("Is it wild?", "wolf", "dog"))

	// The old answer's node becomes the new question, in the same position.
	root := qa.Tree().Root()
	assert.Equal(t, "Is it alive?", root.Text)
	assert.Equal(t, "cat", root.Left.Text)
	question := root.Right
	assert.Equal(t, "Is it wild?", question.Text)
	assert.Equal(t, "wolf", question.Right.Text)
	assert.Equal(t, "dog", question.Left.Text)
	assert.Equal(t, question.Key+1, question.Right.Key)
	assert.Equal(t, question.Key-1, question.Left.Key)
	// The first tree had no room between its keys so this needed a rescale.
	assert.Equal(t, tree.DefaultScale+1, qa.Tree().Scale())
	assert.Equal(t, []int{-2, 0, 1, 2, 3}, qa.Tree().Keys())
	assert.NoError(t, qa.Tree().Validate())

	assert.True(t, qa.IsAnswer("dog"))
	assert.True(t, qa.IsAnswer("wolf"))
	assert.False(t, qa.IsAnswer("Is it wild?"))
	next, err := qa.GetNextQA("Is it alive?", Correct)
	assert.NoError(t, err)
	assert.Equal(t, "Is it wild?", next)
	next, err = qa.GetNextQA("Is it wild?", Correct)
	assert.NoError(t, err)
	assert.Equal(t, "wolf", next)
	assert.Equal(t, []string{"cat", "dog", "wolf"}, qa.Answers())
	assert.Equal(t, []string{"Is it alive?", "Is it wild?"}, qa.Questions())
}

func TestLearnMissingAnswerLeavesTreeUnchanged(t *testing.T) {
	qa := newAnimalTree(t)
	require.NoError(t, qa.CreateQuestionAnswer("Is it wild?", "wolf", "dog"))
	keys := qa.Tree().Keys()
	texts := qa.Tree().Preorder()
	scale := qa.Tree().Scale()

	err := qa.CreateQuestionAnswer("Is it tall?", "elephant", "giraffe")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, keys, qa.Tree().Keys())
	assert.Equal(t, texts, qa.Tree().Preorder())
	assert.Equal(t, scale, qa.Tree().Scale())
}

func TestLearnFromQuestionLeavesTreeUnchanged(t *testing.T) {
	qa := newAnimalTree(t)
	before := qa.Tree().Fingerprint()
	err := qa.CreateQuestionAnswer("Is it tall?", "elephant", "Is it alive?")
	assert.ErrorIs(t, err, ErrNotLeaf)
	assert.Equal(t, before, qa.Tree().Fingerprint())
	assert.Equal(t, tree.DefaultScale, qa.Tree().Scale())
}

func TestCopy(t *testing.T) {
	qa := newAnimalTree(t)
	cp := qa.Copy()
	require.NoError(t, cp.CreateQuestionAnswer("Is it wild?", "wolf", "dog"))
	assert.Equal(t, 3, qa.Len())
	assert.Equal(t, 5, cp.Len())
}

// learnMany builds up a tree by repeatedly learning a new object from the most recent one.
func learnMany(t *testing.T, n int) *QATree {
	qa := newAnimalTree(t)
	last := "dog"
	for i := 0; i < n; i++ {
		next := fmt.Sprintf("animal %d", i)
		missed := last
		if i%3 == 0 {
			missed = "cat"
		}
		require.NoError(t, qa.CreateQuestionAnswer(fmt.Sprintf("Is it like %s?", next), next, missed))
		last = next
	}
	return qa
}

func TestLearnManyKeepsInvariants(t *testing.T) {
	qa := learnMany(t, 40)
	st := qa.Tree()
	assert.NoError(t, st.Validate())
	assert.Equal(t, 3+2*40, qa.Len())
	assert.Equal(t, 42, len(qa.Answers()))

	// Every text is an answer iff it's on a leaf.
	st.Walk(tree.PreOrder, func(n *tree.Node) bool {
		key, found := st.Search(n.Text)
		assert.True(t, found)
		assert.Equal(t, n.Key, key)
		assert.Equal(t, n.IsLeaf(), qa.IsAnswer(n.Text))
		return true
	})
	// Each question leads to a yes and a no.
	for _, q := range qa.Questions() {
		yes, err := qa.GetNextQA(q, Correct)
		assert.NoError(t, err)
		no, err := qa.GetNextQA(q, Incorrect)
		assert.NoError(t, err)
		assert.NotEqual(t, yes, no)
	}
}

func TestWalkToEveryAnswer(t *testing.T) {
	qa := learnMany(t, 10)
	// Following the questions from the root must reach every answer exactly once.
	found := map[string]int{}
	var walk func(text string)
	walk = func(text string) {
		if qa.IsAnswer(text) {
			found[text]++
			return
		}
		for _, path := range []Path{Correct, Incorrect} {
			next, err := qa.GetNextQA(text, path)
			require.NoError(t, err)
			walk(next)
		}
	}
	first, err := qa.GetFirstQA()
	require.NoError(t, err)
	walk(first)
	assert.Equal(t, len(qa.Answers()), len(found))
	for answer, count := range found {
		assert.Equal(t, 1, count, answer)
	}
}
