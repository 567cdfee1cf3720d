package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertDuplicateKey(t *testing.T) {
	st := NewSearchTree()
	require.NoError(t, st.Insert("root", 0))
	require.NoError(t, st.Insert("first", 5))
	err := st.Insert("second", 5)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 2, st.Len())
	text, present := st.Text(5)
	assert.True(t, present)
	assert.Equal(t, "first", text)
}

func TestInsertKeepsOrdering(t *testing.T) {
	st := NewSearchTree()
	for _, k := range []int{10, 5, 15, 3, 7, 12, 20, -4, 6} {
		require.NoError(t, st.Insert("x", k))
	}
	assert.NoError(t, st.Validate())
	assert.Equal(t, []int{-4, 3, 5, 6, 7, 10, 12, 15, 20}, st.Keys())
}

func TestSearchIsByText(t *testing.T) {
	st := newTestTree(t)
	key, found := st.Search("inner")
	assert.True(t, found)
	assert.Equal(t, 1, key)
	_, found = st.Search("missing")
	assert.False(t, found)
}

func TestSearchReturnsFirstPreorderMatch(t *testing.T) {
	st := newTestTree(t)
	require.NoError(t, st.ReplaceInfo(3, "left"))
	key, found := st.Search("left")
	assert.True(t, found)
	assert.Equal(t, -2, key)
}

func TestIsLeaf(t *testing.T) {
	st := newTestTree(t)
	assert.True(t, st.IsLeaf(-2))
	assert.True(t, st.IsLeaf(1))
	assert.False(t, st.IsLeaf(0))
	assert.False(t, st.IsLeaf(2))
	assert.False(t, st.IsLeaf(42))
	// The unordered tree gives the same answers by scanning.
	assert.True(t, st.Tree.IsLeaf(1))
	assert.False(t, st.Tree.IsLeaf(2))
	assert.False(t, st.Tree.IsLeaf(42))
}

func TestNavigate(t *testing.T) {
	st := newTestTree(t)
	text, key, err := st.Navigate(2, Left)
	assert.NoError(t, err)
	assert.Equal(t, "inner", text)
	assert.Equal(t, 1, key)
	text, key, err = st.Navigate(2, Right)
	assert.NoError(t, err)
	assert.Equal(t, "outer", text)
	assert.Equal(t, 3, key)

	_, _, err = st.Navigate(-2, Left)
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = st.Navigate(17, Right)
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = NewSearchTree().Navigate(0, Right)
	assert.ErrorIs(t, err, ErrEmptyTree)
}

func TestReplaceInfo(t *testing.T) {
	st := newTestTree(t)
	require.NoError(t, st.ReplaceInfo(2, "new right"))
	text, _ := st.Text(2)
	assert.Equal(t, "new right", text)
	assert.Equal(t, []int{-2, 0, 1, 2, 3}, st.Keys())
	assert.False(t, st.IsLeaf(2))

	assert.ErrorIs(t, st.ReplaceInfo(99, "x"), ErrNotFound)
	assert.ErrorIs(t, NewSearchTree().ReplaceInfo(0, "x"), ErrEmptyTree)
}

func TestReplaceInfoIsIdempotent(t *testing.T) {
	st := newTestTree(t)
	require.NoError(t, st.ReplaceInfo(1, "same"))
	before := st.Fingerprint()
	require.NoError(t, st.ReplaceInfo(1, "same"))
	assert.Equal(t, before, st.Fingerprint())
}

func TestScalingRequired(t *testing.T) {
	st := NewSearchTree()
	require.NoError(t, st.Insert("root", 0))
	assert.False(t, st.ScalingRequired())
	require.NoError(t, st.Insert("right", 2))
	require.NoError(t, st.Insert("left", -2))
	assert.False(t, st.ScalingRequired())
	// Adjacent to its parent, deep in the tree.
	require.NoError(t, st.Insert("deep", 3))
	assert.True(t, st.ScalingRequired())
}

func TestRescaleOpensRoom(t *testing.T) {
	st := newTestTree(t)
	assert.True(t, st.ScalingRequired())
	assert.Equal(t, DefaultScale, st.Scale())
	require.NoError(t, st.Rescale())
	assert.False(t, st.ScalingRequired())
	assert.Equal(t, DefaultScale+1, st.Scale())
	assert.Equal(t, []int{-4, 0, 2, 4, 6}, st.Keys())
	assert.Equal(t, []string{"left", "root", "inner", "right", "outer"}, st.Inorder())
	assert.NoError(t, st.Validate())
}

func TestScaleNodesOverflow(t *testing.T) {
	st := NewSearchTree()
	require.NoError(t, st.Insert("root", 0))
	require.NoError(t, st.Insert("huge", math.MaxInt-1))
	err := st.ScaleNodes(2)
	assert.ErrorIs(t, err, ErrKeyOverflow)
	assert.Equal(t, []int{0, math.MaxInt - 1}, st.Keys())
}

func TestRescaleCompactsOnOverflow(t *testing.T) {
	st := NewSearchTree()
	require.NoError(t, st.Insert("root", 0))
	require.NoError(t, st.Insert("small", -1))
	require.NoError(t, st.Insert("huge", math.MaxInt-1))
	require.NoError(t, st.Insert("huger", math.MaxInt))
	require.NoError(t, st.Rescale())
	assert.Equal(t, []int{-2, 0, 2, 4}, st.Keys())
	assert.Equal(t, []string{"small", "root", "huge", "huger"}, st.Inorder())
	assert.False(t, st.ScalingRequired())
	assert.NoError(t, st.Validate())
}

func TestValidateReportsAllProblems(t *testing.T) {
	st := newTestTree(t)
	// Break the invariant behind the tree's back.
	st.Root().Left.Key = 5
	st.Root().Right.Right.Key = 1
	err := st.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "should be less than 0")
	assert.Contains(t, err.Error(), "used by both")
}

func TestFingerprint(t *testing.T) {
	a := newTestTree(t)
	b := newTestTree(t)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.NoError(t, b.ReplaceInfo(3, "changed"))
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
