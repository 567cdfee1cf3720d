package tree

import (
	"errors"
	"fmt"
	"math"
)

// DefaultScale is the scale a new SearchTree starts at.
const DefaultScale = 1

// ScaleFactor is the multiplier applied to every key each time the tree is rescaled.
const ScaleFactor = 2

var (
	// ErrDuplicateKey is returned when inserting a key that already exists.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound is returned when a key or text cannot be located.
	ErrNotFound = errors.New("not found")
	// ErrNotLeaf is returned when an operation requiring a leaf targets an internal node.
	ErrNotLeaf = errors.New("not a leaf")
	// ErrEmptyTree is returned when an operation requires at least one node.
	ErrEmptyTree = errors.New("empty tree")
	// ErrKeyOverflow is returned when rescaling would overflow a key.
	ErrKeyOverflow = errors.New("key overflow")
)

// A Direction identifies one of a node's children.
type Direction int

const (
	// Left is the child holding smaller keys.
	Left Direction = iota
	// Right is the child holding larger keys.
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// A SearchTree is a binary tree ordered by integer key.
// For every node, all keys in its left subtree are smaller and all keys in its right
// subtree are larger. Keys describe position only; they have no relation to the text,
// so searching by text is a linear scan.
type SearchTree struct {
	Tree
	scale int
}

// NewSearchTree returns a new, empty SearchTree.
func NewSearchTree() *SearchTree {
	return &SearchTree{scale: DefaultScale}
}

// Scale returns the number of times this tree has been rescaled, starting from DefaultScale.
func (t *SearchTree) Scale() int {
	if t.scale == 0 {
		return DefaultScale
	}
	return t.scale
}

// Insert adds a new node with the given text & key.
// The tree is unchanged if a node with that key already exists.
func (t *SearchTree) Insert(text string, key int) error {
	node := &Node{Key: key, Text: text}
	if t.root == nil {
		t.root = node
		return nil
	}
	for parent := t.root; ; {
		if key < parent.Key {
			if parent.Left == nil {
				parent.Left = node
				return nil
			}
			parent = parent.Left
		} else if key > parent.Key {
			if parent.Right == nil {
				parent.Right = node
				return nil
			}
			parent = parent.Right
		} else {
			log.Warning("Unable to insert %q: key %d is already used by %q", text, key, parent.Text)
			return fmt.Errorf("cannot insert %q at %d: %w", text, key, ErrDuplicateKey)
		}
	}
}

// Search finds the first node, in pre-order, whose text matches exactly.
// It returns that node's key and true, or false if there is no such node.
func (t *SearchTree) Search(text string) (int, bool) {
	key, found := 0, false
	t.Walk(PreOrder, func(n *Node) bool {
		if n.Text == text {
			key, found = n.Key, true
			return false
		}
		return true
	})
	return key, found
}

// find locates the node with the given key by descending the tree.
func (t *SearchTree) find(key int) *Node {
	n := t.root
	for n != nil && n.Key != key {
		if key < n.Key {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n
}

// Contains returns true if a node with the given key exists.
func (t *SearchTree) Contains(key int) bool {
	return t.find(key) != nil
}

// Text returns the text of the node with the given key.
func (t *SearchTree) Text(key int) (string, bool) {
	if n := t.find(key); n != nil {
		return n.Text, true
	}
	return "", false
}

// IsLeaf returns true if a node with the given key exists and has no children.
func (t *SearchTree) IsLeaf(key int) bool {
	n := t.find(key)
	return n != nil && n.IsLeaf()
}

// Navigate finds the node with the given key and returns the text & key of its child
// in the given direction.
func (t *SearchTree) Navigate(key int, dir Direction) (string, int, error) {
	if t.root == nil {
		return "", 0, fmt.Errorf("cannot navigate from %d: %w", key, ErrEmptyTree)
	}
	n := t.find(key)
	if n == nil {
		return "", 0, fmt.Errorf("no node with key %d: %w", key, ErrNotFound)
	}
	var child *Node
	switch dir {
	case Left:
		child = n.Left
	case Right:
		child = n.Right
	}
	if child == nil {
		return "", 0, fmt.Errorf("node %d has no %s child: %w", key, dir, ErrNotFound)
	}
	return child.Text, child.Key, nil
}

// ReplaceInfo overwrites the text of the node with the given key.
// Its key and children are unaffected.
func (t *SearchTree) ReplaceInfo(key int, text string) error {
	if t.root == nil {
		return fmt.Errorf("cannot replace %d: %w", key, ErrEmptyTree)
	}
	n := t.find(key)
	if n == nil {
		return fmt.Errorf("no node with key %d: %w", key, ErrNotFound)
	}
	n.Text = text
	return nil
}

// Keys returns every key in the tree in in-order sequence.
func (t *SearchTree) Keys() []int {
	keys := []int{}
	t.Walk(InOrder, func(n *Node) bool {
		keys = append(keys, n.Key)
		return true
	})
	return keys
}

// ScalingRequired returns true if any parent and child have adjacent keys, meaning there
// is no integer between them to splice a new node into.
// This checks the whole tree, not just one location.
func (t *SearchTree) ScalingRequired() bool {
	required := false
	t.Walk(PreOrder, func(n *Node) bool {
		if (n.Left != nil && n.Key-n.Left.Key == 1) || (n.Right != nil && n.Key-n.Right.Key == -1) {
			required = true
		}
		return !required
	})
	return required
}

// ScaleNodes multiplies every key in the tree by the given factor.
// The tree is unchanged if any key would overflow.
func (t *SearchTree) ScaleNodes(factor int) error {
	if factor < ScaleFactor {
		return fmt.Errorf("invalid scale factor %d", factor)
	}
	limit := math.MaxInt / factor
	overflow := false
	t.Walk(PreOrder, func(n *Node) bool {
		overflow = n.Key > limit || n.Key < -limit
		return !overflow
	})
	if overflow {
		return fmt.Errorf("cannot scale keys by %d: %w", factor, ErrKeyOverflow)
	}
	t.Walk(PreOrder, func(n *Node) bool {
		n.Key *= factor
		return true
	})
	return nil
}

// Rescale opens up room between every pair of keys by multiplying them all by ScaleFactor.
// If that would overflow, the keys are compacted instead.
// The tree's scale increases by one either way.
func (t *SearchTree) Rescale() error {
	if err := t.ScaleNodes(ScaleFactor); err != nil {
		if !errors.Is(err, ErrKeyOverflow) {
			return err
		}
		log.Warning("Keys too large to rescale, compacting instead")
		if err := t.Compact(); err != nil {
			return err
		}
	}
	t.scale = t.Scale() + 1
	log.Debug("Rescaled tree to scale %d", t.scale)
	return nil
}

// Compact relabels every key by its in-order position, ScaleFactor apart, with the root
// keeping a key as close to zero as possible. Relative order is preserved.
func (t *SearchTree) Compact() error {
	n := t.Len()
	if n == 0 {
		return nil
	}
	if n > math.MaxInt/(2*ScaleFactor) {
		return fmt.Errorf("cannot compact %d nodes: %w", n, ErrKeyOverflow)
	}
	rootIndex := 0
	i := 0
	t.Walk(InOrder, func(node *Node) bool {
		if node == t.root {
			rootIndex = i
		}
		i++
		return true
	})
	i = 0
	t.Walk(InOrder, func(node *Node) bool {
		node.Key = (i - rootIndex) * ScaleFactor
		i++
		return true
	})
	return nil
}

// Copy returns a deep copy of this tree, including its scale.
func (t *SearchTree) Copy() *SearchTree {
	return &SearchTree{Tree: *t.Tree.Copy(), scale: t.Scale()}
}

// Assign replaces the contents of this tree with a deep copy of src.
func (t *SearchTree) Assign(src *SearchTree) {
	if t == src {
		return
	}
	t.Tree.Assign(&src.Tree)
	t.scale = src.Scale()
}
