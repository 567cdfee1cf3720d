// Package tree implements the binary trees that back the question & answer game.
//
// A Tree is a plain labelled binary tree with no ordering semantics; it provides the
// structural operations (traversal, copying, teardown). A SearchTree layers an integer
// key ordering on top of it along with the content search, navigation and relabelling
// operations the game needs.
//
// None of the types here are safe for concurrent use.
package tree

import (
	"gopkg.in/op/go-logging.v1"
)

var log = logging.MustGetLogger("tree")

// A Node is a single node in a tree. A node owns its children exclusively.
type Node struct {
	Key         int
	Text        string
	Left, Right *Node
}

// IsLeaf returns true if this node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// An Order is a depth-first traversal order.
type Order int

const (
	// InOrder visits the left subtree, the node, then the right subtree.
	InOrder Order = iota
	// PreOrder visits the node before either subtree.
	PreOrder
	// PostOrder visits both subtrees before the node.
	PostOrder
)

// A Tree is a binary tree of labelled nodes.
// The zero value is an empty tree ready for use.
type Tree struct {
	root *Node
}

// Root returns the root node of this tree, or nil if it is empty.
func (t *Tree) Root() *Node {
	return t.root
}

// IsEmpty returns true if the tree has no root.
func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	n := 0
	t.Walk(PreOrder, func(*Node) bool {
		n++
		return true
	})
	return n
}

// Depth returns the number of nodes on the longest path from the root to a leaf.
func (t *Tree) Depth() int {
	type entry struct {
		node  *Node
		depth int
	}
	max := 0
	if t.root == nil {
		return max
	}
	stack := []entry{{node: t.root, depth: 1}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.depth > max {
			max = e.depth
		}
		if e.node.Left != nil {
			stack = append(stack, entry{node: e.node.Left, depth: e.depth + 1})
		}
		if e.node.Right != nil {
			stack = append(stack, entry{node: e.node.Right, depth: e.depth + 1})
		}
	}
	return max
}

// IsLeaf returns true if a node with the given key exists and has no children.
// The tree carries no ordering here so this is a full scan; SearchTree overrides it.
func (t *Tree) IsLeaf(key int) bool {
	leaf := false
	t.Walk(PreOrder, func(n *Node) bool {
		if n.Key == key {
			leaf = n.IsLeaf()
			return false
		}
		return true
	})
	return leaf
}

// Walk visits every node of the tree in the given order, stopping early if f returns false.
// It uses an explicit stack so arbitrarily deep trees are fine.
func (t *Tree) Walk(order Order, f func(*Node) bool) {
	switch order {
	case PreOrder:
		walkPreorder(t.root, f)
	case PostOrder:
		walkPostorder(t.root, f)
	default:
		walkInorder(t.root, f)
	}
}

func walkPreorder(root *Node, f func(*Node) bool) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f(n) {
			return
		}
		// Right goes on first so left is popped first.
		if n.Right != nil {
			stack = append(stack, n.Right)
		}
		if n.Left != nil {
			stack = append(stack, n.Left)
		}
	}
}

func walkInorder(root *Node, f func(*Node) bool) {
	var stack []*Node
	for n := root; n != nil || len(stack) > 0; {
		for ; n != nil; n = n.Left {
			stack = append(stack, n)
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f(n) {
			return
		}
		n = n.Right
	}
}

func walkPostorder(root *Node, f func(*Node) bool) {
	var stack []*Node
	var last *Node
	for n := root; n != nil || len(stack) > 0; {
		if n != nil {
			stack = append(stack, n)
			n = n.Left
			continue
		}
		top := stack[len(stack)-1]
		if top.Right != nil && top.Right != last {
			n = top.Right
			continue
		}
		if !f(top) {
			return
		}
		last = top
		stack = stack[:len(stack)-1]
	}
}

// LevelOrder visits every node breadth-first, left child before right.
func (t *Tree) LevelOrder(f func(*Node)) {
	if t.root == nil {
		return
	}
	queue := []*Node{t.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.Left != nil {
			queue = append(queue, n.Left)
		}
		if n.Right != nil {
			queue = append(queue, n.Right)
		}
		f(n)
	}
}

// Inorder returns the texts of all nodes in in-order sequence.
// This is structural left-to-right order; it is not sorted by text.
func (t *Tree) Inorder() []string {
	return t.texts(InOrder)
}

// Preorder returns the texts of all nodes in pre-order sequence.
func (t *Tree) Preorder() []string {
	return t.texts(PreOrder)
}

// Postorder returns the texts of all nodes in post-order sequence.
func (t *Tree) Postorder() []string {
	return t.texts(PostOrder)
}

func (t *Tree) texts(order Order) []string {
	ret := []string{}
	t.Walk(order, func(n *Node) bool {
		ret = append(ret, n.Text)
		return true
	})
	return ret
}

// Copy returns a deep copy of this tree. The copy shares no nodes with the original.
func (t *Tree) Copy() *Tree {
	return &Tree{root: copyNodes(t.root)}
}

// Assign replaces the contents of this tree with a deep copy of src.
// Assigning a tree to itself does nothing.
func (t *Tree) Assign(src *Tree) {
	if t == src {
		return
	}
	t.Clear()
	t.root = copyNodes(src.root)
}

// Clear releases every node in the tree, leaving it empty.
// Links are severed bottom-up so no node outlives the tree through a stale reference.
func (t *Tree) Clear() {
	walkPostorder(t.root, func(n *Node) bool {
		n.Left = nil
		n.Right = nil
		return true
	})
	t.root = nil
}

// copyNodes deep-copies the subtree rooted at src.
func copyNodes(src *Node) *Node {
	if src == nil {
		return nil
	}
	type pair struct {
		src, dst *Node
	}
	root := &Node{Key: src.Key, Text: src.Text}
	stack := []pair{{src: src, dst: root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.src.Left != nil {
			p.dst.Left = &Node{Key: p.src.Left.Key, Text: p.src.Left.Text}
			stack = append(stack, pair{src: p.src.Left, dst: p.dst.Left})
		}
		if p.src.Right != nil {
			p.dst.Right = &Node{Key: p.src.Right.Key, Text: p.src.Right.Text}
			stack = append(stack, pair{src: p.src.Right, dst: p.dst.Right})
		}
	}
	return root
}
