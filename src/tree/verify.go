package tree

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/go-multierror"
)

// Validate checks the ordering invariant of the tree and returns an error describing every
// violation found, or nil if the tree is consistent.
func (t *SearchTree) Validate() error {
	type bounds struct {
		node     *Node
		min, max int // exclusive
		hasMin   bool
		hasMax   bool
	}
	var err error
	if t.root == nil {
		return nil
	}
	seen := map[int]string{}
	stack := []bounds{{node: t.root, min: math.MinInt, max: math.MaxInt}}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := b.node
		if text, present := seen[n.Key]; present {
			err = multierror.Append(err, fmt.Errorf("key %d is used by both %q and %q", n.Key, text, n.Text))
		}
		seen[n.Key] = n.Text
		if b.hasMin && n.Key <= b.min {
			err = multierror.Append(err, fmt.Errorf("key %d (%q) should be greater than %d", n.Key, n.Text, b.min))
		}
		if b.hasMax && n.Key >= b.max {
			err = multierror.Append(err, fmt.Errorf("key %d (%q) should be less than %d", n.Key, n.Text, b.max))
		}
		if n.Right != nil {
			stack = append(stack, bounds{node: n.Right, min: n.Key, hasMin: true, max: b.max, hasMax: b.hasMax})
		}
		if n.Left != nil {
			stack = append(stack, bounds{node: n.Left, min: b.min, hasMin: b.hasMin, max: n.Key, hasMax: true})
		}
	}
	return err
}

// Fingerprint returns a hash of every key & text in the tree, in level order.
// Two trees with the same fingerprint serialise identically.
func (t *SearchTree) Fingerprint() uint64 {
	d := xxhash.New()
	t.LevelOrder(func(n *Node) {
		d.WriteString(strconv.Itoa(n.Key))
		d.WriteString(" ")
		d.WriteString(n.Text)
		d.WriteString("\n")
	})
	return d.Sum64()
}
