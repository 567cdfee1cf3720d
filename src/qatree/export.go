package qatree

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"
	"gopkg.in/yaml.v3"

	"github.com/thought-machine/objectguess/src/tree"
)

// An exportNode is the structure we export each node of the tree as.
type exportNode struct {
	Text string      `yaml:"text"`
	Key  int         `yaml:"key"`
	Yes  *exportNode `yaml:"yes,omitempty"`
	No   *exportNode `yaml:"no,omitempty"`
}

// Export writes the tree to the given writer as a nested YAML document, with each
// question's children under "yes" and "no".
func Export(w io.Writer, qa *QATree) error {
	root := qa.tree.Root()
	if root == nil {
		return ErrEmptyTree
	}
	type pair struct {
		node *tree.Node
		out  *exportNode
	}
	doc := &exportNode{Text: root.Text, Key: root.Key}
	stack := []pair{{node: root, out: doc}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n := p.node.Right; n != nil {
			p.out.Yes = &exportNode{Text: n.Text, Key: n.Key}
			stack = append(stack, pair{node: n, out: p.out.Yes})
		}
		if n := p.node.Left; n != nil {
			p.out.No = &exportNode{Text: n.Text, Key: n.Key}
			stack = append(stack, pair{node: n, out: p.out.No})
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// Render returns a human-readable drawing of the tree. If showKeys is true each node is
// prefixed by its key.
func Render(qa *QATree, showKeys bool) string {
	root := qa.tree.Root()
	if root == nil {
		return "(empty)\n"
	}
	label := func(n *tree.Node) string {
		if showKeys {
			return fmt.Sprintf("(%d) %s", n.Key, n.Text)
		}
		return n.Text
	}
	type pair struct {
		node   *tree.Node
		branch treeprint.Tree
	}
	out := treeprint.NewWithRoot(label(root))
	stack := []pair{{node: root, branch: out}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range []struct {
			meta string
			node *tree.Node
		}{{"yes", p.node.Right}, {"no", p.node.Left}} {
			if child.node == nil {
				continue
			} else if child.node.IsLeaf() {
				p.branch.AddMetaNode(child.meta, label(child.node))
			} else {
				stack = append(stack, pair{node: child.node, branch: p.branch.AddMetaBranch(child.meta, label(child.node))})
			}
		}
	}
	return out.String()
}
