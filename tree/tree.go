/*
Package tree defines randomized binary decision trees, their prediction
and the in-place forgetting of training samples.
*/
package tree

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pbanos/hedgecut/feature"
)

// RootID is the ID of the root node of every tree.
const RootID = "1"

// Tree represents a binary decision tree. It is composed of
// its root node, the index of the tree in its ensemble and the
// logger used to report anomalies found while forgetting samples.
type Tree struct {
	Root   Node
	Index  int
	Logger *slog.Logger
}

// New takes a root node, a tree index and a logger and returns a
// tree with them. A nil logger is replaced with slog.Default().
func New(root Node, index int, logger *slog.Logger) *Tree {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tree{Root: root, Index: index, Logger: logger.With("tree", index)}
}

// Predict takes a sample and returns the label predicted for it by
// the tree or an error if the sample lacks a value for a feature
// tested on its path.
func (t *Tree) Predict(s feature.Sample) (int, error) {
	if t == nil || t.Root == nil {
		return 0, fmt.Errorf("empty tree cannot predict samples")
	}
	l, err := t.leafFor(s)
	if err != nil {
		return 0, fmt.Errorf("predicting sample: %v", err)
	}
	return l.Prediction(), nil
}

func (t *Tree) leafFor(s feature.Sample) (*Leaf, error) {
	n := t.Root
	for {
		switch node := n.(type) {
		case *Leaf:
			return node, nil
		case *Split:
			next, err := node.Child(s)
			if err != nil {
				return nil, fmt.Errorf("node %s: %v", node.ID, err)
			}
			n = next
		default:
			return nil, fmt.Errorf("unknown node type %T", n)
		}
	}
}

// Traverse takes a bottomup boolean and an error-returning function
// that takes a node as parameter, and goes through the nodes of the
// tree running the function with every traversed node. Alternate
// subtrees are not traversed.
// Traverse will call the function with a parent node before calling
// it for its children if bottomup is false, and call it after its
// children if bottomup is true.
// If the call to the function returns an error, the traversing is
// aborted and the error is returned.
func (t *Tree) Traverse(bottomup bool, f func(Node) error) error {
	return traverse(t.Root, bottomup, f)
}

func traverse(n Node, bottomup bool, f func(Node) error) error {
	if n == nil {
		return nil
	}
	if !bottomup {
		if err := f(n); err != nil {
			return err
		}
	}
	if s, ok := n.(*Split); ok {
		if err := traverse(s.Left, bottomup, f); err != nil {
			return err
		}
		if err := traverse(s.Right, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(n)
	}
	return nil
}

// Summary holds node counts of a tree.
type Summary struct {
	Leaves         int
	Splits         int
	UnstableSplits int
	Alternatives   int
}

// Add returns the sum of both summaries.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Leaves:         s.Leaves + o.Leaves,
		Splits:         s.Splits + o.Splits,
		UnstableSplits: s.UnstableSplits + o.UnstableSplits,
		Alternatives:   s.Alternatives + o.Alternatives,
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("%d leaves, %d splits (%d robust, %d unstable), %d alternatives",
		s.Leaves, s.Splits, s.Splits-s.UnstableSplits, s.UnstableSplits, s.Alternatives)
}

// Summary returns the node counts of the tree. Splits carrying
// alternatives count as unstable.
func (t *Tree) Summary() Summary {
	var s Summary
	t.Traverse(false, func(n Node) error {
		switch n := n.(type) {
		case *Leaf:
			s.Leaves++
		case *Split:
			s.Splits++
			if len(n.Alternatives) > 0 {
				s.UnstableSplits++
				s.Alternatives += len(n.Alternatives)
			}
		}
		return nil
	})
	return s
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return ""
	}
	return subtreeString(t.Root)
}

func subtreeString(n Node) string {
	result := fmt.Sprintf("[%s]\n{ %v }\n", n.NodeID(), n)
	s, ok := n.(*Split)
	if !ok {
		return result
	}
	for _, a := range s.Alternatives {
		result = fmt.Sprintf("%s{ ~ %v }\n", result, a)
	}
	result = fmt.Sprintf("%s|\n", result)
	children := []Node{s.Left, s.Right}
	for i, child := range children {
		for j, line := range strings.Split(subtreeString(child), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s\n", result, line)
			} else if i == len(children)-1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
