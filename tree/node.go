package tree

import (
	"fmt"

	"github.com/pbanos/hedgecut/feature"
	"github.com/pbanos/hedgecut/split"
)

/*
Node is a node of a tree: either a *Leaf or a *Split. Code walking a
tree tells them apart with a type switch.
*/
type Node interface {
	// NodeID returns the ID of the node, a string of 0s and 1s
	// describing the path from the root, prefixed with "1".
	NodeID() string
	isNode()
}

/*
Leaf is a terminal node holding the label counts of the training samples
that reached it.
*/
type Leaf struct {
	ID          string
	NumPositive int
	NumSamples  int
}

/*
Split is an inner node routing samples whose value for the criterion
feature is below the cutoff to Left and the rest to Right.

Stats holds the label counts of the training samples that reached the
node split by Criterion. Alternatives holds the competitors that were
too close to Criterion at build time, each with its own pre-built
subtree.
*/
type Split struct {
	ID           string
	Criterion    feature.Criterion
	Left         Node
	Right        Node
	Stats        split.Statistics
	Alternatives []*Alternative
}

/*
Alternative is a stand-by split for a Split node: the statistics of a
competitor criterion on the node's training samples, the robustness of
the chosen criterion against it and the children the node would have
if it used the competitor criterion instead.
*/
type Alternative struct {
	Stats      split.Statistics
	Robustness int
	Left       Node
	Right      Node
}

// NodeID returns the ID of the leaf.
func (l *Leaf) NodeID() string { return l.ID }

// NodeID returns the ID of the split.
func (s *Split) NodeID() string { return s.ID }

func (l *Leaf) isNode()  {}
func (s *Split) isNode() {}

/*
Prediction returns 1 if more than half of the samples in the leaf are
positive and 0 otherwise, which includes leaves with no samples.
*/
func (l *Leaf) Prediction() int {
	if 2*l.NumPositive > l.NumSamples {
		return 1
	}
	return 0
}

// Valid reports whether 0 <= NumPositive <= NumSamples.
func (l *Leaf) Valid() bool {
	return l.NumPositive >= 0 && l.NumPositive <= l.NumSamples
}

func (l *Leaf) String() string {
	return fmt.Sprintf("%d/%d => %d", l.NumPositive, l.NumSamples, l.Prediction())
}

/*
Child takes a sample and returns the child of the split the sample is
routed to or an error if the sample has no value for the criterion
feature.
*/
func (s *Split) Child(sample feature.Sample) (Node, error) {
	left, err := s.Criterion.SatisfiedBy(sample)
	if err != nil {
		return nil, err
	}
	if left {
		return s.Left, nil
	}
	return s.Right, nil
}

func (s *Split) String() string {
	return fmt.Sprintf("%v (score %.4f)", s.Criterion, split.Score(s.Stats))
}

// Criterion returns the competitor criterion of the alternative.
func (a *Alternative) Criterion() feature.Criterion {
	return a.Stats.Criterion
}

func (a *Alternative) String() string {
	return fmt.Sprintf("%v (score %.4f, robustness %d)", a.Stats.Criterion, split.Score(a.Stats), a.Robustness)
}

// alternativePrefix returns the prefix identifying the nodes of the
// subtree of alternative a of the split with the given ID, such as
// "1~y<20/" for the alternative y < 20 of the root.
func alternativePrefix(id string, a *Alternative) string {
	name := "?"
	if a.Stats.Criterion.Feature != nil {
		name = a.Stats.Criterion.Feature.Name()
	}
	return fmt.Sprintf("%s~%s<%g/", id, name, a.Stats.Criterion.Cutoff)
}
