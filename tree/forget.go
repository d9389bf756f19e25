package tree

import (
	"fmt"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/feature"
	"github.com/pbanos/hedgecut/split"
)

/*
Reorganization describes a split whose alternative outscores the
criterion in use after a forget. The tree is left as is: the condition
is only reported.
*/
type Reorganization struct {
	Tree      int
	NodeID    string
	Current   feature.Criterion
	Candidate feature.Criterion
}

func (r Reorganization) String() string {
	return fmt.Sprintf("tree %d node %s: %v outscored by %v", r.Tree, r.NodeID, r.Current, r.Candidate)
}

/*
ForgetReport holds the anomalies found while forgetting samples:
splits requiring reorganization, alternatives invalidated because
their counts went negative and refused decrements that would have left
node counts negative.
*/
type ForgetReport struct {
	Reorganizations []Reorganization
	Invalidated     int
	Underflows      int
}

// Merge adds the contents of o to r.
func (r *ForgetReport) Merge(o *ForgetReport) {
	if o == nil {
		return
	}
	r.Reorganizations = append(r.Reorganizations, o.Reorganizations...)
	r.Invalidated += o.Invalidated
	r.Underflows += o.Underflows
}

// Clean reports whether the report holds no anomaly.
func (r *ForgetReport) Clean() bool {
	return len(r.Reorganizations) == 0 && r.Invalidated == 0 && r.Underflows == 0
}

func (r *ForgetReport) String() string {
	return fmt.Sprintf("%d reorganizations required, %d alternatives invalidated, %d underflows",
		len(r.Reorganizations), r.Invalidated, r.Underflows)
}

type labeledSample struct {
	feature.Sample
	label int
}

func (s labeledSample) Label() int {
	return s.label
}

/*
Forget takes a sample and its label and removes the sample from the
statistics of the tree as if it had never been part of its training
data. The nodes on the prediction path of the sample are updated in
place and so are the alternatives of the splits on it, along with their
subtrees. The shape of the tree never changes.

Alternatives whose counts go negative are removed from their split.
Alternatives that end up outscoring the split criterion are reported as
required reorganizations. Decrements that would leave counts negative
are refused and reported as underflows: they mean the sample was not
part of the training data. All three conditions are logged.

An error is returned if the label is not 0 or 1 or the sample lacks a
value for a feature tested on its path, alternate subtrees included. The
tree is left untouched in both cases.
*/
func (t *Tree) Forget(s feature.Sample, label int) (*ForgetReport, error) {
	if label != 0 && label != 1 {
		return nil, fmt.Errorf("forgetting sample: %v: %d", dataset.ErrInvalidLabel, label)
	}
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("empty tree cannot forget samples")
	}
	if err := t.Check(s); err != nil {
		return nil, fmt.Errorf("forgetting sample: %v", err)
	}
	report := &ForgetReport{}
	err := t.forget(t.Root, labeledSample{s, label}, "", report)
	if err != nil {
		return report, fmt.Errorf("forgetting sample: %v", err)
	}
	forgetsTotal.Inc()
	return report, nil
}

/*
Check takes a sample and returns an error if it lacks a value for a
feature tested on the nodes forgetting it would update, alternate
subtrees included. It never modifies the tree.
*/
func (t *Tree) Check(s feature.Sample) error {
	if t == nil || t.Root == nil {
		return fmt.Errorf("empty tree cannot forget samples")
	}
	return check(t.Root, s)
}

func check(n Node, s feature.Sample) error {
	sn, ok := n.(*Split)
	if !ok {
		return nil
	}
	for _, a := range sn.Alternatives {
		altLeft, err := a.Stats.Criterion.SatisfiedBy(s)
		if err != nil {
			return fmt.Errorf("node %s alternative %v: %v", sn.ID, a.Stats.Criterion, err)
		}
		child := a.Right
		if altLeft {
			child = a.Left
		}
		if err = check(child, s); err != nil {
			return err
		}
	}
	next, err := sn.Child(s)
	if err != nil {
		return fmt.Errorf("node %s: %v", sn.ID, err)
	}
	return check(next, s)
}

/*
forget updates the subtree rooted at n. The prefix identifies the
alternate subtree n belongs to, if any, and is prepended to the IDs of
the nodes it reports on: alternate subtrees reuse the IDs of the active
one.
*/
func (t *Tree) forget(n Node, s split.Sample, prefix string, report *ForgetReport) error {
	switch n := n.(type) {
	case *Leaf:
		t.forgetFromLeaf(n, s, prefix, report)
		return nil
	case *Split:
		return t.forgetFromSplit(n, s, prefix, report)
	default:
		return fmt.Errorf("unknown node type %T", n)
	}
}

func (t *Tree) forgetFromLeaf(l *Leaf, s split.Sample, prefix string, report *ForgetReport) {
	updated := *l
	updated.NumSamples--
	if s.Label() == 1 {
		updated.NumPositive--
	}
	if !updated.Valid() {
		t.Logger.Warn("refusing to forget sample from leaf",
			"node", prefix+l.ID, "positive", l.NumPositive, "samples", l.NumSamples, "label", s.Label())
		underflowsTotal.Inc()
		report.Underflows++
		return
	}
	*l = updated
}

func (t *Tree) forgetFromSplit(n *Split, s split.Sample, prefix string, report *ForgetReport) error {
	id := prefix + n.ID
	left, err := n.Criterion.SatisfiedBy(s)
	if err != nil {
		return fmt.Errorf("node %s: %v", id, err)
	}
	stats := n.Stats
	stats.Add(left, s.Label(), -1)
	if stats.Valid() {
		n.Stats = stats
	} else {
		t.Logger.Warn("refusing to forget sample from split statistics", "node", id, "stats", n.Stats)
		underflowsTotal.Inc()
		report.Underflows++
	}

	alternatives := make([]*Alternative, 0, len(n.Alternatives))
	for _, a := range n.Alternatives {
		altLeft, err := a.Stats.Criterion.SatisfiedBy(s)
		if err != nil {
			return fmt.Errorf("node %s alternative %v: %v", id, a.Stats.Criterion, err)
		}
		a.Stats.Add(altLeft, s.Label(), -1)
		if !a.Stats.Valid() {
			t.Logger.Warn("invalidating alternative split", "node", id, "alternative", a.Stats)
			invalidatedAlternativesTotal.Inc()
			report.Invalidated++
			continue
		}
		alternatives = append(alternatives, a)
		child := a.Right
		if altLeft {
			child = a.Left
		}
		if err = t.forget(child, s, alternativePrefix(id, a), report); err != nil {
			return err
		}
	}
	n.Alternatives = alternatives

	score := split.Score(n.Stats)
	for _, a := range n.Alternatives {
		if split.Score(a.Stats) > score {
			r := Reorganization{Tree: t.Index, NodeID: id, Current: n.Criterion, Candidate: a.Stats.Criterion}
			t.Logger.Warn("reorganization required",
				"node", id, "current", n.Criterion, "candidate", a.Stats.Criterion,
				"current_score", score, "candidate_score", split.Score(a.Stats))
			reorganizationsTotal.Inc()
			report.Reorganizations = append(report.Reorganizations, r)
		}
	}

	child := n.Right
	if left {
		child = n.Left
	}
	return t.forget(child, s, prefix, report)
}
