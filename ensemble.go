/*
Package hedgecut grows ensembles of randomized binary decision trees
that can forget training samples without being grown again.

Splits are chosen among randomly drawn features and cutoffs by their
symmetric uncertainty. When the chosen split can be overturned by
removing a few training samples, the competitors that would overturn it
are kept as alternatives along with the subtrees they would have, so
forgetting samples can detect when a tree no longer matches the one
that would have been grown without them.
*/
package hedgecut

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/feature"
	"github.com/pbanos/hedgecut/tree"
	"golang.org/x/sync/errgroup"
)

/*
Ensemble is a set of trees predicting by majority vote. It is safe for
concurrent use: predictions may run concurrently with each other while
forgetting a sample locks the whole ensemble.
*/
type Ensemble struct {
	trees  []*tree.Tree
	lock   *sync.RWMutex
	logger *slog.Logger
}

/*
Fit takes a context, a training dataset, the features split candidates
are drawn from and a strategy and grows an ensemble on the dataset
according to the strategy. A nil strategy is replaced with
DefaultStrategy().
Trees are grown concurrently, each with its own sampler, so the result
does not depend on scheduling. An error is returned if the strategy is
not valid, the dataset is empty, no features are given or the context
is cancelled before all trees are grown.
*/
func Fit(ctx context.Context, ds *dataset.Dataset, features []*feature.Feature, s *Strategy) (*Ensemble, error) {
	if s == nil {
		s = DefaultStrategy()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if ds == nil || ds.Count() == 0 {
		return nil, fmt.Errorf("fitting ensemble: %v", dataset.ErrEmptyDataset)
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("fitting ensemble: no features to split on")
	}
	logger := s.logger()
	cutoffs, err := Cutoffs(ds, features)
	if err != nil {
		return nil, fmt.Errorf("fitting ensemble: %v", err)
	}
	target := s.targetRobustness(ds.Count())
	d := s.attributesPerSplit(len(features))
	logger.Info("fitting ensemble",
		"trees", s.NumTrees, "samples", ds.Count(), "features", len(features),
		"attributes_per_split", d, "min_leaf_size", s.MinLeafSize, "target_robustness", target)

	trees := make([]*tree.Tree, s.NumTrees)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i := range trees {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tl := logger.With("tree", i)
			gr := &grower{
				features:           features,
				cutoffs:            cutoffs,
				attributesPerSplit: d,
				minLeafSize:        s.MinLeafSize,
				maxTries:           s.MaxTries,
				sampler:            s.sampler(i),
				logger:             tl,
			}
			root, err := gr.grow(ds, nil, tree.RootID, target)
			if err != nil {
				return fmt.Errorf("growing tree %d: %v", i, err)
			}
			trees[i] = tree.New(root, i, logger)
			treesGrownTotal.Inc()
			tl.Debug("tree grown", "summary", trees[i].Summary())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e := NewEnsemble(trees, logger)
	logger.Info("ensemble fitted", "summary", e.Summary())
	return e, nil
}

/*
NewEnsemble takes a slice of trees and a logger and returns an ensemble
with them. A nil logger is replaced with slog.Default().
*/
func NewEnsemble(trees []*tree.Tree, logger *slog.Logger) *Ensemble {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ensemble{trees: trees, lock: &sync.RWMutex{}, logger: logger}
}

// Trees returns the trees in the ensemble.
func (e *Ensemble) Trees() []*tree.Tree {
	return e.trees
}

/*
PredictOne takes a sample and returns 1 if more than half the trees in
the ensemble predict 1 for it and 0 otherwise, or an error if a tree
cannot predict the sample.
*/
func (e *Ensemble) PredictOne(s feature.Sample) (int, error) {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.predict(s)
}

func (e *Ensemble) predict(s feature.Sample) (int, error) {
	var votes int
	for _, t := range e.trees {
		p, err := t.Predict(s)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %v", t.Index, err)
		}
		votes += p
	}
	if 2*votes > len(e.trees) {
		return 1, nil
	}
	return 0, nil
}

/*
Predict takes a slice of samples and returns the prediction of the
ensemble for each of them in the same order, or an error if one of them
cannot be predicted.
*/
func (e *Ensemble) Predict(samples []feature.Sample) ([]int, error) {
	e.lock.RLock()
	defer e.lock.RUnlock()
	result := make([]int, 0, len(samples))
	for i, s := range samples {
		p, err := e.predict(s)
		if err != nil {
			return nil, fmt.Errorf("predicting sample %d: %v", i, err)
		}
		result = append(result, p)
	}
	return result, nil
}

/*
Test takes a dataset and returns the ratio of its samples whose label
the ensemble predicts correctly, or an error if a sample cannot be
predicted or the dataset is empty.
*/
func (e *Ensemble) Test(ds *dataset.Dataset) (float64, error) {
	if ds.Count() == 0 {
		return 0.0, dataset.ErrEmptyDataset
	}
	e.lock.RLock()
	defer e.lock.RUnlock()
	var hits int
	for i, s := range ds.Samples() {
		p, err := e.predict(s)
		if err != nil {
			return 0.0, fmt.Errorf("testing sample %d: %v", i, err)
		}
		if p == s.Label() {
			hits++
		}
	}
	return float64(hits) / float64(ds.Count()), nil
}

/*
Forget takes a sample and its label and makes every tree in the ensemble
forget it, returning the merged report of all trees. No prediction can
run while a sample is being forgotten.
Every tree is checked before any is updated, so when an error is
returned because the label is not 0 or 1 or the sample lacks a value for
a feature some tree tests, the ensemble is left untouched.
*/
func (e *Ensemble) Forget(s feature.Sample, label int) (*tree.ForgetReport, error) {
	if label != 0 && label != 1 {
		return nil, fmt.Errorf("forgetting sample: %v: %d", dataset.ErrInvalidLabel, label)
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	for _, t := range e.trees {
		if err := t.Check(s); err != nil {
			return nil, fmt.Errorf("tree %d: %v", t.Index, err)
		}
	}
	report := &tree.ForgetReport{}
	for _, t := range e.trees {
		r, err := t.Forget(s, label)
		report.Merge(r)
		if err != nil {
			return report, fmt.Errorf("tree %d: %v", t.Index, err)
		}
	}
	if !report.Clean() {
		e.logger.Info("sample forgotten with anomalies", "report", report)
	}
	return report, nil
}

// Summary returns the sum of the node counts of all trees.
func (e *Ensemble) Summary() tree.Summary {
	e.lock.RLock()
	defer e.lock.RUnlock()
	var s tree.Summary
	for _, t := range e.trees {
		s = s.Add(t.Summary())
	}
	return s
}

func (e *Ensemble) String() string {
	e.lock.RLock()
	defer e.lock.RUnlock()
	var b strings.Builder
	for _, t := range e.trees {
		fmt.Fprintf(&b, "Tree %d\n%v\n", t.Index, t)
	}
	return b.String()
}
