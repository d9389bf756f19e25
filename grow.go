package hedgecut

import (
	"fmt"
	"log/slog"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/feature"
	"github.com/pbanos/hedgecut/split"
	"github.com/pbanos/hedgecut/tree"
)

// CutoffPercentiles are the percentiles of the training values of each
// feature used as candidate cutoffs: 5, 10, ..., 95.
var CutoffPercentiles = func() []float64 {
	ps := make([]float64, 0, 19)
	for p := 5; p < 100; p += 5 {
		ps = append(ps, float64(p))
	}
	return ps
}()

/*
Cutoffs takes a dataset and a slice of features and returns, for each
feature, the values at CutoffPercentiles of the samples in the dataset.
*/
func Cutoffs(ds *dataset.Dataset, features []*feature.Feature) (map[*feature.Feature][]float64, error) {
	cutoffs := make(map[*feature.Feature][]float64, len(features))
	for _, f := range features {
		ps, err := ds.Percentiles(f, CutoffPercentiles)
		if err != nil {
			return nil, fmt.Errorf("computing cutoffs for feature %s: %v", f.Name(), err)
		}
		cutoffs[f] = ps
	}
	return cutoffs, nil
}

// grower grows a single tree.
type grower struct {
	features           []*feature.Feature
	cutoffs            map[*feature.Feature][]float64
	attributesPerSplit int
	minLeafSize        int
	maxTries           int
	sampler            Sampler
	logger             *slog.Logger
}

// selection is the outcome of selecting the split for a node.
type selection struct {
	best     split.Statistics
	unstable []*tree.Alternative
}

/*
grow takes the dataset of samples reaching a node, the set of features
known to be constant on it, the node ID and the target robustness and
returns the subtree for the node.
The node becomes a leaf when it holds MinLeafSize samples or fewer, when
its label is constant, when every feature is constant on its samples or
when no informative split can be found for it.
*/
func (g *grower) grow(ds *dataset.Dataset, constant map[*feature.Feature]bool, id string, target int) (tree.Node, error) {
	if ds.Count() <= g.minLeafSize || ds.LabelConstant() {
		return g.leaf(ds, id), nil
	}
	constant, candidates, err := g.candidates(ds, constant)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return g.leaf(ds, id), nil
	}
	sel, err := g.selectSplit(ds, candidates, id, target)
	if err != nil {
		return nil, err
	}
	if sel == nil {
		return g.leaf(ds, id), nil
	}
	node := &tree.Split{ID: id, Criterion: sel.best.Criterion, Stats: sel.best}
	node.Left, node.Right, err = g.children(ds, sel.best.Criterion, constant, id, target)
	if err != nil {
		return nil, err
	}
	for _, a := range sel.unstable {
		// the removals breaking the chosen split count against the target
		a.Left, a.Right, err = g.children(ds, a.Stats.Criterion, constant, id, target-a.Robustness)
		if err != nil {
			return nil, err
		}
	}
	node.Alternatives = sel.unstable
	if len(node.Alternatives) > 0 {
		splitsTotal.WithLabelValues("unstable").Inc()
	} else {
		splitsTotal.WithLabelValues("robust").Inc()
	}
	return node, nil
}

func (g *grower) leaf(ds *dataset.Dataset, id string) *tree.Leaf {
	leavesTotal.Inc()
	pos, _ := ds.LabelCounts()
	return &tree.Leaf{ID: id, NumPositive: pos, NumSamples: ds.Count()}
}

func (g *grower) children(ds *dataset.Dataset, c feature.Criterion, constant map[*feature.Feature]bool, id string, target int) (tree.Node, tree.Node, error) {
	lds, rds, err := ds.Split(c)
	if err != nil {
		return nil, nil, err
	}
	left, err := g.grow(lds, constant, id+"0", target)
	if err != nil {
		return nil, nil, err
	}
	right, err := g.grow(rds, constant, id+"1", target)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

/*
candidates takes a dataset and the features known to be constant on it
and returns the known constant features updated with those found
constant on the dataset along with the rest of the features. The given
set is never modified.
*/
func (g *grower) candidates(ds *dataset.Dataset, constant map[*feature.Feature]bool) (map[*feature.Feature]bool, []*feature.Feature, error) {
	var candidates []*feature.Feature
	updated := constant
	copied := false
	for _, f := range g.features {
		if constant[f] {
			continue
		}
		ok, err := ds.Constant(f)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			candidates = append(candidates, f)
			continue
		}
		if !copied {
			updated = make(map[*feature.Feature]bool, len(constant)+1)
			for k, v := range constant {
				updated[k] = v
			}
			copied = true
		}
		updated[f] = true
	}
	return updated, candidates, nil
}

/*
selectSplit draws split candidates for a node until the best of them is
robust against every other or MaxTries resamplings have been made. It
returns nil when the node should become a leaf: the tries run out
without a non-degenerate candidate or the best candidate carries no
information.
*/
func (g *grower) selectSplit(ds *dataset.Dataset, candidates []*feature.Feature, id string, target int) (*selection, error) {
	samples := ds.Samples()
	for tries := 0; ; tries++ {
		last := tries >= g.maxTries
		stats, err := g.draw(ds, candidates)
		if err != nil {
			return nil, err
		}
		if len(stats) == 0 {
			if last {
				g.logger.Debug("no valid split found", "node", id, "tries", tries)
				return nil, nil
			}
			retriesTotal.Inc()
			continue
		}
		bestIndex := 0
		bestScore := split.Score(stats[0])
		for i, s := range stats[1:] {
			if score := split.Score(s); score > bestScore {
				bestIndex, bestScore = i+1, score
			}
		}
		if bestScore <= 0 {
			return nil, nil
		}
		sel := &selection{best: stats[bestIndex]}
		robust := true
		for i, s := range stats {
			if i == bestIndex {
				continue
			}
			ok, rounds, err := split.IsRobust(sel.best, s, samples, target)
			if err != nil {
				return nil, err
			}
			robustnessRounds.Observe(float64(rounds))
			if ok {
				continue
			}
			robust = false
			if !last {
				break
			}
			sel.unstable = append(sel.unstable, &tree.Alternative{Stats: s, Robustness: rounds})
		}
		if robust || last {
			if !robust {
				g.logger.Debug("accepting non-robust split",
					"node", id, "samples", ds.Count(), "criterion", sel.best.Criterion, "alternatives", len(sel.unstable))
			}
			return sel, nil
		}
		retriesTotal.Inc()
	}
}

/*
draw samples the features and cutoffs of the split candidates for a
node and returns the statistics of those not sending every sample to
the same branch.
*/
func (g *grower) draw(ds *dataset.Dataset, candidates []*feature.Feature) ([]split.Statistics, error) {
	var stats []split.Statistics
	for _, f := range g.sampler.Features(candidates, g.attributesPerSplit) {
		c := feature.NewCriterion(f, g.sampler.Cutoff(f, g.cutoffs[f]))
		s, err := ds.Statistics(c)
		if err != nil {
			return nil, err
		}
		if s.Degenerate() {
			continue
		}
		stats = append(stats, s)
	}
	return stats, nil
}
