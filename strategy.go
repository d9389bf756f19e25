package hedgecut

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
)

const (
	// DefaultNumTrees is the number of trees in an ensemble unless set.
	DefaultNumTrees = 100
	// DefaultMinLeafSize is the default maximum number of samples a
	// node must have to become a leaf.
	DefaultMinLeafSize = 3
	// DefaultMaxTries is the default number of times features and
	// cutoffs are resampled for a node before settling.
	DefaultMaxTries = 25
)

// Strategy holds the configuration for growing
// an ensemble of trees.
type Strategy struct {
	// NumTrees is the number of trees in the ensemble.
	NumTrees int
	// AttributesPerSplit is the number of features
	// drawn as split candidates for each node. When
	// 0 the rounded square root of the number of
	// features is used.
	AttributesPerSplit int
	// MinLeafSize is the number of samples at or
	// below which a node is not split further.
	MinLeafSize int
	// MaxTries is the number of times the candidates
	// for a node can be resampled, whether because
	// all of them were degenerate or because the best
	// one was not robust against the rest. Once
	// exhausted the node settles for a leaf or a
	// non-robust split with alternatives.
	MaxTries int
	// TargetRobustness is the number of sample removals
	// the best split of a node must withstand against
	// every other candidate to be considered robust.
	// When 0 it is derived from the size of the
	// training dataset: max(1, n/1000).
	TargetRobustness int
	// Seed for the random sources of the trees. Tree i
	// uses Seed+i so results do not depend on the
	// order in which trees are grown.
	Seed int64
	// Workers is the maximum number of trees grown
	// concurrently. When 0 runtime.GOMAXPROCS(0) is
	// used.
	Workers int
	// NewSampler returns the sampler for the tree
	// seeded with the given value. When nil
	// NewRandomSampler is used.
	NewSampler func(seed int64) Sampler
	// Logger to report progress and anomalies on.
	// When nil slog.Default() is used.
	Logger *slog.Logger
}

// DefaultStrategy returns a strategy with default values
// and a seed of 0.
func DefaultStrategy() *Strategy {
	return &Strategy{
		NumTrees:    DefaultNumTrees,
		MinLeafSize: DefaultMinLeafSize,
		MaxTries:    DefaultMaxTries,
	}
}

// Validate returns an error if the strategy
// holds values that do not allow growing trees.
func (s *Strategy) Validate() error {
	if s.NumTrees < 1 {
		return fmt.Errorf("invalid strategy: number of trees must be positive, got %d", s.NumTrees)
	}
	if s.AttributesPerSplit < 0 {
		return fmt.Errorf("invalid strategy: attributes per split cannot be negative, got %d", s.AttributesPerSplit)
	}
	if s.MinLeafSize < 0 {
		return fmt.Errorf("invalid strategy: minimum leaf size cannot be negative, got %d", s.MinLeafSize)
	}
	if s.MaxTries < 0 {
		return fmt.Errorf("invalid strategy: maximum tries cannot be negative, got %d", s.MaxTries)
	}
	if s.TargetRobustness < 0 {
		return fmt.Errorf("invalid strategy: target robustness cannot be negative, got %d", s.TargetRobustness)
	}
	if s.Workers < 0 {
		return fmt.Errorf("invalid strategy: workers cannot be negative, got %d", s.Workers)
	}
	return nil
}

func (s *Strategy) attributesPerSplit(numFeatures int) int {
	if s.AttributesPerSplit > 0 {
		return s.AttributesPerSplit
	}
	d := int(math.Round(math.Sqrt(float64(numFeatures))))
	if d < 1 {
		d = 1
	}
	return d
}

func (s *Strategy) targetRobustness(numSamples int) int {
	if s.TargetRobustness > 0 {
		return s.TargetRobustness
	}
	t := numSamples / 1000
	if t < 1 {
		t = 1
	}
	return t
}

func (s *Strategy) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (s *Strategy) sampler(treeIndex int) Sampler {
	seed := s.Seed + int64(treeIndex)
	if s.NewSampler != nil {
		return s.NewSampler(seed)
	}
	return NewRandomSampler(seed)
}

func (s *Strategy) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
