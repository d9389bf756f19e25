package hedgecut

import (
	"testing"

	"github.com/pbanos/hedgecut/feature"
	"github.com/stretchr/testify/assert"
)

func TestStrategyValidate(t *testing.T) {
	assert.NoError(t, DefaultStrategy().Validate())
	invalid := []func(*Strategy){
		func(s *Strategy) { s.NumTrees = 0 },
		func(s *Strategy) { s.AttributesPerSplit = -1 },
		func(s *Strategy) { s.MinLeafSize = -1 },
		func(s *Strategy) { s.MaxTries = -1 },
		func(s *Strategy) { s.TargetRobustness = -1 },
		func(s *Strategy) { s.Workers = -2 },
	}
	for _, f := range invalid {
		s := DefaultStrategy()
		f(s)
		assert.Error(t, s.Validate())
	}
}

func TestStrategyDerivedValues(t *testing.T) {
	s := DefaultStrategy()
	assert.Equal(t, 1, s.attributesPerSplit(1))
	assert.Equal(t, 2, s.attributesPerSplit(5))
	assert.Equal(t, 3, s.attributesPerSplit(7))
	assert.Equal(t, 1, s.targetRobustness(999))
	assert.Equal(t, 1, s.targetRobustness(10))
	assert.Equal(t, 2, s.targetRobustness(2500))
	assert.Greater(t, s.workers(), 0)

	s.AttributesPerSplit = 4
	s.TargetRobustness = 6
	assert.Equal(t, 4, s.attributesPerSplit(100))
	assert.Equal(t, 6, s.targetRobustness(100))
}

func TestRandomSampler(t *testing.T) {
	candidates := []*feature.Feature{feature.New("a"), feature.New("b"), feature.New("c"), feature.New("d")}
	s1, s2 := NewRandomSampler(3), NewRandomSampler(3)
	for i := 0; i < 20; i++ {
		drawn := s1.Features(candidates, 2)
		assert.Len(t, drawn, 2)
		assert.NotEqual(t, drawn[0], drawn[1])
		assert.Equal(t, drawn, s2.Features(candidates, 2))
	}
	assert.ElementsMatch(t, candidates, s1.Features(candidates, 10))
	assert.Equal(t, "a", candidates[0].Name(), "candidates are not reordered")

	cutoffs := []float64{1, 2, 3}
	for i := 0; i < 20; i++ {
		assert.Contains(t, cutoffs, s1.Cutoff(candidates[0], cutoffs))
	}
}
