package split

import (
	"fmt"
	"testing"

	"github.com/pbanos/hedgecut/feature"
	"github.com/stretchr/testify/assert"
)

type testSample struct {
	values map[string]float64
	label  int
}

func (s *testSample) ValueFor(f *feature.Feature) (float64, error) {
	v, ok := s.values[f.Name()]
	if !ok {
		return 0, fmt.Errorf("no value for feature %s", f.Name())
	}
	return v, nil
}

func (s *testSample) Label() int {
	return s.label
}

func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, Entropy(0, 0))
	assert.Equal(t, 0.0, Entropy(7, 0))
	assert.Equal(t, 0.0, Entropy(0, 3))
	assert.InDelta(t, 1.0, Entropy(4, 4), 1e-12)
	assert.InDelta(t, 0.9183, Entropy(1, 2), 1e-4)
	assert.Equal(t, Entropy(1, 2), Entropy(2, 1))
	assert.Panics(t, func() { Entropy(-1, 2) })
}

func TestScore(t *testing.T) {
	c := feature.NewCriterion(feature.New("x"), 5)
	cases := []struct {
		name     string
		stats    Statistics
		expected float64
	}{
		{"perfect split", Statistics{c, 4, 0, 0, 4}, 1.0},
		{"useless split", Statistics{c, 2, 2, 2, 2}, 0.0},
		{"no samples", Statistics{Criterion: c}, 0.0},
		{"single class", Statistics{c, 3, 0, 0, 0}, 0.0},
		{"negative counts", Statistics{c, -1, 2, 3, 4}, 0.0},
		{"imperfect split", Statistics{c, 0, 1, 1, 1}, 0.2740},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Score(tc.stats), 1e-4)
		})
	}
}

func TestScoreIsSymmetricUnderBranchSwap(t *testing.T) {
	c := feature.NewCriterion(feature.New("x"), 5)
	s := Statistics{c, 3, 1, 2, 6}
	swapped := Statistics{c, 2, 6, 3, 1}
	assert.InDelta(t, Score(s), Score(swapped), 1e-12)
	assert.Greater(t, Score(s), 0.0)
	assert.Equal(t, 0.0, ScoreDiff(s, swapped))
}
