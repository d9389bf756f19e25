package split

import (
	"testing"

	"github.com/pbanos/hedgecut/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatistics(t *testing.T) {
	x := feature.New("x")
	samples := []Sample{
		&testSample{map[string]float64{"x": 1}, 1},
		&testSample{map[string]float64{"x": 2}, 0},
		&testSample{map[string]float64{"x": 5}, 1},
		&testSample{map[string]float64{"x": 7}, 0},
		&testSample{map[string]float64{"x": 9}, 0},
	}
	s, err := NewStatistics(feature.NewCriterion(x, 5), samples)
	require.NoError(t, err)
	assert.Equal(t, 1, s.NumPlusLeft)
	assert.Equal(t, 1, s.NumMinusLeft)
	assert.Equal(t, 1, s.NumPlusRight)
	assert.Equal(t, 2, s.NumMinusRight)
	assert.Equal(t, 5, s.Total())
	assert.False(t, s.Degenerate())

	require.NoError(t, s.Remove(samples[0]))
	assert.Equal(t, 0, s.NumPlusLeft)
	require.NoError(t, s.Remove(samples[0]))
	assert.False(t, s.Valid())

	_, err = NewStatistics(feature.NewCriterion(feature.New("y"), 5), samples)
	assert.Error(t, err)
}

func TestStatisticsAdd(t *testing.T) {
	c := feature.NewCriterion(feature.New("x"), 5)
	var s Statistics
	s.Criterion = c
	s.Add(true, 1, 3)
	s.Add(true, 0, 2)
	s.Add(false, 1, 1)
	s.Add(false, 0, 4)
	assert.Equal(t, Statistics{c, 3, 2, 1, 4}, s)
	assert.Equal(t, 5, s.Left())
	assert.Equal(t, 5, s.Right())
	assert.Equal(t, 10, s.Total())
	assert.True(t, s.Valid())

	s.Add(false, 1, -2)
	assert.Equal(t, -1, s.NumPlusRight)
	assert.False(t, s.Valid())
	assert.Equal(t, "{x < 5 +L:3 -L:2 +R:-1 -R:4}", s.String())
}

func TestStatisticsDegenerate(t *testing.T) {
	c := feature.NewCriterion(feature.New("x"), 5)
	cases := []struct {
		name       string
		stats      Statistics
		degenerate bool
	}{
		{"both branches", Statistics{c, 1, 0, 0, 1}, false},
		{"left only", Statistics{c, 2, 3, 0, 0}, true},
		{"right only", Statistics{c, 0, 0, 1, 1}, true},
		{"empty", Statistics{Criterion: c}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.degenerate, tc.stats.Degenerate())
		})
	}
}
