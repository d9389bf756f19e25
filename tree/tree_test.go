package tree

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/pbanos/hedgecut/feature"
	"github.com/pbanos/hedgecut/split"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSample map[string]float64

func (s testSample) ValueFor(f *feature.Feature) (float64, error) {
	v, ok := s[f.Name()]
	if !ok {
		return 0, fmt.Errorf("no value for feature %s", f.Name())
	}
	return v, nil
}

var (
	x = feature.New("x")
	y = feature.New("y")

	// training samples of testTree with their labels
	sampleA = testSample{"x": 1, "y": 1}
	sampleB = testSample{"x": 1, "y": 9}
	sampleC = testSample{"x": 9, "y": 1}
	sampleD = testSample{"x": 9, "y": 9}
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testTree returns a tree grown on samples A and C labeled 1 and B and
// D labeled 0, split on x < 5 and keeping y < 5 as an alternative.
func testTree() *Tree {
	root := &Split{
		ID:        RootID,
		Criterion: feature.NewCriterion(x, 5),
		Left:      &Leaf{ID: "10", NumPositive: 1, NumSamples: 2},
		Right:     &Leaf{ID: "11", NumPositive: 1, NumSamples: 2},
		Stats:     split.Statistics{Criterion: feature.NewCriterion(x, 5), NumPlusLeft: 1, NumMinusLeft: 1, NumPlusRight: 1, NumMinusRight: 1},
		Alternatives: []*Alternative{
			{
				Stats:      split.Statistics{Criterion: feature.NewCriterion(y, 5), NumPlusLeft: 2, NumMinusRight: 2},
				Robustness: 1,
				Left:       &Leaf{ID: "10", NumPositive: 2, NumSamples: 2},
				Right:      &Leaf{ID: "11", NumPositive: 0, NumSamples: 2},
			},
		},
	}
	return New(root, 0, testLogger())
}

func TestLeafPrediction(t *testing.T) {
	assert.Equal(t, 1, (&Leaf{NumPositive: 2, NumSamples: 3}).Prediction())
	assert.Equal(t, 0, (&Leaf{NumPositive: 1, NumSamples: 2}).Prediction())
	assert.Equal(t, 0, (&Leaf{NumPositive: 0, NumSamples: 0}).Prediction())
	assert.False(t, (&Leaf{NumPositive: 3, NumSamples: 2}).Valid())
	assert.False(t, (&Leaf{NumPositive: -1, NumSamples: 2}).Valid())
}

func TestPredict(t *testing.T) {
	tr := testTree()
	tr.Root.(*Split).Left = &Leaf{ID: "10", NumPositive: 2, NumSamples: 2}
	p, err := tr.Predict(sampleA)
	require.NoError(t, err)
	assert.Equal(t, 1, p)
	p, err = tr.Predict(sampleD)
	require.NoError(t, err)
	assert.Equal(t, 0, p)

	_, err = tr.Predict(testSample{"y": 1})
	assert.Error(t, err)
	var empty *Tree
	_, err = empty.Predict(sampleA)
	assert.Error(t, err)
}

func TestTraverse(t *testing.T) {
	tr := testTree()
	var topdown, bottomup []string
	require.NoError(t, tr.Traverse(false, func(n Node) error {
		topdown = append(topdown, n.NodeID())
		return nil
	}))
	require.NoError(t, tr.Traverse(true, func(n Node) error {
		bottomup = append(bottomup, n.NodeID())
		return nil
	}))
	assert.Equal(t, []string{"1", "10", "11"}, topdown)
	assert.Equal(t, []string{"10", "11", "1"}, bottomup)

	err := tr.Traverse(false, func(n Node) error {
		return fmt.Errorf("stop at %s", n.NodeID())
	})
	assert.EqualError(t, err, "stop at 1")
}

func TestSummaryAndString(t *testing.T) {
	tr := testTree()
	s := tr.Summary()
	assert.Equal(t, Summary{Leaves: 2, Splits: 1, UnstableSplits: 1, Alternatives: 1}, s)
	assert.Equal(t, Summary{Leaves: 4, Splits: 2, UnstableSplits: 2, Alternatives: 2}, s.Add(s))

	out := tr.String()
	assert.True(t, strings.HasPrefix(out, "[1]\n{ x < 5 (score 0.0000) }\n{ ~ y < 5 (score 1.0000, robustness 1) }\n|\n"))
	assert.Contains(t, out, "|__[10]\n|  { 1/2 => 0 }\n")
	assert.Contains(t, out, "|__[11]\n   { 1/2 => 0 }\n")
}
