package hedgecut

import (
	"context"
	"testing"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/feature"
	"github.com/pbanos/hedgecut/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func votingEnsemble(votes ...int) *Ensemble {
	trees := make([]*tree.Tree, 0, len(votes))
	for i, v := range votes {
		trees = append(trees, tree.New(&tree.Leaf{ID: tree.RootID, NumPositive: v, NumSamples: 1}, i, testLogger()))
	}
	return NewEnsemble(trees, testLogger())
}

func TestMajorityVote(t *testing.T) {
	r, err := dataset.NewRow(map[string]float64{"x": 1}, 1)
	require.NoError(t, err)
	cases := []struct {
		name     string
		votes    []int
		expected int
	}{
		{"two out of three", []int{1, 1, 0}, 1},
		{"one out of three", []int{1, 0, 0}, 0},
		{"tie", []int{1, 0, 1, 0}, 0},
		{"unanimous", []int{1, 1, 1, 1}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := votingEnsemble(tc.votes...).PredictOne(r)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestPredictPreservesOrder(t *testing.T) {
	x := feature.New("x")
	root := &tree.Split{
		ID:        tree.RootID,
		Criterion: feature.NewCriterion(x, 5),
		Left:      &tree.Leaf{ID: "10", NumPositive: 3, NumSamples: 3},
		Right:     &tree.Leaf{ID: "11", NumPositive: 0, NumSamples: 3},
	}
	e := NewEnsemble([]*tree.Tree{tree.New(root, 0, testLogger())}, testLogger())
	var samples []feature.Sample
	for _, v := range []float64{1, 9, 4, 5} {
		r, err := dataset.NewRow(map[string]float64{"x": v}, 0)
		require.NoError(t, err)
		samples = append(samples, r)
	}
	ps, err := e.Predict(samples)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1, 0}, ps)

	missing, err := dataset.NewRow(map[string]float64{"y": 1}, 0)
	require.NoError(t, err)
	_, err = e.Predict([]feature.Sample{samples[0], missing})
	assert.Error(t, err)
}

func TestEnsembleForgetMergesReports(t *testing.T) {
	r, err := dataset.NewRow(map[string]float64{"x": 1}, 1)
	require.NoError(t, err)
	e := votingEnsemble(1, 0, 1)
	report, err := e.Forget(r, 1)
	require.NoError(t, err)
	// the tree voting 0 never saw a positive row
	assert.Equal(t, 1, report.Underflows)
	for _, tr := range e.Trees() {
		l := tr.Root.(*tree.Leaf)
		assert.True(t, l.Valid())
	}
	assert.Equal(t, &tree.Leaf{ID: tree.RootID, NumPositive: 0, NumSamples: 0}, e.Trees()[0].Root)
	assert.Equal(t, &tree.Leaf{ID: tree.RootID, NumPositive: 0, NumSamples: 1}, e.Trees()[1].Root)

	_, err = e.Forget(r, 3)
	assert.Error(t, err)
}

func TestForgetTrainingRowsKeepsLeavesValid(t *testing.T) {
	training, _ := syntheticDatasets(t)
	e, err := Fit(context.Background(), training, training.Features(), syntheticStrategy())
	require.NoError(t, err)
	total := &tree.ForgetReport{}
	for _, s := range training.Samples()[:50] {
		report, err := e.Forget(s, s.Label())
		require.NoError(t, err)
		total.Merge(report)
	}
	assert.Equal(t, 0, total.Underflows)
	for _, tr := range e.Trees() {
		tr.Traverse(false, func(n tree.Node) error {
			if l, ok := n.(*tree.Leaf); ok {
				assert.True(t, l.Valid(), "leaf %s of tree %d", l.ID, tr.Index)
			}
			return nil
		})
	}
	assert.Greater(t, e.Summary().Leaves, len(e.Trees()))
}

func TestEnsembleForgetChecksEveryTreeFirst(t *testing.T) {
	e := unforgettableEnsemble()
	r, err := dataset.NewRow(map[string]float64{"x": 1}, 0)
	require.NoError(t, err)
	report, err := e.Forget(r, r.Label())
	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Equal(t, &tree.Leaf{ID: tree.RootID, NumPositive: 5, NumSamples: 10}, e.Trees()[0].Root)

	_, err = e.Forget(r, 2)
	assert.Error(t, err)

	r, err = dataset.NewRow(map[string]float64{"x": 1, "z": 7}, 0)
	require.NoError(t, err)
	report, err = e.Forget(r, r.Label())
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, &tree.Leaf{ID: tree.RootID, NumPositive: 5, NumSamples: 9}, e.Trees()[0].Root)
	assert.Equal(t, &tree.Leaf{ID: "11", NumPositive: 0, NumSamples: 4}, e.Trees()[1].Root.(*tree.Split).Right)
}
