package hedgecut

import (
	"context"
	"testing"
	"time"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/feature"
	"github.com/pbanos/hedgecut/queue"
	"github.com/pbanos/hedgecut/split"
	"github.com/pbanos/hedgecut/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWork(t *testing.T) {
	e := votingEnsemble(3, 3, 3)
	for _, tr := range e.Trees() {
		tr.Root.(*tree.Leaf).NumSamples = 4
	}
	var rows []*dataset.Row
	for _, label := range []int{1, 1, 0} {
		r, err := dataset.NewRow(map[string]float64{"x": 1}, label)
		require.NoError(t, err)
		rows = append(rows, r)
	}
	q := queue.New()
	ctx := context.Background()
	tasks, err := Enqueue(ctx, q, rows)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	var reported []string
	err = Work(ctx, e, q, time.Millisecond, false, func(task *queue.Task, r *tree.ForgetReport, err error) {
		assert.NoError(t, err)
		assert.True(t, r.Clean())
		reported = append(reported, task.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID}, reported)

	p, r, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, p+r)
	for _, tr := range e.Trees() {
		assert.Equal(t, &tree.Leaf{ID: tree.RootID, NumPositive: 1, NumSamples: 1}, tr.Root)
	}
}

func TestWorkFollowStopsOnCancel(t *testing.T) {
	e := votingEnsemble(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := Work(ctx, e, queue.New(), time.Millisecond, true, nil)
	assert.Equal(t, context.DeadlineExceeded, err)
}

// unforgettableEnsemble returns an ensemble of a single leaf tree and a
// tree split on z.
func unforgettableEnsemble() *Ensemble {
	z := feature.NewCriterion(feature.New("z"), 5)
	root := &tree.Split{
		ID:        tree.RootID,
		Criterion: z,
		Left:      &tree.Leaf{ID: "10", NumPositive: 5, NumSamples: 5},
		Right:     &tree.Leaf{ID: "11", NumPositive: 0, NumSamples: 5},
		Stats:     split.Statistics{Criterion: z, NumPlusLeft: 5, NumMinusRight: 5},
	}
	return NewEnsemble([]*tree.Tree{
		tree.New(&tree.Leaf{ID: tree.RootID, NumPositive: 5, NumSamples: 10}, 0, testLogger()),
		tree.New(root, 1, testLogger()),
	}, testLogger())
}

func TestWorkCompletesRejectedTasks(t *testing.T) {
	e := unforgettableEnsemble()
	r, err := dataset.NewRow(map[string]float64{"x": 1}, 1)
	require.NoError(t, err)
	q := queue.New()
	ctx := context.Background()
	tasks, err := Enqueue(ctx, q, []*dataset.Row{r})
	require.NoError(t, err)

	var rejected []string
	for i := 0; i < 3; i++ {
		err = Work(ctx, e, q, time.Millisecond, false, func(task *queue.Task, r *tree.ForgetReport, err error) {
			assert.Nil(t, r)
			assert.Error(t, err)
			rejected = append(rejected, task.ID)
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{tasks[0].ID}, rejected)
	p, running, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, p)
	assert.Equal(t, 0, running)
	assert.Equal(t, &tree.Leaf{ID: tree.RootID, NumPositive: 5, NumSamples: 10}, e.Trees()[0].Root)
	assert.Equal(t, unforgettableEnsemble().Trees()[1].Root, e.Trees()[1].Root)
}
