package sqlite3adapter

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/dataset/sqldataset"
	"github.com/pbanos/hedgecut/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertStmt(t *testing.T) {
	assert.Equal(t, `INSERT INTO samples ("x", "y", "label") VALUES (?, ?, ?), (?, ?, ?)`, insertStmt([]string{"x", "y"}, "label", 2))
}

func TestColumnName(t *testing.T) {
	a := &adapter{}
	c, err := a.ColumnName("age")
	require.NoError(t, err)
	assert.Equal(t, "age", c)
	for _, name := range []string{"id", "", `a"b`} {
		_, err = a.ColumnName(name)
		assert.Error(t, err, name)
	}
}

func TestWriteRead(t *testing.T) {
	a, err := New(filepath.Join(t.TempDir(), "samples.db"))
	if err != nil {
		t.Skipf("sqlite3 unavailable: %v", err)
	}
	defer a.Close()
	ctx := context.Background()
	features := []*feature.Feature{feature.New("x"), feature.New("y")}
	var rows []*dataset.Row
	for i := 0; i < 25; i++ {
		values := map[string]float64{"x": float64(i) / 2}
		if i%3 != 0 {
			values["y"] = float64(-i)
		}
		r, err := dataset.NewRow(values, i%2)
		require.NoError(t, err)
		rows = append(rows, r)
	}
	n, err := sqldataset.Write(ctx, a, rows, features, "label")
	require.NoError(t, err)
	assert.Equal(t, 25, n)
	count, err := a.CountSamples(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, count)

	read, err := sqldataset.Read(ctx, a, features, "label")
	require.NoError(t, err)
	assert.Equal(t, rows, read)

	var firsts []string
	err = sqldataset.ReadByRow(ctx, a, features[:1], "label", func(i int, r *dataset.Row) (bool, error) {
		firsts = append(firsts, fmt.Sprint(r))
		return i < 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"{x:0 label:0}", "{x:0.5 label:1}"}, firsts)
}
