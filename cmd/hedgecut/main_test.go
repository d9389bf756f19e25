package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/hedgecut/feature"
	"github.com/pbanos/hedgecut/feature/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	var names []string
	for _, c := range cliParser().Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"version", "set", "grow", "test", "forget", "enqueue", "work"}, names)
}

func TestReadCSVDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,label\n1,0\n2,1\n3,1\n"), 0o600))
	md := &yaml.Metadata{Features: []*feature.Feature{feature.New("x")}, Label: "label"}
	ds, err := readDataset(context.Background(), path, md, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Count())
	pos, neg := ds.LabelCounts()
	assert.Equal(t, 3, pos+neg)
}

func TestRequireFlags(t *testing.T) {
	assert.NoError(t, requireFlags(map[string]string{"metadata": "md.yml"}))
	assert.EqualError(t, requireFlags(map[string]string{"metadata": ""}), "required metadata flag was not set")
}

func TestWriteRowsConvertsSets(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "train.csv")
	require.NoError(t, os.WriteFile(input, []byte("x,label\n1,0\n2.5,1\n"), 0o600))
	md := &yaml.Metadata{Features: []*feature.Feature{feature.New("x")}, Label: "label"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	rows, err := readRows(ctx, input, md, logger)
	require.NoError(t, err)

	output := filepath.Join(dir, "copy.csv")
	n, err := writeRows(ctx, output, rows, md, logger)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "x,label\n1,0\n2.5,1\n", string(content))

	copied, err := readRows(ctx, output, md, logger)
	require.NoError(t, err)
	assert.Equal(t, rows, copied)
}
