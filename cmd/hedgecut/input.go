package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pbanos/hedgecut"
	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/dataset/csv"
	"github.com/pbanos/hedgecut/dataset/mongodataset"
	"github.com/pbanos/hedgecut/dataset/sqldataset"
	"github.com/pbanos/hedgecut/dataset/sqldataset/pgadapter"
	"github.com/pbanos/hedgecut/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/hedgecut/feature/yaml"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

const inputFlagUsage = "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL (postgresql://) or MongoDB (mongodb://) connection URL"

/*
readRows takes a context, an input string, the metadata describing the
rows and a logger and returns the rows read from the input. The input
is interpreted as a PostgreSQL connection URL when prefixed with
postgresql://, a MongoDB one when prefixed with mongodb://, the path to
an SQLite3 file when suffixed with .db and the path to a CSV file
otherwise. An empty input reads CSV content from STDIN.
*/
func readRows(ctx context.Context, input string, md *yaml.Metadata, logger *slog.Logger) ([]*dataset.Row, error) {
	switch {
	case strings.HasPrefix(input, "postgresql://"):
		logger.Debug("reading rows from PostgreSQL")
		adapter, err := pgadapter.New(input)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqldataset.Read(ctx, adapter, md.Features, md.Label)
	case strings.HasPrefix(input, "mongodb://"):
		logger.Debug("reading rows from MongoDB")
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, fmt.Errorf("connecting to mongodb: %v", err)
		}
		defer session.Close()
		mds, err := mongodataset.Open(ctx, session, md.Features, md.Label)
		if err != nil {
			return nil, err
		}
		return mds.Rows(ctx)
	case strings.HasSuffix(input, ".db"):
		logger.Debug("reading rows from SQLite3 file", "path", input)
		adapter, err := sqlite3adapter.New(input)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqldataset.Read(ctx, adapter, md.Features, md.Label)
	default:
		if input == "" {
			logger.Debug("reading rows from STDIN")
		} else {
			logger.Debug("reading rows from CSV file", "path", input)
		}
		return csv.ReadRowsFromFilePath(input, md.Features, md.Label)
	}
}

/*
readDataset works like readRows but returns a dataset with the rows and
the features in the metadata.
*/
func readDataset(ctx context.Context, input string, md *yaml.Metadata, logger *slog.Logger) (*dataset.Dataset, error) {
	rows, err := readRows(ctx, input, md, logger)
	if err != nil {
		return nil, err
	}
	return dataset.FromRows(rows, md.Features)
}

type strategyConfig struct {
	hedgecut.Strategy
}

func (sc *strategyConfig) addFlags(cmd *cobra.Command) {
	sc.Strategy = *hedgecut.DefaultStrategy()
	cmd.PersistentFlags().IntVar(&(sc.NumTrees), "trees", hedgecut.DefaultNumTrees, "number of trees in the ensemble")
	cmd.PersistentFlags().IntVar(&(sc.AttributesPerSplit), "attributes-per-split", 0, "number of features drawn as candidates for each split (defaults to 0: rounded square root of the number of features)")
	cmd.PersistentFlags().IntVar(&(sc.MinLeafSize), "min-leaf-size", hedgecut.DefaultMinLeafSize, "number of samples at or below which a node becomes a leaf")
	cmd.PersistentFlags().IntVar(&(sc.MaxTries), "max-tries", hedgecut.DefaultMaxTries, "number of times candidates are resampled for a node before settling")
	cmd.PersistentFlags().IntVar(&(sc.TargetRobustness), "target-robustness", 0, "number of removals a split must withstand to be robust (defaults to 0: max(1, samples/1000))")
	cmd.PersistentFlags().Int64Var(&(sc.Seed), "seed", 0, "seed for the random sources of the trees")
	cmd.PersistentFlags().IntVar(&(sc.Workers), "workers", 0, "maximum number of trees grown concurrently (defaults to 0: GOMAXPROCS)")
}

/*
ensemble takes a context, an input string, the metadata and a logger,
reads a training set from the input and grows an ensemble on it with the
configured strategy, returning both.
*/
func (sc *strategyConfig) ensemble(ctx context.Context, input string, md *yaml.Metadata, logger *slog.Logger) (*hedgecut.Ensemble, *dataset.Dataset, error) {
	trainingSet, err := readDataset(ctx, input, md, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("reading training set: %v", err)
	}
	e, err := sc.fit(ctx, trainingSet, md, logger)
	if err != nil {
		return nil, nil, err
	}
	return e, trainingSet, nil
}

/*
fit takes a context, a training dataset, the metadata and a logger and
fits an ensemble on the dataset with the configured strategy.
*/
func (sc *strategyConfig) fit(ctx context.Context, ds *dataset.Dataset, md *yaml.Metadata, logger *slog.Logger) (*hedgecut.Ensemble, error) {
	s := sc.Strategy
	s.Logger = logger
	logger.Info("growing ensemble", "samples", ds.Count(), "features", len(md.Features), "label", md.Label, "trees", s.NumTrees)
	e, err := hedgecut.Fit(ctx, ds, md.Features, &s)
	if err != nil {
		return nil, fmt.Errorf("growing the ensemble: %v", err)
	}
	logger.Info("ensemble grown", "summary", e.Summary())
	return e, nil
}

func requireFlags(flags map[string]string) error {
	for name, value := range flags {
		if value == "" {
			return fmt.Errorf("required %s flag was not set", name)
		}
	}
	return nil
}
