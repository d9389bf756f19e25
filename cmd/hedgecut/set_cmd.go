package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

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

type setCmdConfig struct {
	*rootCmdConfig
	setInput      string
	metadataInput string
	setOutput     string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Convert sets of data",
		Long:  `Read the labeled rows of a set of data and dump them into another, possibly in a different format`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			logger := config.logger()
			ctx := context.Background()
			md, err := yaml.ReadMetadataFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			rows, err := readRows(ctx, config.setInput, md, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading input set: %v\n", err)
				os.Exit(3)
			}
			n, err := writeRows(ctx, config.setOutput, rows, md, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing output set: %v\n", err)
				os.Exit(4)
			}
			logger.Info("set dumped", "rows", n)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", inputFlagUsage+" with the input set (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and the label available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to an output CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL (postgresql://) or MongoDB (mongodb://) connection URL to dump the set to (defaults to STDOUT in CSV)")
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	return requireFlags(map[string]string{"metadata": scc.metadataInput})
}

/*
writeRows takes a context, an output string, a slice of rows, the
metadata describing them and a logger and dumps the rows into the
output, interpreted as readRows does with its input. It returns the
number of rows written.
*/
func writeRows(ctx context.Context, output string, rows []*dataset.Row, md *yaml.Metadata, logger *slog.Logger) (int, error) {
	switch {
	case strings.HasPrefix(output, "postgresql://"):
		logger.Debug("writing rows to PostgreSQL")
		adapter, err := pgadapter.New(output)
		if err != nil {
			return 0, err
		}
		defer adapter.Close()
		return sqldataset.Write(ctx, adapter, rows, md.Features, md.Label)
	case strings.HasPrefix(output, "mongodb://"):
		logger.Debug("writing rows to MongoDB")
		session, err := mgo.Dial(output)
		if err != nil {
			return 0, fmt.Errorf("connecting to mongodb: %v", err)
		}
		defer session.Close()
		mds, err := mongodataset.Open(ctx, session, md.Features, md.Label)
		if err != nil {
			return 0, err
		}
		return mds.Write(ctx, rows)
	case strings.HasSuffix(output, ".db"):
		logger.Debug("writing rows to SQLite3 file", "path", output)
		adapter, err := sqlite3adapter.New(output)
		if err != nil {
			return 0, err
		}
		defer adapter.Close()
		return sqldataset.Write(ctx, adapter, rows, md.Features, md.Label)
	}
	w := os.Stdout
	if output != "" {
		logger.Debug("writing rows to CSV file", "path", output)
		f, err := os.Create(output)
		if err != nil {
			return 0, fmt.Errorf("creating output file %s: %v", output, err)
		}
		defer f.Close()
		w = f
	} else {
		logger.Debug("writing rows to STDOUT")
	}
	err := csv.WriteRows(w, rows, md.Features, md.Label)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
