package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/hedgecut"
	"github.com/pbanos/hedgecut/feature/yaml"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	strategyConfig
	dataInput     string
	metadataInput string
	output        string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow an ensemble from a set of data",
		Long:  `Grow an ensemble of trees from a set of data to predict its label and print the trees.`,
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
			trainingSet, err := readDataset(ctx, config.dataInput, md, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading training set: %v\n", err)
				os.Exit(3)
			}
			e, err := config.fit(ctx, trainingSet, md, logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			err = outputEnsemble(config.output, e)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage+" with data to grow the ensemble (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and the label available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the grown trees will be written (defaults to STDOUT)")
	config.addFlags(cmd)
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	return requireFlags(map[string]string{"metadata": gcc.metadataInput})
}

func outputEnsemble(path string, e *hedgecut.Ensemble) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file %s: %v", path, err)
		}
		defer f.Close()
		w = f
	}
	_, err := fmt.Fprint(w, e)
	if err != nil {
		return fmt.Errorf("writing ensemble: %v", err)
	}
	return nil
}
