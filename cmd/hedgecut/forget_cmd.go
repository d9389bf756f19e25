package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/hedgecut/feature/yaml"
	"github.com/pbanos/hedgecut/tree"
	"github.com/spf13/cobra"
)

type forgetCmdConfig struct {
	*rootCmdConfig
	strategyConfig
	dataInput     string
	deletionInput string
	testingInput  string
	metadataInput string
	output        string
}

func forgetCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &forgetCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "forget",
		Short: "Make an ensemble forget rows of its training set",
		Long: `Grow an ensemble from a training set, make it forget the rows of a deletion set
and report the anomalies found and the accuracy before and after forgetting`,
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
			deletions, err := readRows(ctx, config.deletionInput, md, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading deletion set: %v\n", err)
				os.Exit(3)
			}
			e, testingSet, err := config.ensemble(ctx, config.dataInput, md, logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			if config.testingInput != "" {
				testingSet, err = readDataset(ctx, config.testingInput, md, logger)
				if err != nil {
					fmt.Fprintf(os.Stderr, "reading testing set: %v\n", err)
					os.Exit(3)
				}
			}
			before, err := e.Test(testingSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing ensemble: %v\n", err)
				os.Exit(5)
			}
			report := &tree.ForgetReport{}
			for i, r := range deletions {
				rr, err := e.Forget(r, r.Label())
				report.Merge(rr)
				if err != nil {
					fmt.Fprintf(os.Stderr, "forgetting row %d: %v\n", i, err)
					os.Exit(6)
				}
			}
			logger.Info("rows forgotten", "rows", len(deletions), "summary", e.Summary())
			after, err := e.Test(testingSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing ensemble: %v\n", err)
				os.Exit(5)
			}
			for _, r := range report.Reorganizations {
				fmt.Printf("reorganization required: %v\n", r)
			}
			fmt.Printf("%d rows forgotten: %v\n", len(deletions), report)
			fmt.Printf("%f accuracy before forgetting, %f after\n", before, after)
			if config.output != "" {
				err = outputEnsemble(config.output, e)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(7)
				}
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage+" with data to grow the ensemble (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.deletionInput), "deletions", "d", "", inputFlagUsage+" with the rows to forget (required)")
	cmd.PersistentFlags().StringVarP(&(config.testingInput), "testing", "t", "", inputFlagUsage+" with data to test the ensemble against (defaults to the training input)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and the label available on the inputs (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the trees will be written once the rows are forgotten")
	config.addFlags(cmd)
	return cmd
}

func (fcc *forgetCmdConfig) Validate() error {
	return requireFlags(map[string]string{"metadata": fcc.metadataInput, "deletions": fcc.deletionInput})
}
