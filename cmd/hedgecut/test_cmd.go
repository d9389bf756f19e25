package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/hedgecut/feature/yaml"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	strategyConfig
	dataInput     string
	testingInput  string
	metadataInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of an ensemble",
		Long:  `Grow an ensemble from a training set and test its accuracy against a testing set`,
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
			testingSet, err := readDataset(ctx, config.testingInput, md, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading testing set: %v\n", err)
				os.Exit(3)
			}
			e, _, err := config.ensemble(ctx, config.dataInput, md, logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			logger.Info("testing ensemble", "samples", testingSet.Count())
			accuracy, err := e.Test(testingSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing ensemble: %v\n", err)
				os.Exit(5)
			}
			fmt.Printf("%f accuracy on %d samples\n", accuracy, testingSet.Count())
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage+" with data to grow the ensemble (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.testingInput), "testing", "t", "", inputFlagUsage+" with data to test the ensemble against (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and the label available on the inputs (required)")
	config.addFlags(cmd)
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	return requireFlags(map[string]string{"metadata": tcc.metadataInput, "testing": tcc.testingInput})
}
