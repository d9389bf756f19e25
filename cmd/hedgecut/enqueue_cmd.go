package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pbanos/hedgecut"
	"github.com/pbanos/hedgecut/feature/yaml"
	"github.com/pbanos/hedgecut/queue"
	"github.com/spf13/cobra"
)

type enqueueCmdConfig struct {
	*rootCmdConfig
	queueConfig
	deletionInput string
	metadataInput string
	wait          bool
	waitInterval  time.Duration
}

func enqueueCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &enqueueCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Push requests to forget rows to a deletion queue",
		Long:  `Push a request to forget each row of a deletion set to a redis backed deletion queue for workers to apply`,
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
			q, err := config.queue()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			defer q.Stop(ctx)
			tasks, err := hedgecut.Enqueue(ctx, q, deletions)
			logger.Info("forget requests enqueued", "count", len(tasks))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			for _, t := range tasks {
				fmt.Println(t.ID)
			}
			if config.wait {
				logger.Info("waiting for forget requests to be processed")
				err = queue.WaitFor(ctx, q, config.waitInterval)
				if err != nil {
					fmt.Fprintf(os.Stderr, "waiting for forget requests: %v\n", err)
					os.Exit(6)
				}
				logger.Info("forget requests processed")
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.deletionInput), "deletions", "d", "", inputFlagUsage+" with the rows to forget (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and the label available on the input (required)")
	cmd.PersistentFlags().BoolVarP(&(config.wait), "wait", "w", false, "wait until every request on the queue has been processed")
	cmd.PersistentFlags().DurationVar(&(config.waitInterval), "wait-interval", time.Second, "time between checks of the queue while waiting")
	config.queueConfig.addFlags(cmd)
	return cmd
}

func (ecc *enqueueCmdConfig) Validate() error {
	return requireFlags(map[string]string{"metadata": ecc.metadataInput})
}
