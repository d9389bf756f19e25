package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pbanos/hedgecut"
	"github.com/pbanos/hedgecut/feature/yaml"
	"github.com/pbanos/hedgecut/queue"
	"github.com/pbanos/hedgecut/tree"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

type workCmdConfig struct {
	*rootCmdConfig
	strategyConfig
	queueConfig
	dataInput       string
	metadataInput   string
	metricsAddr     string
	emptyQueueSleep time.Duration
	follow          bool
}

func workCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &workCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Apply the forget requests of a deletion queue",
		Long: `Grow an ensemble from a training set and make it forget the rows requested on a redis backed
deletion queue, serving Prometheus metrics over HTTP while doing so`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			logger := config.logger()
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			md, err := yaml.ReadMetadataFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			var server *http.Server
			if config.metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				server = &http.Server{Addr: config.metricsAddr, Handler: mux}
				go func() {
					if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("serving metrics", "error", err)
					}
				}()
				logger.Info("serving metrics", "addr", config.metricsAddr)
			}
			e, _, err := config.ensemble(ctx, config.dataInput, md, logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			q, err := config.queue()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			report := func(t *queue.Task, r *tree.ForgetReport, err error) {
				if err != nil {
					logger.Error("row not forgotten", "task", t.ID, "error", err)
					return
				}
				logger.Info("row forgotten", "task", t.ID, "report", r)
				for _, ro := range r.Reorganizations {
					logger.Warn("reorganization required", "task", t.ID, "reorganization", ro)
				}
			}
			err = hedgecut.Work(ctx, e, q, config.emptyQueueSleep, config.follow, report)
			q.Stop(context.Background())
			if server != nil {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				server.Shutdown(sctx)
				cancel()
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintf(os.Stderr, "working on the deletion queue: %v\n", err)
				os.Exit(6)
			}
			logger.Info("done", "summary", e.Summary())
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage+" with data to grow the ensemble (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and the label available on the input (required)")
	cmd.PersistentFlags().StringVar(&(config.metricsAddr), "metrics-addr", ":9090", "address to serve Prometheus metrics on (empty disables it)")
	cmd.PersistentFlags().DurationVar(&(config.emptyQueueSleep), "empty-queue-sleep", time.Second, "time to wait before pulling again from an empty queue")
	cmd.PersistentFlags().BoolVarP(&(config.follow), "follow", "f", false, "keep waiting for forget requests once the queue is empty")
	config.strategyConfig.addFlags(cmd)
	config.queueConfig.addFlags(cmd)
	return cmd
}

func (wcc *workCmdConfig) Validate() error {
	return requireFlags(map[string]string{"metadata": wcc.metadataInput})
}
