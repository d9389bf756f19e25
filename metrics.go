package hedgecut

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	treesGrownTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hedgecut_trees_grown_total",
		Help: "Total number of trees grown",
	})
	leavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hedgecut_leaves_grown_total",
		Help: "Total number of leaves grown, alternate subtrees included",
	})
	splitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hedgecut_splits_grown_total",
		Help: "Total number of splits grown, alternate subtrees included, by stability",
	}, []string{"stability"})
	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hedgecut_split_retries_total",
		Help: "Total number of times split candidates were resampled for a node",
	})
	robustnessRounds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hedgecut_robustness_rounds",
		Help:    "Removal rounds executed when checking the robustness of a split against a competitor",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
	forgetRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hedgecut_forget_requests_total",
		Help: "Total number of forget requests processed by workers, by outcome",
	}, []string{"outcome"})
)
