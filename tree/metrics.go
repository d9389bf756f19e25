package tree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	forgetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hedgecut_tree_forgets_total",
		Help: "Total number of samples forgotten by a tree",
	})
	invalidatedAlternativesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hedgecut_invalidated_alternatives_total",
		Help: "Total number of alternative splits removed after their counts went negative",
	})
	reorganizationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hedgecut_reorganizations_required_total",
		Help: "Total number of times an alternative split outscored the split in use after a forget",
	})
	underflowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hedgecut_count_underflows_total",
		Help: "Total number of refused decrements that would have left node counts negative",
	})
)
