package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	runResultSuccess = "success"
	runResultError   = "error"
)

//nolint:gochecknoglobals
var (
	snapshotRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_runs_total",
		Help: "Snapshot runs by terminal result.",
	}, []string{"result"})

	snapshotItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_items_total",
		Help: "Settled detail fetches by terminal record state.",
	}, []string{"state"})

	snapshotDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "snapshot_duration_seconds",
		Help:    "Wall time of successful snapshot runs.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10), //nolint:mnd
	})
)
