// README: Prometheus metrics for the dispatch loop and HTTP surface.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ridedispatch", Name: "matches_total",
		Help: "Requests transitioned pending to matched",
	})
	UnservicedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ridedispatch", Name: "unserviced_matches_total",
		Help: "Matching attempts abandoned because no driver was claimable",
	})
	CompletionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ridedispatch", Name: "completions_total",
		Help: "Requests transitioned matched to completed",
	})
	WorkerErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ridedispatch", Name: "worker_errors_total",
		Help: "Rolled-back iterations per worker loop",
	}, []string{"worker"})
	TripsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ridedispatch", Name: "trips_in_flight",
		Help: "Trips currently between claim and completion",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ridedispatch", Name: "http_requests_total",
		Help: "HTTP requests handled",
	}, []string{"method", "path", "status"})
)
