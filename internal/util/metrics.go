package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BootstrapEntitiesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bootstrap_entities_total",
		Help: "Number of reference entities loaded into the pool at startup",
	}, []string{"entity"})

	EventsBuiltTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "events_built_total",
		Help: "Total number of events constructed per stream",
	}, []string{"stream"})

	EventsDeliveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "events_delivered_total",
		Help: "Total number of events accepted by the sink per stream",
	}, []string{"stream"})

	EventsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "events_dropped_total",
		Help: "Total number of events dropped per stream",
	}, []string{"stream", "reason"})

	FiringsSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firings_skipped_total",
		Help: "Due firings skipped because the stream's previous delivery was still in flight",
	}, []string{"stream"})

	DeliveryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "delivery_latency_seconds",
		Help:    "Latency of sink publish calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"stream"})
)
