package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcomes of a conversion request, besides the names of chomsky.ErrorKind.
const (
	outcomeOK         = "ok"
	outcomeBadRequest = "BadRequest"
	outcomeTooLarge   = "TooLarge"
	outcomeInternal   = "Internal"
)

// metrics are registered with a registry per server, so that servers (and
// tests) do not compete for the global default registry.
type metrics struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	productions prometheus.Histogram
	duration    prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "chomsky",
				Name:      "conversions_total",
				Help:      "Number of conversion requests, by outcome.",
			}, []string{"outcome"}),
		productions: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "chomsky",
				Name:      "cnf_productions",
				Help:      "Number of productions of converted grammars.",
				Buckets:   prometheus.ExponentialBuckets(4, 4, 8),
			}),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "chomsky",
				Name:      "conversion_duration_seconds",
				Help:      "Time spent converting grammars.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			}),
	}
	m.registry.MustRegister(
		m.conversions,
		m.productions,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
