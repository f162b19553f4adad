// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTP groups request collectors.
type HTTP struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// Pricing groups best-price search collectors.
type Pricing struct {
	Searches   *prometheus.CounterVec
	Candidates prometheus.Histogram
	Duration   prometheus.Histogram
}

type Metrics struct {
	HTTP    *HTTP
	Pricing *Pricing
}

// New builds and registers every collector on reg. A nil reg uses the
// default registerer.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		HTTP: &HTTP{
			Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests handled by the server.",
			}, []string{"method", "route", "status"}),
			Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_ms",
				Help:      "HTTP request latency distribution in milliseconds.",
				Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
			}, []string{"method", "route"}),
			InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			}),
		},
		Pricing: &Pricing{
			Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pricing_searches_total",
				Help:      "Best-price searches by outcome.",
			}, []string{"result"}),
			Candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pricing_candidates",
				Help:      "Discount combinations generated per search.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			}),
			Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pricing_search_duration_ms",
				Help:      "Best-price search latency in milliseconds.",
				Buckets:   []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000},
			}),
		},
	}

	m.HTTP.Requests = register(reg, m.HTTP.Requests)
	m.HTTP.Duration = register(reg, m.HTTP.Duration)
	m.HTTP.InFlight = register(reg, m.HTTP.InFlight)
	m.Pricing.Searches = register(reg, m.Pricing.Searches)
	m.Pricing.Candidates = register(reg, m.Pricing.Candidates)
	m.Pricing.Duration = register(reg, m.Pricing.Duration)
	return m
}

// ObserveSearch records one pricing search. A nil receiver is a no-op.
func (p *Pricing) ObserveSearch(result string, candidates int, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.Searches.WithLabelValues(result).Inc()
	p.Candidates.Observe(float64(candidates))
	p.Duration.Observe(Millis(elapsed))
}

func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// register reuses an already registered collector of the same shape.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}
