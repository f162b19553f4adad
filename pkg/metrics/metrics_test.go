package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSearch(t *testing.T) {
	m := New("test", prometheus.NewRegistry())

	m.Pricing.ObserveSearch("ok", 30, 2*time.Millisecond)
	m.Pricing.ObserveSearch("too_large", 0, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Pricing.Searches.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Pricing.Searches.WithLabelValues("too_large")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Pricing.Candidates))
}

func TestNewReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := New("test", reg)
	second := New("test", reg)

	first.HTTP.Requests.WithLabelValues("GET", "/health", "200").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.HTTP.Requests.WithLabelValues("GET", "/health", "200")))
}

func TestNilPricingIsNoop(t *testing.T) {
	var p *Pricing
	assert.NotPanics(t, func() { p.ObserveSearch("ok", 1, time.Millisecond) })
}
