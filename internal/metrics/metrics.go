
// Package metrics records lookup outcomes.
package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rae-verb-notes/internal/models"
)

// Recorder receives one observation per verb and per fetch.
type Recorder interface {
	ObserveLookup(r models.Result)
	ObserveFetch(source string, d time.Duration, err error)
}

// Noop discards observations.
type Noop struct{}

func (Noop) ObserveLookup(models.Result) {}
func (Noop) ObserveFetch(string, time.Duration, error) {}

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	lookups       *prom.CounterVec
	fetchDuration *prom.HistogramVec
	definitions   prom.Counter
}

// NewPrometheusRecorder constructs and registers metrics on reg, or on a
// fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		lookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "verbnotes",
			Name:      "lookups_total",
			Help:      "Verb lookups by final state and failure kind",
		}, []string{"state", "failure"}),
		fetchDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "verbnotes",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of dictionary requests",
			Buckets:   prom.DefBuckets,
		}, []string{"source", "result"}),
		definitions: prom.NewCounter(prom.CounterOpts{
			Namespace: "verbnotes",
			Name:      "definitions_found_total",
			Help:      "Notes written with a definition section",
		}),
	}
	reg.MustRegister(pr.lookups, pr.fetchDuration, pr.definitions)
	return pr
}

func (p *PrometheusRecorder) ObserveLookup(r models.Result) {
	if p == nil {
		return
	}
	p.lookups.WithLabelValues(string(r.State), string(r.Failure)).Inc()
	if r.State == models.StateWritten && r.Definition {
		p.definitions.Inc()
	}
}

func (p *PrometheusRecorder) ObserveFetch(source string, d time.Duration, err error) {
	if p == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.fetchDuration.WithLabelValues(source, result).Observe(d.Seconds())
}

// Handler serves the recorder's registry.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
