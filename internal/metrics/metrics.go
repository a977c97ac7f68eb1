// Package metrics holds the relay's Prometheus collectors and gin middlewares.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "alert_llm"
	subsystem = "relay"
)

// Outcome labels for enrichment results.
const (
	OutcomeStructured     = "structured"
	OutcomeParseFailure   = "parse_failure"
	OutcomeBackendFailure = "backend_failure"
)

// Relay groups the collectors updated by the enrichment pipeline.
// A nil *Relay is valid and records nothing.
type Relay struct {
	enrichments    *prometheus.CounterVec
	appendFailures *prometheus.CounterVec
	backendUp      prometheus.Gauge
	received       *prometheus.CounterVec
}

func NewRelay(reg prometheus.Registerer) *Relay {
	r := &Relay{
		enrichments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "enrichment_results_total",
			Help:      "Enrichment results per backend and outcome.",
		}, []string{"backend", "outcome"}),
		appendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "log_append_failures_total",
			Help:      "Failed durable log appends per sink.",
		}, []string{"sink"}),
		backendUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "backend_up",
			Help:      "1 when the last Ollama probe succeeded.",
		}),
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "alerts_received_total",
			Help:      "Received alert payloads by extraction mode.",
		}, []string{"mode"}),
	}
	reg.MustRegister(r.enrichments, r.appendFailures, r.backendUp, r.received)
	return r
}

func (r *Relay) ObserveEnrichment(backend, outcome string) {
	if r == nil {
		return
	}
	r.enrichments.WithLabelValues(backend, outcome).Inc()
}

func (r *Relay) ObserveAppendFailure(sink string) {
	if r == nil {
		return
	}
	r.appendFailures.WithLabelValues(sink).Inc()
}

func (r *Relay) ObserveReceived(mode string) {
	if r == nil {
		return
	}
	r.received.WithLabelValues(mode).Inc()
}

func (r *Relay) SetBackendUp(up bool) {
	if r == nil {
		return
	}
	if up {
		r.backendUp.Set(1)
	} else {
		r.backendUp.Set(0)
	}
}

// SummaryBuilder builds a middleware observing request latency.
type SummaryBuilder struct {
	name string
	help string
}

func NewSummaryBuilder(name, help string) *SummaryBuilder {
	return &SummaryBuilder{name: name, help: help}
}

func (b *SummaryBuilder) Build(reg prometheus.Registerer) gin.HandlerFunc {
	summaryVec := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      b.name,
		Help:      b.help,
		Objectives: map[float64]float64{
			0.5:  0.01,
			0.9:  0.005,
			0.99: 0.001,
		},
	}, []string{"pattern", "method", "status"})
	reg.MustRegister(summaryVec)
	return func(ctx *gin.Context) {
		start := time.Now()
		defer func() {
			pattern := ctx.FullPath()
			if pattern == "" {
				pattern = "unmatched"
			}
			summaryVec.WithLabelValues(pattern, ctx.Request.Method, strconv.Itoa(ctx.Writer.Status())).
				Observe(float64(time.Since(start).Milliseconds()))
		}()
		ctx.Next()
	}
}

// GaugeBuilder builds a middleware tracking in-flight requests.
type GaugeBuilder struct {
	name string
	help string
}

func NewGaugeBuilder(name, help string) *GaugeBuilder {
	return &GaugeBuilder{name: name, help: help}
}

func (b *GaugeBuilder) Build(reg prometheus.Registerer) gin.HandlerFunc {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      b.name + "_active_req",
		Help:      b.help,
	})
	reg.MustRegister(gauge)
	return func(ctx *gin.Context) {
		gauge.Inc()
		defer gauge.Dec()
		ctx.Next()
	}
}
