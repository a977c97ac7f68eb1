package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRelay(reg)

	r.ObserveEnrichment("llama3", OutcomeStructured)
	r.ObserveEnrichment("llama3", OutcomeStructured)
	r.ObserveEnrichment("mistral", OutcomeBackendFailure)
	r.ObserveAppendFailure("postgres")
	r.SetBackendUp(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.enrichments.WithLabelValues("llama3", OutcomeStructured)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.enrichments.WithLabelValues("mistral", OutcomeBackendFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.appendFailures.WithLabelValues("postgres")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.backendUp))
}

func TestNilRelayIsNoop(t *testing.T) {
	var r *Relay
	assert.NotPanics(t, func() {
		r.ObserveEnrichment("llama3", OutcomeStructured)
		r.ObserveAppendFailure("file")
		r.ObserveReceived("structured")
		r.SetBackendUp(false)
	})
}

func TestMiddlewaresRecordRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()

	router := gin.New()
	router.Use(NewSummaryBuilder("http_latency_ms", "latency").Build(reg))
	router.Use(NewGaugeBuilder("http_req", "in flight").Build(reg))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["alert_llm_relay_http_latency_ms"])
	assert.True(t, names["alert_llm_relay_http_req_active_req"])
}
