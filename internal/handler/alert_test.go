package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kube-rca/alert-llm/internal/metrics"
	"github.com/kube-rca/alert-llm/internal/model"
	"github.com/kube-rca/alert-llm/internal/service"
)

type stubGenerator string

func (s stubGenerator) Generate(context.Context, string, string) (string, error) {
	return string(s), nil
}

type stubSink struct {
	entries []model.LogEntry
}

func (s *stubSink) Name() string { return "stub" }

func (s *stubSink) Append(_ context.Context, entry model.LogEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubSink) Tail(_ context.Context, limit int) ([]model.LogEntry, error) {
	if limit > 0 && len(s.entries) > limit {
		return s.entries[len(s.entries)-limit:], nil
	}
	return s.entries, nil
}

type stubProber struct {
	res model.BackendStatusResponse
}

func (p stubProber) Current(context.Context) model.BackendStatusResponse {
	return p.res
}

func newTestRouter(t *testing.T, reply string) (*gin.Engine, *stubSink) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	sink := &stubSink{}
	svc := service.NewEnrichmentService(
		[]service.Backend{service.NewBackend("llama3", "llama3", stubGenerator(reply))},
		time.Second,
		time.Second,
		[]service.EntrySink{sink},
		metrics.NewRelay(reg),
	)
	router := NewRouter(RouterDeps{
		Alerts:   NewAlertHandler(svc),
		Status:   NewStatusHandler(stubProber{res: model.BackendStatusResponse{Status: service.StatusOllamaUnavailable, ModelsAvailable: []string{}}}),
		Entries:  NewEntriesHandler(sink),
		Registry: reg,
	})
	return router, sink
}

func postAlert(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

const testPayload = `{"receiver":"web.hook","status":"firing","alerts":[{"status":"active","labels":{"alertname":"NNMIHighCPU","severity":"warning"},"annotations":{"summary":"High CPU utilization detected in NNMi node","description":"CPU utilization on node labmuc-sysm-gnm-02 exceeded 85% for last 10 minutes."}}]}`

func TestAlertWebhookReturnsLogEntry(t *testing.T) {
	router, sink := newTestRouter(t, "```json\n{\"troubleshooting_steps\":[\"a\"],\"possible_root_causes\":[\"b\"],\"recommended_actions\":[\"c\"]}\n```")

	for _, path := range []string{"/alert", "/webhook/alertmanager"} {
		w := postAlert(router, path, testPayload)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(requestIDHeader))

		var body struct {
			ID           uuid.UUID                  `json:"id"`
			Alert        json.RawMessage            `json:"alert"`
			LLMResponses map[string]json.RawMessage `json:"llm_responses"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEqual(t, uuid.Nil, body.ID)
		assert.JSONEq(t, testPayload, string(body.Alert))
		assert.JSONEq(t, `{"troubleshooting_steps":["a"],"possible_root_causes":["b"],"recommended_actions":["c"]}`, string(body.LLMResponses["llama3"]))
	}
	assert.Len(t, sink.entries, 2)
}

func TestAlertWebhookProseReplyStill200(t *testing.T) {
	router, sink := newTestRouter(t, "Restart the node.")

	w := postAlert(router, "/alert", testPayload)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), model.ParseFailureMessage)
	assert.Len(t, sink.entries, 1)
}

func TestAlertWebhookMalformedPayload(t *testing.T) {
	router, sink := newTestRouter(t, "{}")

	for _, body := range []string{"", "not json", `{"alerts": [`} {
		w := postAlert(router, "/alert", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)

		var res model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Contains(t, res.Error, "invalid payload")
	}
	assert.Empty(t, sink.entries)
}

func TestListEntries(t *testing.T) {
	router, _ := newTestRouter(t, "{}")
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, postAlert(router, "/alert", testPayload).Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/entries?limit=2", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var res model.LogEntryListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "success", res.Status)
	assert.Len(t, res.Data, 2)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/entries?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, "{}")

	tests := []struct {
		path     string
		contains string
	}{
		{"/ping", `"pong"`},
		{"/", `"ok"`},
		{"/status", fmt.Sprintf("%q", service.StatusOllamaUnavailable)},
		{"/openapi.json", `"/alert"`},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, http.StatusOK, w.Code, tt.path)
		assert.Contains(t, w.Body.String(), tt.contains, tt.path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "{}")
	require.Equal(t, http.StatusOK, postAlert(router, "/alert", testPayload).Code)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `alert_llm_relay_enrichment_results_total{backend="llama3",outcome="structured"} 1`)
}
