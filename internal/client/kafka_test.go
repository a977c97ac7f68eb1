package client

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kube-rca/alert-llm/internal/model"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisherAppend(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "alert-llm-entries"}

	entry := model.LogEntry{
		ID:        uuid.New(),
		Timestamp: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
		Alert:     json.RawMessage(`{"status":"firing"}`),
		LLMResponses: map[string]model.EnrichmentResult{
			"llama3": model.FallbackResult("boom", ""),
		},
	}
	require.NoError(t, p.Append(context.Background(), entry))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, entry.ID.String(), string(w.msgs[0].Key))
	assert.Contains(t, string(w.msgs[0].Value), `"llama3":{"error":"boom","raw":""}`)
	assert.Equal(t, "kafka:alert-llm-entries", p.Name())
}

func TestKafkaPublisherAppendError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}, topic: "t"}
	err := p.Append(context.Background(), model.LogEntry{ID: uuid.New()})
	assert.ErrorContains(t, err, "broker down")
}
