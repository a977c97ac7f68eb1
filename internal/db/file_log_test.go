package db

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kube-rca/alert-llm/internal/config"
	"github.com/kube-rca/alert-llm/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(alertname string) model.LogEntry {
	return model.LogEntry{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Alert:     json.RawMessage(fmt.Sprintf(`{"alerts":[{"labels":{"alertname":%q}}]}`, alertname)),
		LLMResponses: map[string]model.EnrichmentResult{
			"llama3": model.StructuredResult(json.RawMessage(`{"troubleshooting_steps":["a"],"possible_root_causes":["b"],"recommended_actions":["c"]}`)),
			"mistral": model.FallbackResult(model.ParseFailureMessage, "prose"),
		},
	}
}

func TestFileLogAppendAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts_log.jsonl")
	fl, err := OpenFileLog(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fl.Close() })

	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, fl.Append(ctx, newEntry(name)))
	}

	all, err := fl.Tail(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	last, err := fl.Tail(ctx, 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "B", alertNameOf(last[0].Alert))
	assert.Equal(t, "C", alertNameOf(last[1].Alert))

	assert.True(t, last[1].LLMResponses["llama3"].IsStructured())
	assert.Equal(t, "prose", last[1].LLMResponses["mistral"].Raw)
}

func TestFileLogAppendsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts_log.jsonl")
	ctx := context.Background()

	first, err := OpenFileLog(path)
	require.NoError(t, err)
	require.NoError(t, first.Append(ctx, newEntry("A")))
	require.NoError(t, first.Close())

	second, err := OpenFileLog(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	require.NoError(t, second.Append(ctx, newEntry("B")))

	entries, err := second.Tail(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFileLogConcurrentAppendKeepsRecordsWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts_log.jsonl")
	fl, err := OpenFileLog(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fl.Close() })

	const writers, perWriter = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				assert.NoError(t, fl.Append(context.Background(), newEntry(fmt.Sprintf("w%d-%d", w, i))))
			}
		}(w)
	}
	wg.Wait()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	lines := 0
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		lines++
		assert.True(t, json.Valid(sc.Bytes()), "line %d is not valid JSON", lines)
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, writers*perWriter, lines)
}

func TestBuildPostgresURL(t *testing.T) {
	got, err := buildPostgresURL(configFor("relay", "secret", "alerts"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://relay:secret@db:5433/alerts?sslmode=disable", got)

	_, err = buildPostgresURL(configFor("", "", ""))
	assert.Error(t, err)
}

func configFor(user, password, database string) config.PostgresConfig {
	return config.PostgresConfig{
		Host:     "db",
		Port:     "5433",
		User:     user,
		Password: password,
		Database: database,
	}
}

func TestAlertNameOf(t *testing.T) {
	assert.Equal(t, "NNMINodeDown", alertNameOf(json.RawMessage(`{"alerts":[{"labels":{"alertname":"NNMINodeDown"}}]}`)))
	assert.Equal(t, "", alertNameOf(json.RawMessage(`{"foo":"bar"}`)))
	assert.Equal(t, "", alertNameOf(json.RawMessage(`[1,2,3]`)))
}

func TestLogEntryQueries(t *testing.T) {
	assert.Contains(t, logEntryInsertQuery(), "INSERT INTO alert_log_entries")
	assert.NotContains(t, logEntryInsertQuery(), "ON CONFLICT")
	assert.Len(t, logEntrySchemaQueries(), 3)
}
