package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kube-rca/alert-llm/internal/model"
)

// EnsureLogEntrySchema - alert_log_entries 테이블 생성
func (db *Postgres) EnsureLogEntrySchema(ctx context.Context) error {
	for _, query := range logEntrySchemaQueries() {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func logEntrySchemaQueries() []string {
	return []string{
		`
		CREATE TABLE IF NOT EXISTS alert_log_entries (
			entry_id UUID PRIMARY KEY,
			received_at TIMESTAMPTZ NOT NULL,
			alertname TEXT NOT NULL DEFAULT '',
			alert JSONB NOT NULL,
			llm_responses JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS alert_log_entries_received_at_idx ON alert_log_entries(received_at DESC)`,
		`CREATE INDEX IF NOT EXISTS alert_log_entries_alertname_idx ON alert_log_entries(alertname) WHERE alertname != ''`,
	}
}

func logEntryInsertQuery() string {
	return `
		INSERT INTO alert_log_entries (entry_id, received_at, alertname, alert, llm_responses)
		VALUES ($1, $2, $3, $4, $5)
	`
}

func (db *Postgres) Name() string {
	return "postgres"
}

// Append - LogEntry 1건 INSERT (append-only, UPDATE 없음)
func (db *Postgres) Append(ctx context.Context, entry model.LogEntry) error {
	responses, err := json.Marshal(entry.LLMResponses)
	if err != nil {
		return fmt.Errorf("failed to marshal llm responses: %w", err)
	}
	alert := entry.Alert
	if len(alert) == 0 {
		alert = json.RawMessage("null")
	}

	_, err = db.Pool.Exec(ctx, logEntryInsertQuery(),
		entry.ID,
		entry.Timestamp,
		alertNameOf(alert),
		[]byte(alert),
		responses,
	)
	if err != nil {
		return fmt.Errorf("failed to insert log entry: %w", err)
	}
	return nil
}

// alertNameOf - 페이로드에서 alerts[0].labels.alertname만 뽑아 인덱스 컬럼에 저장
func alertNameOf(alert json.RawMessage) string {
	var payload struct {
		Alerts []struct {
			Labels map[string]string `json:"labels"`
		} `json:"alerts"`
	}
	if err := json.Unmarshal(alert, &payload); err != nil || len(payload.Alerts) == 0 {
		return ""
	}
	return payload.Alerts[0].Labels["alertname"]
}
