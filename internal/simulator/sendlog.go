package simulator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kube-rca/alert-llm/internal/model"
)

// SendLog - 전송을 시도한 웹훅 목록 (성공 여부와 무관하게 기록)
// 여러 sender가 동시에 Append, 순서는 보장하지 않음
type SendLog struct {
	mu        sync.Mutex
	envelopes []model.AlertmanagerWebhook
}

func NewSendLog() *SendLog {
	return &SendLog{}
}

func (l *SendLog) Append(env model.AlertmanagerWebhook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.envelopes = append(l.envelopes, env)
}

func (l *SendLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.envelopes)
}

// Snapshot - 현재까지 기록된 목록의 복사본
func (l *SendLog) Snapshot() []model.AlertmanagerWebhook {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.AlertmanagerWebhook, len(l.envelopes))
	copy(out, l.envelopes)
	return out
}

// Export - JSON 배열 하나로 저장, 임시 파일에 쓴 뒤 rename
func (l *SendLog) Export(path string) error {
	data, err := json.MarshalIndent(l.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal send log: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write send log: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync send log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close send log: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename send log: %w", err)
	}
	return nil
}
