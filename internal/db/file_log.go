// JSONL 형식의 append-only 로그 파일 (Relay의 기본 저장소)
//
// 한 줄에 LogEntry JSON 1개, 쓰기는 mutex로 직렬화하고 레코드 1개당 Write 1회

package db

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/kube-rca/alert-llm/internal/model"
)

const maxLineSize = 16 * 1024 * 1024

// FileLog - LogEntry JSONL 파일
type FileLog struct {
	path string
	lock sync.Mutex
	file *os.File
}

// OpenFileLog - 파일을 append 모드로 열고, 없으면 생성
func OpenFileLog(path string) (*FileLog, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return &FileLog{path: path, file: file}, nil
}

func (f *FileLog) Name() string {
	return "file:" + f.path
}

func (f *FileLog) Path() string {
	return f.path
}

// Append - LogEntry 1건을 한 줄로 기록
func (f *FileLog) Append(ctx context.Context, entry model.LogEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}
	line = append(line, '\n')

	f.lock.Lock()
	defer f.lock.Unlock()
	if _, err := f.file.Write(line); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}

// Tail - 마지막 limit개의 엔트리를 오래된 순서로 반환 (limit <= 0이면 전체)
// 깨진 줄은 건너뜀
func (f *FileLog) Tail(ctx context.Context, limit int) ([]model.LogEntry, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", f.path, err)
	}
	defer file.Close()

	entries := []model.LogEntry{}
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var entry model.LogEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			log.WithFields(log.Fields{"path": f.path, "line": lineNo, "error": err.Error()}).Warning("FileLog - skipping unreadable line")
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) > limit {
			entries = entries[1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file %s: %w", f.path, err)
	}
	return entries, nil
}

func (f *FileLog) Close() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.file.Close()
}
