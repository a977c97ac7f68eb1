// Alert 분석(enrichment) 비즈니스 로직 정의
//
// 처리 흐름:
//  1. 페이로드에서 요약 추출 (JSON이 아니면 ErrMalformedPayload, 아무것도 기록하지 않음)
//  2. 설정된 모든 백엔드에 동시에 프롬프트 전송 (백엔드마다 timeout)
//  3. 각 응답을 JSON으로 복구, 실패/에러는 {error, raw}로 기록
//  4. LogEntry를 기본 로그(JSONL)와 미러(PostgreSQL, Kafka)에 append (저장소마다 timeout)
//  5. LogEntry 반환 (append 실패는 로그와 메트릭으로만 남김)

package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/kube-rca/alert-llm/internal/client"
	"github.com/kube-rca/alert-llm/internal/metrics"
	"github.com/kube-rca/alert-llm/internal/model"
)

// EntrySink - LogEntry를 append하는 저장소 (JSONL 파일, PostgreSQL, Kafka)
type EntrySink interface {
	Name() string
	Append(ctx context.Context, entry model.LogEntry) error
}

// EnrichmentService 구조체 정의
type EnrichmentService struct {
	backends    []Backend
	timeout     time.Duration
	sinkTimeout time.Duration
	sinks       []EntrySink
	metrics     *metrics.Relay
	now         func() time.Time
}

// EnrichmentService 객체 생성
// sinks[0]이 기본 로그, 나머지는 미러
// timeout은 백엔드 호출 1회, sinkTimeout은 저장소 append 1회의 상한 (0이면 제한 없음)
func NewEnrichmentService(backends []Backend, timeout, sinkTimeout time.Duration, sinks []EntrySink, m *metrics.Relay) *EnrichmentService {
	return &EnrichmentService{
		backends:    backends,
		timeout:     timeout,
		sinkTimeout: sinkTimeout,
		sinks:       sinks,
		metrics:     m,
		now:         time.Now,
	}
}

// BackendIDs - 설정된 백엔드 식별자 목록
func (s *EnrichmentService) BackendIDs() []string {
	ids := make([]string, 0, len(s.backends))
	for _, b := range s.backends {
		ids = append(ids, b.ID)
	}
	return ids
}

// Process - 알림 1건 처리 후 LogEntry 반환
// 반환 에러는 ErrMalformedPayload 뿐
func (s *EnrichmentService) Process(ctx context.Context, raw []byte) (model.LogEntry, error) {
	summary, err := ExtractSummary(raw)
	if err != nil {
		return model.LogEntry{}, err
	}

	mode := "structured"
	if summary.IsFallback() {
		mode = "fallback"
		log.WithFields(log.Fields{"bytes": len(raw)}).Warning("EnrichmentService - alert has no usable alerts[0], using whole payload as prompt input")
	}
	s.metrics.ObserveReceived(mode)

	prompt := BuildPrompt(summary)
	results := s.enrich(ctx, prompt)

	entry := model.LogEntry{
		ID:           uuid.New(),
		Timestamp:    s.now().UTC(),
		Alert:        json.RawMessage(raw),
		LLMResponses: make(map[string]model.EnrichmentResult, len(results)),
	}
	for i, b := range s.backends {
		entry.LLMResponses[b.ID] = results[i]
	}

	s.append(ctx, entry)

	log.WithFields(log.Fields{
		"id":         entry.ID.String(),
		"alertname":  summary.AlertName,
		"backends":   len(s.backends),
		"structured": entry.StructuredCount(),
	}).Info("EnrichmentService - alert processed")

	return entry, nil
}

// 백엔드별로 goroutine 하나, 결과는 인덱스 위치에 저장
func (s *EnrichmentService) enrich(ctx context.Context, prompt string) []model.EnrichmentResult {
	results := make([]model.EnrichmentResult, len(s.backends))

	var wg sync.WaitGroup
	for i, b := range s.backends {
		wg.Add(1)
		go func(i int, b Backend) {
			defer wg.Done()
			results[i] = s.callBackend(ctx, b, prompt)
		}(i, b)
	}
	wg.Wait()

	return results
}

func (s *EnrichmentService) callBackend(ctx context.Context, b Backend, prompt string) model.EnrichmentResult {
	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := b.Generate(callCtx, prompt)
	fields := log.Fields{"backend": b.ID, "model": b.Model, "elapsed": time.Since(start).String()}
	if err != nil {
		fields["error"] = err.Error()
		log.WithFields(fields).Error("EnrichmentService - backend call failed")
		s.metrics.ObserveEnrichment(b.ID, metrics.OutcomeBackendFailure)
		return model.FallbackResult(err.Error(), failureBody(err))
	}

	result := ParseResponse(text)
	if result.IsStructured() {
		log.WithFields(fields).Debug("EnrichmentService - backend reply parsed")
		s.metrics.ObserveEnrichment(b.ID, metrics.OutcomeStructured)
	} else {
		log.WithFields(fields).Warning("EnrichmentService - backend reply is not JSON")
		s.metrics.ObserveEnrichment(b.ID, metrics.OutcomeParseFailure)
	}
	return result
}

// failureBody - 상태 코드 에러면 응답 본문, 그 외에는 ""
func failureBody(err error) string {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Body
	}
	return ""
}

func (s *EnrichmentService) append(ctx context.Context, entry model.LogEntry) {
	for _, sink := range s.sinks {
		if err := s.appendTo(ctx, sink, entry); err != nil {
			log.WithFields(log.Fields{
				"sink":  sink.Name(),
				"id":    entry.ID.String(),
				"error": err.Error(),
			}).Error("EnrichmentService - failed to append log entry")
			s.metrics.ObserveAppendFailure(sink.Name())
		}
	}
}

// appendTo - 저장소 하나에 append, 멈춘 미러가 응답을 붙잡지 않도록 timeout 적용
func (s *EnrichmentService) appendTo(ctx context.Context, sink EntrySink, entry model.LogEntry) error {
	if s.sinkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.sinkTimeout)
		defer cancel()
	}
	return sink.Append(ctx, entry)
}
