package service

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kube-rca/alert-llm/internal/client"
	"github.com/kube-rca/alert-llm/internal/metrics"
	"github.com/kube-rca/alert-llm/internal/model"
)

const (
	StatusHealthy           = "healthy"
	StatusOllamaError       = "ollama_error"
	StatusOllamaUnavailable = "ollama_unavailable"

	probeTimeout = 5 * time.Second

	// cron probe(기본 1분) 결과를 /status에서 재사용하는 최대 기간
	statusMaxAge = 90 * time.Second
)

// ModelLister - 설치된 모델 목록 조회 (Ollama GET /api/tags)
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// StatusService - Ollama 상태 확인, 마지막 결과를 캐시
type StatusService struct {
	lister     ModelLister
	configured []string
	metrics    *metrics.Relay
	now        func() time.Time

	mu        sync.RWMutex
	cached    *model.BackendStatusResponse
	checkedAt time.Time
}

func NewStatusService(lister ModelLister, configured []string, m *metrics.Relay) *StatusService {
	return &StatusService{
		lister:     lister,
		configured: configured,
		metrics:    m,
		now:        time.Now,
	}
}

// Probe - 상태 확인 후 캐시 갱신
func (s *StatusService) Probe(ctx context.Context) model.BackendStatusResponse {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	checkedAt := s.now()
	res := model.BackendStatusResponse{
		ModelsAvailable:  []string{},
		ConfiguredModels: s.configured,
		CheckedAt:        checkedAt.UTC().Format(time.RFC3339),
	}

	models, err := s.lister.ListModels(ctx)
	switch {
	case err == nil:
		res.Status = StatusHealthy
		res.OllamaAvailable = true
		res.ModelsAvailable = models
	case errors.Is(err, client.ErrBackendStatus):
		res.Status = StatusOllamaError
	default:
		res.Status = StatusOllamaUnavailable
	}
	if err != nil {
		log.WithFields(log.Fields{"status": res.Status, "error": err.Error()}).Warning("StatusService - backend probe failed")
	}

	s.metrics.SetBackendUp(res.OllamaAvailable)

	s.mu.Lock()
	s.cached = &res
	s.checkedAt = checkedAt
	s.mu.Unlock()

	return res
}

// Current - 캐시된 결과가 statusMaxAge 이내면 그대로, 아니면 새로 probe
func (s *StatusService) Current(ctx context.Context) model.BackendStatusResponse {
	if res, ok := s.fresh(); ok {
		return res
	}
	return s.Probe(ctx)
}

func (s *StatusService) fresh() (model.BackendStatusResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil || s.now().Sub(s.checkedAt) > statusMaxAge {
		return model.BackendStatusResponse{}, false
	}
	return *s.cached, true
}

// Run - cron job으로 등록해서 주기적으로 실행
func (s *StatusService) Run() {
	res := s.Probe(context.Background())
	log.WithFields(log.Fields{"status": res.Status, "models": len(res.ModelsAvailable)}).Debug("StatusService - scheduled probe finished")
}
