package service

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
)

// 모델 식별자 접두어
//   - "llama3", "ollama:llama3" -> Ollama
//   - "genai:gemini-2.0-flash" -> Google GenAI
//
// Ollama 모델 이름에는 "llama3:8b"처럼 ':'가 들어갈 수 있으므로 아래 두 접두어만 인식
const (
	ollamaPrefix = "ollama:"
	genaiPrefix  = "genai:"
)

// ErrGenAINotConfigured - genai 백엔드가 설정되었지만 API 키가 없음
var ErrGenAINotConfigured = errors.New("genai backend not configured")

// Generator - 모델과 프롬프트를 받아 생성된 텍스트를 반환하는 추론 백엔드
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Backend - 설정된 모델 식별자 하나
// ID는 llm_responses 맵의 키로 그대로 사용
type Backend struct {
	ID    string
	Model string
	gen   Generator
	err   error
}

// NewBackend - 테스트나 커스텀 백엔드 주입용
func NewBackend(id, model string, gen Generator) Backend {
	return Backend{ID: id, Model: model, gen: gen}
}

// ResolveBackends - 모델 식별자 목록을 Backend 목록으로 변환
// genai가 nil이면 genai: 백엔드는 ErrGenAINotConfigured로 실패하는 Backend가 됨
// 같은 식별자가 여러 번 나오면 첫 번째만 사용 (llm_responses 키가 겹침)
func ResolveBackends(ids []string, ollama, genai Generator) []Backend {
	backends := make([]Backend, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			log.WithFields(log.Fields{"backend": id}).Warning("ResolveBackends - duplicate backend identifier ignored")
			continue
		}
		seen[id] = struct{}{}
		switch {
		case strings.HasPrefix(id, genaiPrefix):
			b := Backend{ID: id, Model: strings.TrimPrefix(id, genaiPrefix), gen: genai}
			if genai == nil {
				b.err = ErrGenAINotConfigured
			}
			backends = append(backends, b)
		case strings.HasPrefix(id, ollamaPrefix):
			backends = append(backends, Backend{ID: id, Model: strings.TrimPrefix(id, ollamaPrefix), gen: ollama})
		default:
			backends = append(backends, Backend{ID: id, Model: id, gen: ollama})
		}
	}
	return backends
}

// Generate - 백엔드 호출
func (b Backend) Generate(ctx context.Context, prompt string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if b.gen == nil {
		return "", errors.New("no generator for backend " + b.ID)
	}
	return b.gen.Generate(ctx, b.Model, prompt)
}
