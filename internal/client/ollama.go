// Ollama 서버와 HTTP 통신하는 클라이언트 정의
//
// 환경변수:
//   - OLLAMA_URL: Ollama 서버 URL (예: http://localhost:11434)
//
// 사용하는 API:
//   - POST /api/generate: {model, prompt, stream:false} -> {response}
//   - GET /api/tags: 설치된 모델 목록

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kube-rca/alert-llm/internal/config"
)

// ErrBackendStatus - 백엔드가 200이 아닌 상태 코드를 반환
var ErrBackendStatus = errors.New("backend returned non-success status")

// StatusError - 상태 코드와 응답 본문을 함께 보존 (fallback raw에 기록)
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrBackendStatus
}

// OllamaClient 구조체 정의
type OllamaClient struct {
	baseURL    string
	httpClient *http.Client
}

// OllamaGenerateRequest - POST /api/generate 요청
type OllamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// OllamaGenerateResponse - POST /api/generate 응답 (stream=false)
type OllamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// OllamaTagsResponse - GET /api/tags 응답
type OllamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// OllamaClient 객체 생성
// timeout은 호출 1회의 상한, 실제 제한은 호출자가 넘기는 ctx로도 걸림
func NewOllamaClient(cfg config.OllamaConfig, timeout time.Duration) *OllamaClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	return &OllamaClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout, // LLM 생성 시간 고려
		},
	}
}

func (c *OllamaClient) BaseURL() string {
	return c.baseURL
}

// POST /api/generate 요청하고 생성된 텍스트 반환 (동기)
func (c *OllamaClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	payload, err := json.Marshal(OllamaGenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request to ollama: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var genResp OllamaGenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return genResp.Response, nil
}

// GET /api/tags - 설치된 모델 이름 목록
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to ollama: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tags OllamaTagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
