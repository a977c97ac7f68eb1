package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kube-rca/alert-llm/internal/model"
)

// ErrRejected - relay가 2xx가 아닌 상태 코드로 응답
var ErrRejected = errors.New("alert rejected")

// Outcome - 전송 결과 (Delivered 또는 Failed)
type Outcome struct {
	StatusCode int
	Err        error
}

// Delivered - 2xx 응답을 받았는지 여부
func (o Outcome) Delivered() bool {
	return o.Err == nil
}

// Sender - relay로 웹훅을 POST
type Sender struct {
	targetURL  string
	httpClient *http.Client
}

func NewSender(targetURL string, timeout time.Duration) *Sender {
	return &Sender{
		targetURL: targetURL,
		httpClient: &http.Client{
			Timeout: timeout, // relay는 LLM 응답까지 기다린 뒤 응답
		},
	}
}

// Send - 에러를 반환하지 않고 Outcome으로 결과를 돌려줌 (송신 루프는 계속 진행)
func (s *Sender) Send(ctx context.Context, env model.AlertmanagerWebhook) Outcome {
	outcome := s.send(ctx, env)

	fields := log.Fields{
		"alertname": alertName(env),
		"status":    env.Status,
		"target":    s.targetURL,
	}
	if outcome.StatusCode != 0 {
		fields["code"] = outcome.StatusCode
	}
	if outcome.Delivered() {
		log.WithFields(fields).Info("Sender - alert delivered")
	} else {
		fields["error"] = outcome.Err.Error()
		log.WithFields(fields).Warning("Sender - alert delivery failed")
	}
	return outcome
}

func (s *Sender) send(ctx context.Context, env model.AlertmanagerWebhook) Outcome {
	payload, err := json.Marshal(env)
	if err != nil {
		return Outcome{Err: fmt.Errorf("failed to marshal alert: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.targetURL, bytes.NewBuffer(payload))
	if err != nil {
		return Outcome{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return Outcome{Err: fmt.Errorf("failed to send alert: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Outcome{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, bytes.TrimSpace(body)),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return Outcome{StatusCode: resp.StatusCode}
}

func alertName(env model.AlertmanagerWebhook) string {
	if len(env.Alerts) == 0 {
		return ""
	}
	return env.Alerts[0].Labels["alertname"]
}
