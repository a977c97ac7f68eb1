// 수신한 알림 페이로드에서 LLM 프롬프트용 요약을 추출
//
// 추출 규칙:
//   - alerts[0].annotations.{summary, description}
//   - alerts[0].labels.{alertname, severity, region, instance}
//   - 키가 없으면 빈 문자열
//   - alerts가 없거나 비어있거나 첫 원소가 객체가 아니면 페이로드 전체 JSON 문자열을 그대로 사용
//
// 페이로드 자체가 JSON이 아닐 때만 ErrMalformedPayload 반환

package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kube-rca/alert-llm/internal/model"
)

// ErrMalformedPayload - 요청 본문이 JSON이 아님 (400)
var ErrMalformedPayload = errors.New("invalid payload")

// ExtractSummary - 페이로드를 파싱해서 AlertSummary 생성
func ExtractSummary(raw []byte) (model.AlertSummary, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.AlertSummary{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	first, ok := firstAlert(payload)
	if !ok {
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return model.AlertSummary{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return model.AlertSummary{Fallback: compact.String()}, nil
	}

	labels, _ := first["labels"].(map[string]any)
	annotations, _ := first["annotations"].(map[string]any)

	return model.AlertSummary{
		AlertName:   stringField(labels, "alertname"),
		Severity:    stringField(labels, "severity"),
		Region:      stringField(labels, "region"),
		Instance:    stringField(labels, "instance"),
		Summary:     stringField(annotations, "summary"),
		Description: stringField(annotations, "description"),
	}, nil
}

func firstAlert(payload any) (map[string]any, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	alerts, ok := obj["alerts"].([]any)
	if !ok || len(alerts) == 0 {
		return nil, false
	}
	first, ok := alerts[0].(map[string]any)
	return first, ok
}

// 문자열이 아닌 값은 JSON 텍스트로 변환
func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// FormatSummary - 프롬프트에 들어갈 알림 설명 텍스트
func FormatSummary(s model.AlertSummary) string {
	if s.IsFallback() {
		return s.Fallback
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Alert: %s\n", s.AlertName)
	fmt.Fprintf(&b, "Severity: %s\n", s.Severity)
	if s.Region != "" {
		fmt.Fprintf(&b, "Region: %s\n", s.Region)
	}
	if s.Instance != "" {
		fmt.Fprintf(&b, "Instance: %s\n", s.Instance)
	}
	fmt.Fprintf(&b, "Summary: %s\n", s.Summary)
	fmt.Fprintf(&b, "Description: %s", s.Description)
	return b.String()
}

// BuildPrompt - 세 필드만 가진 JSON 객체로 답하도록 지시하는 프롬프트
func BuildPrompt(s model.AlertSummary) string {
	return "You are an expert SRE. Given this alert, provide troubleshooting steps and a possible root cause analysis (RCA).\n\n" +
		FormatSummary(s) +
		"\n\nRespond ONLY with a JSON object with exactly these fields:\n" +
		"- \"troubleshooting_steps\": array of strings, in the order they should be performed\n" +
		"- \"possible_root_causes\": array of strings, most likely first\n" +
		"- \"recommended_actions\": array of strings\n" +
		"Do not add any text before or after the JSON object."
}
