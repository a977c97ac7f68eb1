package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ParseFailureMessage - LLM 응답을 JSON으로 복구하지 못했을 때 기록하는 에러 메시지
const ParseFailureMessage = "Could not parse LLM response as JSON"

// EnrichmentResult - 백엔드(모델) 하나의 분석 결과
//
// 두 가지 형태 중 하나:
//   - Structured: LLM이 돌려준 JSON 객체 (troubleshooting_steps, possible_root_causes, recommended_actions)
//   - Fallback: {error, raw} - 호출 실패 또는 파싱 실패
type EnrichmentResult struct {
	Structured json.RawMessage
	Error      string
	Raw        string
}

type fallbackResult struct {
	Error string `json:"error"`
	Raw   string `json:"raw"`
}

// Analysis - Structured 결과를 타입으로 읽을 때 사용하는 구조체
type Analysis struct {
	TroubleshootingSteps []string `json:"troubleshooting_steps"`
	PossibleRootCauses   []string `json:"possible_root_causes"`
	RecommendedActions   []string `json:"recommended_actions"`
}

// StructuredResult - 구조화된 결과 생성
func StructuredResult(obj json.RawMessage) EnrichmentResult {
	return EnrichmentResult{Structured: obj}
}

// FallbackResult - {error, raw} 형태의 결과 생성
func FallbackResult(errMsg, raw string) EnrichmentResult {
	return EnrichmentResult{Error: errMsg, Raw: raw}
}

// IsStructured - 구조화된 결과인지 여부
func (r EnrichmentResult) IsStructured() bool {
	return len(r.Structured) > 0
}

// Analysis - Structured 결과를 Analysis로 변환 (Fallback이거나 필드 타입이 다르면 false)
func (r EnrichmentResult) Analysis() (Analysis, bool) {
	var a Analysis
	if !r.IsStructured() {
		return a, false
	}
	if err := json.Unmarshal(r.Structured, &a); err != nil {
		return a, false
	}
	return a, true
}

// MarshalJSON - Structured면 객체 그대로, 아니면 {error, raw}
func (r EnrichmentResult) MarshalJSON() ([]byte, error) {
	if r.IsStructured() {
		return r.Structured, nil
	}
	return json.Marshal(fallbackResult{Error: r.Error, Raw: r.Raw})
}

// UnmarshalJSON - 로그 파일을 다시 읽을 때 사용
// 키가 정확히 error/raw 두 개이고 값이 모두 문자열인 객체만 Fallback으로 해석.
// LLM이 그 모양의 객체를 그대로 돌려준 경우는 파일에서 구분할 수 없어 Fallback으로 읽힘.
// 그 외(추가 키, 문자열이 아닌 값)는 Structured로 보존.
func (r *EnrichmentResult) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	if fb, ok := asFallback(keys); ok {
		*r = FallbackResult(fb.Error, fb.Raw)
		return nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return err
	}
	*r = StructuredResult(compact.Bytes())
	return nil
}

func asFallback(keys map[string]json.RawMessage) (fallbackResult, bool) {
	var fb fallbackResult
	if len(keys) != 2 {
		return fb, false
	}
	errRaw, hasErr := keys["error"]
	rawRaw, hasRaw := keys["raw"]
	if !hasErr || !hasRaw {
		return fb, false
	}
	if json.Unmarshal(errRaw, &fb.Error) != nil || json.Unmarshal(rawRaw, &fb.Raw) != nil {
		return fb, false
	}
	return fb, true
}

// LogEntry - 수신한 알림 1건당 하나씩 append되는 기록 (작성 후 변경하지 않음)
type LogEntry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// 수신한 페이로드 원본 (파싱된 JSON 그대로 보존)
	Alert json.RawMessage `json:"alert"`

	// 백엔드 식별자 -> 분석 결과
	LLMResponses map[string]EnrichmentResult `json:"llm_responses"`
}

// StructuredCount - 구조화된 결과를 얻은 백엔드 수
func (e LogEntry) StructuredCount() int {
	n := 0
	for _, r := range e.LLMResponses {
		if r.IsStructured() {
			n++
		}
	}
	return n
}
