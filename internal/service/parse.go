package service

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kube-rca/alert-llm/internal/model"
)

var fencedBlock = regexp.MustCompile("(?s)```(?i:json)?\\s*(.*?)```")

// ParseResponse - LLM 응답 텍스트에서 JSON 객체 복구
//
// 후보 우선순위: 코드 펜스 안의 내용 > 첫 '{'부터 끝까지 > 전체 텍스트
// 후보의 첫 JSON 값이 객체가 아니면 {error, raw} (raw는 원본 텍스트). 패닉/에러 없음
func ParseResponse(text string) model.EnrichmentResult {
	obj, ok := decodeObject(recoveryCandidate(text))
	if !ok {
		return model.FallbackResult(model.ParseFailureMessage, text)
	}
	return model.StructuredResult(obj)
}

func recoveryCandidate(text string) string {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if idx := strings.Index(text, "{"); idx >= 0 {
		return text[idx:]
	}
	return text
}

// 첫 번째 값만 디코딩, 뒤에 붙은 설명 텍스트는 무시
func decodeObject(candidate string) (json.RawMessage, bool) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	var value json.RawMessage
	if err := dec.Decode(&value); err != nil {
		return nil, false
	}
	value = bytes.TrimSpace(value)
	if len(value) == 0 || value[0] != '{' {
		return nil, false
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, value); err != nil {
		return nil, false
	}
	return compact.Bytes(), true
}
