// Alertmanager 웹훅 페이로드 및 개별 알림 구조체를 정의
// simulator(생성), handler(수신), service(추출) 레이어에서 공통으로 사용하기 때문에 model 레이어에 별도로 정의

package model

import "time"

// 알림 상태 값
// simulator는 "active"/"resolved"로 알림을 생성하고, 웹훅 최상위 status는 "firing"/"resolved"
const (
	StatusActive   = "active"
	StatusFiring   = "firing"
	StatusResolved = "resolved"
)

// AlertmanagerWebhook - Alertmanager 웹훅 페이로드
// simulator는 항상 알림 1개만 담아서 전송
type AlertmanagerWebhook struct {
	Receiver string `json:"receiver"`

	// firing(발생) 또는 resolved(해결), 포함된 알림의 status와 일치해야 함
	Status string  `json:"status"`
	Alerts []Alert `json:"alerts"`

	// route.group_by 설정에 따라 결정되는 그룹핑에 사용된 라벨
	GroupLabels map[string]string `json:"groupLabels"`

	// 그룹 내 모든 알림에 공통으로 존재하는 라벨
	CommonLabels map[string]string `json:"commonLabels"`

	// 그룹 내 모든 알림에 공통으로 존재하는 어노테이션
	CommonAnnotations map[string]string `json:"commonAnnotations"`
	ExternalURL       string            `json:"externalURL"`
	Version           string            `json:"version"`

	// 동일한 GroupKey를 가진 알림들은 함께 그룹핑됨
	GroupKey string `json:"groupKey"`

	// max_alerts 설정으로 인해 생략된 알림이 있을 경우 그 개수
	TruncatedAlerts int `json:"truncatedAlerts,omitempty"`
}

// Alert - 개별 알림
type Alert struct {
	Status string `json:"status"`

	// - alertname: 알림 이름 (예: "NNMINodeDown")
	// - severity: 심각도 (critical, warning)
	// - region, instance: 발생 위치 (선택)
	// - prometheus: 알림을 생성한 Prometheus 인스턴스
	Labels map[string]string `json:"labels"`

	// - summary: 알림 요약
	// - description: 알림 상세 설명
	Annotations map[string]string `json:"annotations"`

	// StartsAt/EndsAt: UTC, "Z" 접미사가 붙은 ISO-8601 형식으로 직렬화
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`

	// GeneratorURL: 알림을 생성한 Prometheus 쿼리 URL
	GeneratorURL string `json:"generatorURL"`

	// Fingerprint: 16자리 hex 식별자, 표시/그룹핑 용도 (중복 제거에는 사용하지 않음)
	Fingerprint string `json:"fingerprint"`
}

// IsFiring - "active"와 "firing"을 모두 발생 상태로 취급
func IsFiring(status string) bool {
	return status == StatusActive || status == StatusFiring
}

// AlertSummary - LLM 프롬프트에 사용할 알림 요약 필드
// 필드가 없으면 빈 문자열, 추출 자체가 불가능하면 Fallback에 전체 페이로드 문자열이 들어감
type AlertSummary struct {
	AlertName   string
	Severity    string
	Region      string
	Instance    string
	Summary     string
	Description string

	// Fallback: alerts[0] 구조가 아닐 때 페이로드 전체를 직렬화한 문자열
	Fallback string
}

// IsFallback - 구조화된 추출에 실패했는지 여부
func (s AlertSummary) IsFallback() bool {
	return s.Fallback != ""
}
