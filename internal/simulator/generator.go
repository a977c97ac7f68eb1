package simulator

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/kube-rca/alert-llm/internal/model"
)

const (
	receiverName    = "web.hook"
	prometheusLabel = "labmuc-sysm-dpg-01"
	generatorURL    = "http://prometheus.example.com/graph"
	externalURL     = "http://alertmanager.example.com"
	schemaVersion   = "4"
)

// startsAt는 now 기준 1~10분 전, endsAt는 5~15분 후
const (
	minStartOffset = 1 * time.Minute
	maxStartOffset = 10 * time.Minute
	minEndOffset   = 5 * time.Minute
	maxEndOffset   = 15 * time.Minute
)

// Generate - 알림 1개를 담은 웹훅 페이로드 생성 (I/O 없음, 실패하지 않음)
// status는 "active"/"firing" 또는 "resolved"
func Generate(tmpl Template, status string, now time.Time, rng *rand.Rand) model.AlertmanagerWebhook {
	now = now.UTC()

	envelopeStatus := model.StatusResolved
	if model.IsFiring(status) {
		envelopeStatus = model.StatusFiring
	}

	alert := model.Alert{
		Status: status,
		Labels: map[string]string{
			"alertname":  tmpl.Name,
			"severity":   tmpl.Severity,
			"region":     pick(regions, rng),
			"instance":   pick(instances, rng),
			"prometheus": prometheusLabel,
		},
		Annotations: map[string]string{
			"summary":     tmpl.Summary,
			"description": tmpl.Description,
		},
		StartsAt:     now.Add(-between(minStartOffset, maxStartOffset, rng)),
		EndsAt:       now.Add(between(minEndOffset, maxEndOffset, rng)),
		GeneratorURL: generatorURL,
		Fingerprint:  fmt.Sprintf("%016x", rng.Uint64()),
	}

	return model.AlertmanagerWebhook{
		Receiver:          receiverName,
		Status:            envelopeStatus,
		Alerts:            []model.Alert{alert},
		GroupLabels:       map[string]string{"alertname": tmpl.Name},
		CommonLabels:      map[string]string{"severity": tmpl.Severity},
		CommonAnnotations: map[string]string{"summary": tmpl.Summary},
		ExternalURL:       externalURL,
		Version:           schemaVersion,
		GroupKey:          fmt.Sprintf("{alertname=%q}", tmpl.Name),
	}
}

func pick(pool []string, rng *rand.Rand) string {
	return pool[rng.IntN(len(pool))]
}

// [lo, hi] 구간의 균등 분포
func between(lo, hi time.Duration, rng *rand.Rand) time.Duration {
	return lo + time.Duration(rng.Int64N(int64(hi-lo)+1))
}
