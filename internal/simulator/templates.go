// Package simulator generates synthetic Alertmanager webhooks and posts them to the relay.
package simulator

// Template - 알림 종류 하나 (이름, 심각도, 요약, 설명 고정)
type Template struct {
	Name        string
	Severity    string
	Summary     string
	Description string
}

// Templates - 시뮬레이터가 무작위로 고르는 알림 목록
var Templates = []Template{
	{
		Name:        "HighAPILatency",
		Severity:    "critical",
		Summary:     "High API latency detected",
		Description: "95th percentile latency for target http://labmuc-sysm-gnm-02.lan.ts-ian.net/nnm is greater than 500ms for the last 5 minutes.",
	},
	{
		Name:        "SlowDNSResolution",
		Severity:    "warning",
		Summary:     "Slow DNS resolution detected",
		Description: "90th percentile DNS resolution time is greater than 100ms for the last 5 minutes.",
	},
	{
		Name:        "TracerouteFailure",
		Severity:    "critical",
		Summary:     "Traceroute to external target failed",
		Description: "Traceroute to 8.8.8.8 exceeded hop limit, indicating possible routing issue.",
	},
	{
		Name:        "NNMINodeDown",
		Severity:    "critical",
		Summary:     "OpenText NNMi Node Down Alert",
		Description: "Node labmuc-router-01 is unreachable from NNMi for more than 10 minutes.",
	},
	{
		Name:        "NNMIHighCPU",
		Severity:    "warning",
		Summary:     "High CPU utilization detected in NNMi node",
		Description: "CPU utilization on node labmuc-sysm-gnm-02 exceeded 85% for last 10 minutes.",
	},
}

// region, instance 라벨 후보
var (
	regions = []string{"eu-central", "eu-west", "us-east", "ap-southeast"}

	instances = []string{
		"labmuc-sysm-gnm-02",
		"labmuc-router-01",
		"labmuc-sysm-dpg-01",
		"labmuc-dns-01",
		"labmuc-fw-02",
	}
)
