package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodeDownPayload = `{
	"receiver": "web.hook",
	"status": "firing",
	"alerts": [{
		"status": "active",
		"labels": {"alertname": "NNMINodeDown", "severity": "critical", "region": "eu-central", "instance": "labmuc-router-01"},
		"annotations": {"summary": "OpenText NNMi Node Down Alert", "description": "Node labmuc-router-01 is unreachable from NNMi for more than 10 minutes."}
	}]
}`

func TestExtractSummary(t *testing.T) {
	summary, err := ExtractSummary([]byte(nodeDownPayload))
	require.NoError(t, err)

	assert.False(t, summary.IsFallback())
	assert.Equal(t, "NNMINodeDown", summary.AlertName)
	assert.Equal(t, "critical", summary.Severity)
	assert.Equal(t, "eu-central", summary.Region)
	assert.Equal(t, "labmuc-router-01", summary.Instance)
	assert.Equal(t, "OpenText NNMi Node Down Alert", summary.Summary)

	text := FormatSummary(summary)
	assert.Contains(t, text, "Alert: NNMINodeDown\nSeverity: critical\n")
	assert.Contains(t, text, "Description: Node labmuc-router-01 is unreachable")
}

func TestExtractSummaryMissingFields(t *testing.T) {
	summary, err := ExtractSummary([]byte(`{"alerts":[{"labels":{"alertname":"X"}}]}`))
	require.NoError(t, err)

	assert.False(t, summary.IsFallback())
	assert.Equal(t, "X", summary.AlertName)
	assert.Empty(t, summary.Severity)
	assert.Empty(t, summary.Summary)
	assert.Empty(t, summary.Description)
	assert.NotContains(t, FormatSummary(summary), "Region:")
}

func TestExtractSummaryFallsBackToWholePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"no alerts", `{"foo": "bar"}`, `{"foo":"bar"}`},
		{"empty alerts", `{"alerts": []}`, `{"alerts":[]}`},
		{"alerts not a list", `{"alerts": "x"}`, `{"alerts":"x"}`},
		{"first alert not an object", `{"alerts": [1]}`, `{"alerts":[1]}`},
		{"top level array", `[1, 2]`, `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := ExtractSummary([]byte(tt.payload))
			require.NoError(t, err)
			assert.True(t, summary.IsFallback())
			assert.Equal(t, tt.want, summary.Fallback)
			assert.Contains(t, BuildPrompt(summary), tt.want)
		})
	}
}

func TestExtractSummaryMalformed(t *testing.T) {
	_, err := ExtractSummary([]byte(`{"alerts": [`))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = ExtractSummary([]byte("not json"))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestBuildPromptNamesAllFields(t *testing.T) {
	summary, err := ExtractSummary([]byte(nodeDownPayload))
	require.NoError(t, err)

	prompt := BuildPrompt(summary)
	for _, field := range []string{"troubleshooting_steps", "possible_root_causes", "recommended_actions"} {
		assert.Contains(t, prompt, field)
	}
	assert.Contains(t, prompt, "Alert: NNMINodeDown")
}
