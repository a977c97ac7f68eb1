package client

import (
	"context"
	"fmt"

	"github.com/kube-rca/alert-llm/internal/config"
	"google.golang.org/genai"
)

// GenAIClient - "genai:<model>" 백엔드용 Google GenAI 클라이언트
type GenAIClient struct {
	client *genai.Client
}

func NewGenAIClient(ctx context.Context, cfg config.GenAIConfig) (*GenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing AI_API_KEY")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GenAIClient{client: client}, nil
}

func (c *GenAIClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	res, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if res == nil || len(res.Candidates) == 0 {
		return "", fmt.Errorf("empty generate result")
	}
	return res.Text(), nil
}
