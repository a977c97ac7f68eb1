package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kube-rca/alert-llm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req OllamaGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.Equal(t, "hello", req.Prompt)
		assert.False(t, req.Stream)

		_ = json.NewEncoder(w).Encode(OllamaGenerateResponse{Model: req.Model, Response: "world", Done: true})
	}))
	t.Cleanup(srv.Close)

	c := NewOllamaClient(config.OllamaConfig{BaseURL: srv.URL}, 5*time.Second)
	got, err := c.Generate(context.Background(), "llama3", "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", got)
}

func TestOllamaGenerateStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := NewOllamaClient(config.OllamaConfig{BaseURL: srv.URL}, 5*time.Second)
	_, err := c.Generate(context.Background(), "missing", "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackendStatus))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "model not found")
}

func TestOllamaGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := NewOllamaClient(config.OllamaConfig{BaseURL: srv.URL}, 50*time.Millisecond)
	_, err := c.Generate(context.Background(), "llama3", "hello")
	assert.Error(t, err)
}

func TestOllamaListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3:latest"},{"name":"mistral:7b"}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewOllamaClient(config.OllamaConfig{BaseURL: srv.URL}, 5*time.Second)
	models, err := c.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3:latest", "mistral:7b"}, models)
}
