package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// BackendStatusResponse - GET /status 응답
// status: healthy | ollama_error | ollama_unavailable
type BackendStatusResponse struct {
	Status           string   `json:"status"`
	OllamaAvailable  bool     `json:"ollama_available"`
	ModelsAvailable  []string `json:"models_available"`
	ConfiguredModels []string `json:"configured_models"`
	CheckedAt        string   `json:"checked_at,omitempty"`
}

// LogEntryListResponse - GET /api/v1/entries 응답
type LogEntryListResponse struct {
	Status string     `json:"status"`
	Data   []LogEntry `json:"data"`
}
