package models

// ModelInfo is one selectable model in the catalog shown to the client.
type ModelInfo struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// AppConfig is the static client-facing configuration (GET /api/config/app).
type AppConfig struct {
	Models       []ModelInfo `json:"models"`
	DefaultModel string      `json:"defaultModel"`
	Temperature  float64     `json:"temperature"`
	MaxTokens    int         `json:"maxTokens"`
}
