package factory

import (
	"fmt"

	"loan-assistant-be/pkg/llm"
	"loan-assistant-be/pkg/llm/ollama"
	"loan-assistant-be/pkg/llm/openrouter"
)

// Config carries everything any provider might need; unused fields are
// ignored by the selected backend.
type Config struct {
	Provider string // "ollama" | "openrouter"
	Model    string
	BaseURL  string // ollama
	APIKey   string // openrouter
	Referer  string // openrouter
	AppTitle string // openrouter
}

func NewProvider(cfg Config) (llm.Provider, error) {
	switch cfg.Provider {
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewProvider(baseURL, cfg.Model), nil
	case "openrouter":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openrouter provider requires an API key")
		}
		return openrouter.NewProvider(cfg.APIKey, cfg.Model, cfg.Referer, cfg.AppTitle), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
