package llm

import (
	"context"
	"fmt"
)

// Client is the generation-oracle boundary: one prompt in, free-form text
// out. Failures are fatal to the calling test case only; the pipeline never
// retries.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key not set. Please set OPENAI_API_KEY or add openai.api_key to the config file")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model identifier is required")
	}
	return NewOpenAIClient(cfg), nil
}
