package llm

import (
	"testing"
)

func TestNewClient(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		if _, err := NewClient(Config{Model: "gpt-4o-mini"}); err == nil {
			t.Error("expected an error without an API key")
		}
	})

	t.Run("requires a model", func(t *testing.T) {
		if _, err := NewClient(Config{APIKey: "sk-test"}); err == nil {
			t.Error("expected an error without a model identifier")
		}
	})

	t.Run("builds a client", func(t *testing.T) {
		c, err := NewClient(Config{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: "http://localhost:8080/v1"})
		if err != nil {
			t.Fatal(err)
		}
		if c.Model() != "gpt-4o-mini" {
			t.Errorf("Model() = %q", c.Model())
		}
	})
}
