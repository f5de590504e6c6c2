// Package llm provides AI-backed merchant classification and question
// answering on top of interchangeable completion providers.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Client is a minimal completion interface over an LLM provider.
type Client interface {
	// Complete sends a system prompt and user prompt and returns the raw
	// text of the model's reply.
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Config holds provider selection and tuning knobs.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// NewClient creates a completion client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		return newAnthropicClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// cleanMarkdownWrapper strips a ```json ... ``` fence if the model wrapped
// its reply in one despite instructions.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
