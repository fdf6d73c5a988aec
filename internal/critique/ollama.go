package critique

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// PromptCritic generates text feedback for a profile prompt answer.
type PromptCritic interface {
	Critique(ctx context.Context, prompt, answer string) (string, error)
}

const critiqueTemplate = `You are a dating-profile coach. The user answered the profile prompt below.
Give short, concrete feedback: what works, what falls flat, and one rewrite suggestion.

Prompt: %s
Answer: %s`

// OllamaCritic calls a local or hosted Ollama model for prompt critique.
type OllamaCritic struct {
	client *api.Client
	model  string
}

// NewOllamaCritic creates a critic against the given Ollama base URL.
func NewOllamaCritic(ollamaURL, model string) (*OllamaCritic, error) {
	parsedURL, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL: %w", err)
	}
	baseURL := &url.URL{Scheme: parsedURL.Scheme, Host: parsedURL.Host}

	return &OllamaCritic{
		client: api.NewClient(baseURL, http.DefaultClient),
		model:  model,
	}, nil
}

func (c *OllamaCritic) Critique(ctx context.Context, prompt, answer string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 120*time.Second)
		defer cancel()
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: fmt.Sprintf(critiqueTemplate, prompt, answer),
			},
		},
		Stream: &streamFalse,
	}

	var content string
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content = resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat error: %w", err)
	}

	critique := strings.TrimSpace(content)
	if critique == "" {
		return "", fmt.Errorf("model returned an empty critique")
	}
	return critique, nil
}
