// Package oracle is the classification capability that decides whether a
// flagged translation needs correction. It wraps a Gemini-backed client
// behind a small interface and contains every transport or response-shape
// failure into a safe "no fix" decision, so oracle trouble never reaches
// document state.
package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers.
type Client interface {
	// GenerateJSON generates a JSON response from the given model.
	GenerateJSON(ctx context.Context, prompt string, model string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a new oracle client based on configuration.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, apiKey)
	default:
		return NewGeminiClient(ctx, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// GenerateJSON generates JSON content from the given model.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, model string) (string, error) {
	if model == "" {
		return "", fmt.Errorf("no model configured")
	}

	m := c.client.GenerativeModel(model)
	m.SetTemperature(0.1) // Low temperature for consistent decisions
	m.ResponseMIMEType = "application/json"

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return cleanJSONBlock(text), nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Disabled returns a client whose calls always fail with the given reason.
// Used when no API key is configured: the evaluator's failure containment
// turns every decision into a "no fix" with that reason attached, so the
// run still completes.
func Disabled(reason string) Client {
	return disabledClient{reason: reason}
}

type disabledClient struct {
	reason string
}

func (d disabledClient) GenerateJSON(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("oracle disabled: %s", d.reason)
}

func (d disabledClient) Close() error { return nil }

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON. Models
// often wrap JSON in ```json fences even when instructed not to.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
