package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// GeminiClient calls the Gemini generation API. One request per call, no
// streaming, no retry. Constructed once at startup and injected into the
// handlers.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init genai client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &GeminiClient{client: client, model: model, timeout: timeout}, nil
}

// Generate sends the instruction as a single user-role message at the given
// sampling temperature and returns the trimmed text of the first candidate
// that carries any. Errors wrap ErrUpstream; their text never contains the
// API key, which travels only in the request header set by the SDK.
func (c *GeminiClient) Generate(ctx context.Context, instruction string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(instruction, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr(temperature)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var b strings.Builder
	if resp != nil {
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if part.Text != "" {
					b.WriteString(part.Text)
				}
			}
			if b.Len() > 0 {
				break
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}
