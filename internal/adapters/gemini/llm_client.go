package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Client is an implementation of the core.LLMClient interface using Google
// Gemini.
type Client struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger
}

// NewClient creates a new Gemini completion client.
func NewClient(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:    client,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Complete sends a system role and a user prompt to the model and returns
// the raw response text.
func (c *Client) Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float32) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.SetTemperature(temperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content with Gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	c.logger.Debug("Gemini completion received",
		zap.String("model", c.modelName))

	return sb.String(), nil
}

// Close releases the underlying client.
func (c *Client) Close() error {
	return c.client.Close()
}
