package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Client is an implementation of the core.LLMClient interface using OpenAI.
type Client struct {
	client    *openai.Client
	modelName string
	logger    *zap.Logger
}

// NewClient creates a new OpenAI completion client.
func NewClient(apiKey, modelName string, logger *zap.Logger) *Client {
	return &Client{
		client:    openai.NewClient(apiKey),
		modelName: modelName,
		logger:    logger,
	}
}

// Complete sends a system role and a user prompt to the model and returns
// the raw response text.
func (c *Client) Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	c.logger.Debug("OpenAI completion received",
		zap.String("model", c.modelName),
		zap.String("processing_id", resp.ID))

	return resp.Choices[0].Message.Content, nil
}
