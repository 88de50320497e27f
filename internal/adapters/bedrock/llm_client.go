package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

// Client is an implementation of the core.LLMClient interface using Amazon
// Bedrock.
type Client struct {
	client  *bedrockruntime.Client
	modelID string
	topP    float32
	logger  *zap.Logger
}

// NewClient creates a new Bedrock completion client.
func NewClient(client *bedrockruntime.Client, modelID string, topP float32, logger *zap.Logger) *Client {
	return &Client{
		client:  client,
		modelID: modelID,
		topP:    topP,
		logger:  logger,
	}
}

func (c *Client) isAnthropicModel() bool {
	return strings.HasPrefix(c.modelID, "anthropic.")
}

func (c *Client) isAmazonTitanModel() bool {
	return strings.HasPrefix(c.modelID, "amazon.titan")
}

// Complete sends a system role and a user prompt to the model and returns
// the raw response text.
func (c *Client) Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float32) (string, error) {
	var payload []byte
	var err error

	switch {
	case c.isAnthropicModel():
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":               fmt.Sprintf("%s\n\nHuman: %s\n\nAssistant:", system, prompt),
			"max_tokens_to_sample": maxTokens,
			"temperature":          temperature,
			"top_p":                c.topP,
		})
	case c.isAmazonTitanModel():
		payload, err = json.Marshal(map[string]interface{}{
			"inputText": system + "\n\n" + prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": maxTokens,
				"temperature":   temperature,
				"topP":          c.topP,
			},
		})
	default:
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":      system + "\n\n" + prompt,
			"max_tokens":  maxTokens,
			"temperature": temperature,
			"top_p":       c.topP,
		})
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	c.logger.Debug("Bedrock completion received",
		zap.String("model", c.modelID))

	return c.extractText(resp.Body)
}

// extractText pulls the completion text out of the model-specific response
// body.
func (c *Client) extractText(body []byte) (string, error) {
	if c.isAnthropicModel() {
		var claudeResp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &claudeResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Claude response: %w", err)
		}
		return claudeResp.Completion, nil
	}

	if c.isAmazonTitanModel() {
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &titanResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Titan response: %w", err)
		}
		if len(titanResp.Results) == 0 {
			return "", fmt.Errorf("empty response from Titan model")
		}
		return titanResp.Results[0].OutputText, nil
	}

	var genericResp struct {
		Output   string `json:"output"`
		Text     string `json:"text"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &genericResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal generic response: %w", err)
	}
	switch {
	case genericResp.Output != "":
		return genericResp.Output, nil
	case genericResp.Text != "":
		return genericResp.Text, nil
	case genericResp.Response != "":
		return genericResp.Response, nil
	}
	return string(body), nil
}
