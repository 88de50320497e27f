package openai

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/config"
	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// Factory creates new instances of the OpenAI client.
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for OpenAI client instances.
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a new OpenAI-backed completion client.
func (f *Factory) CreateClient() (core.LLMClient, error) {
	openaiCfg := f.cfg.GetOpenAI()
	if openaiCfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}
	return NewClient(openaiCfg.APIKey, openaiCfg.ModelName, f.logger), nil
}
