package gemini

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/config"
	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// Factory creates new instances of the Gemini client.
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for Gemini client instances.
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a new Gemini-backed completion client.
func (f *Factory) CreateClient() (core.LLMClient, error) {
	geminiCfg := f.cfg.GetGemini()
	if geminiCfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not configured")
	}
	return NewClient(context.Background(), geminiCfg.APIKey, geminiCfg.ModelName, f.logger)
}
