package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/adapters/bedrock"
	"github.com/vladimirvalcourt/phishguard/internal/adapters/gemini"
	"github.com/vladimirvalcourt/phishguard/internal/adapters/openai"
	"github.com/vladimirvalcourt/phishguard/internal/config"
	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// LLMFactory creates completion clients for the configured provider.
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory.
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a completion client based on the configuration. A nil
// client (provider "none", or a missing API key) disables second opinions
// without failing startup; the analyzer then runs heuristics only.
func (f *LLMFactory) CreateClient() (core.LLMClient, error) {
	switch f.cfg.GetLLM().Provider {
	case "none", "":
		f.logger.Info("External model disabled, second opinions will be skipped")
		return nil, nil
	case "openai":
		if f.cfg.GetOpenAI().APIKey == "" {
			f.logger.Warn("OpenAI API key not configured, second opinions will be skipped")
			return nil, nil
		}
		return openai.NewFactory(f.cfg, f.logger).CreateClient()
	case "gemini":
		if f.cfg.GetGemini().APIKey == "" {
			f.logger.Warn("Gemini API key not configured, second opinions will be skipped")
			return nil, nil
		}
		return gemini.NewFactory(f.cfg, f.logger).CreateClient()
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger).CreateClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", f.cfg.GetLLM().Provider)
	}
}
