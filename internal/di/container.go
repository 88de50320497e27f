package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/config"
	"github.com/vladimirvalcourt/phishguard/internal/core"
	"github.com/vladimirvalcourt/phishguard/internal/factory"
	"github.com/vladimirvalcourt/phishguard/internal/logging"
	"github.com/vladimirvalcourt/phishguard/internal/ports"
	"github.com/vladimirvalcourt/phishguard/internal/quota"
	"github.com/vladimirvalcourt/phishguard/internal/utils"
)

// BuildContainer creates and configures a dependency injection container.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}

	// Register LLM client (may be nil when no provider is configured)
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateClient()
	}); err != nil {
		return nil, err
	}

	// Register scan store
	if err := container.Provide(func(f *factory.StoreFactory) (core.ScanStore, error) {
		return f.CreateScanStore()
	}); err != nil {
		return nil, err
	}

	// Register quota checker
	if err := container.Provide(func(cfg *config.Config, store core.ScanStore, logger *zap.Logger) core.QuotaChecker {
		if !cfg.GetBool("quota.enabled") {
			return nil
		}
		return quota.NewChecker(store, cfg.GetInt("quota.scan_limit"), logger)
	}); err != nil {
		return nil, err
	}

	// Register URL analyzer and feature extractor
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *core.URLAnalyzer {
		return core.NewURLAnalyzer(cfg.GetStringSlice("scoring.legitimate_domains"), logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewFeatureExtractor); err != nil {
		return nil, err
	}

	// Register risk scorer with the configured weight table
	if err := container.Provide(func(cfg *config.Config) (*core.RiskScorer, error) {
		return core.NewRiskScorer(cfg.GetWeights())
	}); err != nil {
		return nil, err
	}

	// Register second opinion adapter
	if err := container.Provide(newSecondOpinion); err != nil {
		return nil, err
	}

	// Register analyzer service
	if err := container.Provide(func(
		extractor *core.FeatureExtractor,
		scorer *core.RiskScorer,
		opinion *core.SecondOpinion,
		quotaChecker core.QuotaChecker,
		store core.ScanStore,
		logger *zap.Logger,
		cfg *config.Config,
	) *core.AnalyzerService {
		return core.NewAnalyzerService(extractor, scorer, opinion, quotaChecker, store, logger,
			cfg.GetStringSlice("scoring.trusted_sender_domains"))
	}); err != nil {
		return nil, err
	}

	// Register mail gateway
	if err := container.Provide(factory.NewGatewayFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.GatewayFactory) (ports.MailGateway, error) {
		return f.CreateMailGateway()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// newSecondOpinion wires the opinion adapter with the sampling parameters of
// whichever provider is active.
func newSecondOpinion(
	llm core.LLMClient,
	textProc *utils.TextProcessor,
	logger *zap.Logger,
	cfg *config.Config,
) (*core.SecondOpinion, error) {
	timeout, err := cfg.GetDuration("llm.timeout")
	if err != nil {
		return nil, err
	}

	maxTokens := cfg.GetInt("openai.max_tokens")
	temperature := float32(cfg.GetFloat64("openai.temperature"))
	maxBodySize := cfg.GetInt("openai.max_body_size")
	switch cfg.GetLLM().Provider {
	case "gemini":
		geminiCfg := cfg.GetGemini()
		maxTokens, temperature, maxBodySize = geminiCfg.MaxTokens, geminiCfg.Temperature, geminiCfg.MaxBodySize
	case "bedrock":
		bedrockCfg := cfg.GetBedrock()
		maxTokens, temperature, maxBodySize = bedrockCfg.MaxTokens, bedrockCfg.Temperature, bedrockCfg.MaxBodySize
	}

	return core.NewSecondOpinion(llm, textProc, logger, timeout, maxTokens, temperature, maxBodySize), nil
}
