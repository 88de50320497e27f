package bedrock

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/config"
	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// Factory creates new instances of the Bedrock client.
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for Bedrock client instances.
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a new Bedrock-backed completion client.
func (f *Factory) CreateClient() (core.LLMClient, error) {
	bedrockCfg := f.cfg.GetBedrock()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(bedrockCfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	runtime := bedrockruntime.NewFromConfig(awsCfg)
	return NewClient(runtime, bedrockCfg.ModelID, bedrockCfg.TopP, f.logger), nil
}
