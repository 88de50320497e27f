package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/adapters/gateway"
	"github.com/vladimirvalcourt/phishguard/internal/config"
	"github.com/vladimirvalcourt/phishguard/internal/core"
	"github.com/vladimirvalcourt/phishguard/internal/ports"
)

// GatewayFactory creates mail gateways based on configuration.
type GatewayFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.AnalyzerService
}

// NewGatewayFactory creates a new gateway factory.
func NewGatewayFactory(cfg *config.Config, logger *zap.Logger, service *core.AnalyzerService) *GatewayFactory {
	return &GatewayFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateMailGateway creates a mail gateway based on the configuration.
func (f *GatewayFactory) CreateMailGateway() (ports.MailGateway, error) {
	switch gatewayType := f.cfg.GetString("server.gateway_type"); gatewayType {
	case "smtp":
		return gateway.NewSMTPGateway(
			f.service,
			f.logger,
			f.cfg.GetString("server.listen_address"),
			f.cfg.GetBool("server.block_phishing"),
			f.cfg.GetString("server.headers.flag"),
			f.cfg.GetString("server.headers.confidence"),
			f.cfg.GetString("server.headers.summary"),
			f.cfg.GetString("server.relay.address"),
			f.cfg.GetInt("server.relay.port"),
			f.cfg.GetBool("server.relay.enabled"),
		), nil
	case "cli":
		return gateway.NewCliGateway(f.service, f.logger, f.cfg.GetString("logging.level") == "debug")
	default:
		return nil, fmt.Errorf("unsupported gateway type: %s", gatewayType)
	}
}
