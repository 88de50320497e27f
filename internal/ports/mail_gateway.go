package ports

import (
	"context"

	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// MailGateway is a serving surface that feeds emails into the analyzer.
type MailGateway interface {
	// ProcessEmail analyzes a single email on behalf of a caller.
	ProcessEmail(ctx context.Context, callerID string, email core.EmailContent) (*core.PhishingAnalysis, error)

	// Start starts the gateway.
	Start() error

	// Stop stops the gateway.
	Stop() error
}
