package gateway

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// CliGateway runs one analysis and prints the result to stdout.
type CliGateway struct {
	service *core.AnalyzerService
	logger  *zap.Logger
	verbose bool
}

// NewCliGateway creates a new CLI gateway.
func NewCliGateway(service *core.AnalyzerService, logger *zap.Logger, verbose bool) (*CliGateway, error) {
	return &CliGateway{
		service: service,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// ProcessEmail analyzes an email and displays the results.
func (g *CliGateway) ProcessEmail(ctx context.Context, callerID string, email core.EmailContent) (*core.PhishingAnalysis, error) {
	g.logger.Debug("Processing email", zap.String("sender", email.Sender))

	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", email.Sender)
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.Body))

	if g.verbose {
		preview := email.Body
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nBody preview:\n%s\n", preview)
	}

	fmt.Printf("\n=== Analysis ===\n")
	startTime := time.Now()
	analysis, err := g.service.Analyze(ctx, callerID, email)
	if err != nil {
		g.logger.Error("Failed to analyze email", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		return nil, err
	}
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Is phishing: %t\n", analysis.IsPhishing)
	fmt.Printf("Confidence: %.4f\n", analysis.Confidence)
	if len(analysis.RiskFactors) > 0 {
		fmt.Printf("Risk factors:\n")
		for _, factor := range analysis.RiskFactors {
			fmt.Printf("  - %s\n", factor)
		}
	}
	for _, finding := range analysis.SuspiciousURLs {
		if !finding.IsSuspicious {
			continue
		}
		fmt.Printf("Suspicious URL: %s\n", finding.URL)
		for _, reason := range finding.Reasons {
			fmt.Printf("    %s\n", reason)
		}
	}
	fmt.Printf("Summary: %s\n", analysis.Summary)
	fmt.Printf("Processing time: %v\n", duration)

	return analysis, nil
}

// Start is a no-op for the CLI gateway.
func (g *CliGateway) Start() error {
	return nil
}

// Stop is a no-op for the CLI gateway.
func (g *CliGateway) Stop() error {
	return nil
}
