package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/core"
	"github.com/vladimirvalcourt/phishguard/internal/di"
	"github.com/vladimirvalcourt/phishguard/internal/ports"
)

func main() {
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected.
func run(
	logger *zap.Logger,
	mailGateway ports.MailGateway,
	llmClient core.LLMClient,
	scanStore core.ScanStore,
) error {
	defer logger.Sync()

	if err := mailGateway.Start(); err != nil {
		logger.Fatal("Failed to start mail gateway", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	if err := mailGateway.Stop(); err != nil {
		logger.Error("Failed to stop mail gateway", zap.Error(err))
	}

	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}

	if stopper, ok := scanStore.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
