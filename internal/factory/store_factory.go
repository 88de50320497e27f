package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/adapters/store"
	"github.com/vladimirvalcourt/phishguard/internal/config"
	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// StoreFactory creates scan stores based on configuration.
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory.
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateScanStore creates a scan store based on the configuration.
func (f *StoreFactory) CreateScanStore() (core.ScanStore, error) {
	switch storeType := f.cfg.GetString("storage.type"); storeType {
	case "memory":
		return store.NewMemoryStore(f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("storage.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(sqlitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(f.cfg.GetString("storage.mysql_dsn"), f.logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storeType)
	}
}
