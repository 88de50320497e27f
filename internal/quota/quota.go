// Package quota enforces per-caller scan limits on top of the scan store.
package quota

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// Checker implements core.QuotaChecker by counting scans recorded in the
// current calendar month. A limit of zero or less means unlimited.
type Checker struct {
	store  core.ScanStore
	limit  int
	logger *zap.Logger
}

// NewChecker creates a quota checker backed by the given store.
func NewChecker(store core.ScanStore, limit int, logger *zap.Logger) *Checker {
	return &Checker{
		store:  store,
		limit:  limit,
		logger: logger,
	}
}

// MayScan reports whether the caller still has scans left this month.
func (c *Checker) MayScan(ctx context.Context, callerID string) (bool, error) {
	if c.limit <= 0 {
		return true, nil
	}

	used, err := c.store.ScanCount(ctx, callerID, monthStart(time.Now().UTC()))
	if err != nil {
		return false, fmt.Errorf("failed to read scan usage: %w", err)
	}

	remaining := c.limit - used
	if remaining <= 0 {
		c.logger.Debug("Caller out of quota",
			zap.String("caller", callerID),
			zap.Int("used", used),
			zap.Int("limit", c.limit))
		return false, nil
	}
	return true, nil
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
