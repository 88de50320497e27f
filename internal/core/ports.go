package core

import (
	"context"
	"time"
)

// LLMClient is the narrow text-completion capability used for second
// opinions. Implementations are interchangeable and treated as unreliable.
type LLMClient interface {
	// Complete sends a system role and a user prompt to the model and
	// returns the raw response text.
	Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float32) (string, error)
}

// QuotaChecker decides whether a caller may run a scan right now.
type QuotaChecker interface {
	MayScan(ctx context.Context, callerID string) (bool, error)
}

// ScanStore records completed scans and answers usage queries.
type ScanStore interface {
	// RecordScan persists the outcome of one scan.
	RecordScan(ctx context.Context, rec *ScanRecord) error

	// ScanCount returns how many scans the caller has recorded since the
	// given time.
	ScanCount(ctx context.Context, callerID string, since time.Time) (int, error)
}
