package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// SQLiteStore is a SQLite implementation of the ScanStore interface.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (and if necessary initializes) a SQLite scan store.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scan_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			caller_id TEXT NOT NULL,
			email_subject TEXT,
			is_phishing BOOLEAN,
			confidence REAL,
			scanned_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_caller_scanned ON scan_history(caller_id, scanned_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// RecordScan persists the outcome of one scan.
func (s *SQLiteStore) RecordScan(ctx context.Context, rec *core.ScanRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scan_history (caller_id, email_subject, is_phishing, confidence, scanned_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.CallerID, rec.Subject, rec.IsPhishing, rec.Confidence, rec.ScannedAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to insert scan record: %w", err)
	}
	return nil
}

// ScanCount returns how many scans the caller has recorded since the given
// time.
func (s *SQLiteStore) ScanCount(ctx context.Context, callerID string, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM scan_history
		WHERE caller_id = ? AND scanned_at >= ?
	`, callerID, since.Format(time.RFC3339)).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count scans: %w", err)
	}
	return count, nil
}

// Stop closes the database connection.
func (s *SQLiteStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
