package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// MySQLStore is a MySQL implementation of the ScanStore interface.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore connects to MySQL and initializes the scan history table.
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scan_history (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			caller_id VARCHAR(255) NOT NULL,
			email_subject TEXT,
			is_phishing BOOLEAN,
			confidence FLOAT,
			scanned_at TIMESTAMP,
			INDEX idx_caller_scanned (caller_id, scanned_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// RecordScan persists the outcome of one scan.
func (s *MySQLStore) RecordScan(ctx context.Context, rec *core.ScanRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scan_history (caller_id, email_subject, is_phishing, confidence, scanned_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.CallerID, rec.Subject, rec.IsPhishing, rec.Confidence, rec.ScannedAt)

	if err != nil {
		return fmt.Errorf("failed to insert scan record: %w", err)
	}
	return nil
}

// ScanCount returns how many scans the caller has recorded since the given
// time.
func (s *MySQLStore) ScanCount(ctx context.Context, callerID string, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM scan_history
		WHERE caller_id = ? AND scanned_at >= ?
	`, callerID, since).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count scans: %w", err)
	}
	return count, nil
}

// Stop closes the database connection.
func (s *MySQLStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
