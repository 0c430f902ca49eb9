package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the current audit database schema version.
const SchemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS audit_entries (
    id TEXT PRIMARY KEY,
    request_id TEXT NOT NULL,
    recorded_at TIMESTAMP NOT NULL,
    method TEXT NOT NULL,
    path TEXT NOT NULL,
    status INTEGER NOT NULL,
    client_key TEXT NOT NULL,
    latency_ms INTEGER NOT NULL,
    user_agent TEXT
);

CREATE INDEX IF NOT EXISTS idx_audit_recorded_at ON audit_entries(recorded_at);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

// SQLiteConfig contains configuration for the SQLite audit store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/audit.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore is a durable audit store backed by SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the audit database at the configured
// path and initializes the schema.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "audit.sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite audit store initialized",
		"path", config.Path,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and pragmas.
func (s *SQLiteStore) initialize() error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create audit schema: %w", err)
	}

	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO schema_version (version) VALUES (?)", SchemaVersion,
	); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return nil
}

// Record persists an entry to the database.
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (
			id, request_id, recorded_at, method, path, status, client_key, latency_ms, user_agent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID, entry.RequestID, entry.Time, entry.Method, entry.Path,
		entry.Status, entry.ClientKey, entry.LatencyMs, entry.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to store audit entry: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, request_id, recorded_at, method, path, status, client_key, latency_ms, user_agent
		FROM audit_entries
		ORDER BY recorded_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		var entry Entry
		var userAgent sql.NullString
		if err := rows.Scan(
			&entry.ID, &entry.RequestID, &entry.Time, &entry.Method, &entry.Path,
			&entry.Status, &entry.ClientKey, &entry.LatencyMs, &userAgent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.UserAgent = userAgent.String
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}

	return entries, nil
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_entries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return count, nil
}

// DeleteOlderThan removes entries recorded before the cutoff.
func (s *SQLiteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM audit_entries WHERE recorded_at < ?", cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete audit entries: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted entries: %w", err)
	}

	return deleted, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
