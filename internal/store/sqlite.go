package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rpgo/dignity-planner/internal/domain"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	identity   TEXT NOT NULL,
	kind       TEXT NOT NULL,
	id         TEXT NOT NULL,
	body       TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	PRIMARY KEY (identity, kind, id)
)`

// SQLiteStore keeps snapshots as JSON documents in a single SQLite table.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// OpenSQLite opens (creating if needed) the database at dbPath and applies the schema
func OpenSQLite(ctx context.Context, dbPath string, log zerolog.Logger) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{
		db:   conn,
		path: dbPath,
		log:  log.With().Str("repository", "sqlite").Logger(),
	}
	if err := s.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the records table if it does not exist
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces every record of identity with the contents of snap in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, identity string, snap *domain.Snapshot) error {
	if err := ValidateIdentity(identity); err != nil {
		return err
	}
	AssignIDs(snap)
	records, err := decompose(snap)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE identity = ?`, identity); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (identity, kind, id, body, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, identity, r.kind, r.id, string(r.body), now); err != nil {
			return fmt.Errorf("failed to insert %s record %s: %w", r.kind, r.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	s.log.Debug().Str("identity", identity).Int("records", len(records)).Msg("snapshot saved")
	return nil
}

// Load rebuilds the snapshot of identity, or returns ErrNotFound.
func (s *SQLiteStore) Load(ctx context.Context, identity string) (*domain.Snapshot, error) {
	if err := ValidateIdentity(identity); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, id, body
		FROM records
		WHERE identity = ?
		ORDER BY rowid
	`, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []record
	for rows.Next() {
		var r record
		var body string
		if err := rows.Scan(&r.kind, &r.id, &body); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.body = []byte(body)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return assemble(records)
}

// Identities lists every identity with a stored snapshot
func (s *SQLiteStore) Identities(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT identity FROM records ORDER BY identity`)
	if err != nil {
		return nil, fmt.Errorf("failed to query identities: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
