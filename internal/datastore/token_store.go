package datastore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// TokenStore persists extraction results keyed by content hash and
// extractor identity, so unchanged files are not re-scanned between runs.
type TokenStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewTokenStore opens (creating if needed) the SQLite database at path and
// ensures the schema exists.
func NewTokenStore(path string, logger zerolog.Logger) (*TokenStore, error) {
	logger = logger.With().Str("component", "TokenStore").Logger()

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error().Err(err).Str("directory", dir).Msg("Failed to create token cache directory")
			return nil, fmt.Errorf("failed to create token cache directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", path, err)
	}
	// SQLite allows a single writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	store := &TokenStore{db: db, logger: logger}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Token cache opened")
	return store, nil
}

func (s *TokenStore) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS extracted_tokens (
			content_hash TEXT NOT NULL,
			extractor_id TEXT NOT NULL,
			tokens TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (content_hash, extractor_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_extracted_tokens_updated_at ON extracted_tokens(updated_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.logger.Error().Err(err).Msg("Failed to initialize token cache schema")
			return err
		}
	}
	return nil
}

// Get returns the cached tokens for the key, reporting whether they exist.
func (s *TokenStore) Get(ctx context.Context, contentHash, extractorID string) ([]string, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT tokens FROM extracted_tokens WHERE content_hash = ? AND extractor_id = ?`,
		contentHash, extractorID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached tokens: %w", err)
	}

	tokens := []string{}
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached tokens for %s: %w", contentHash, err)
	}
	return tokens, true, nil
}

// Put stores tokens for the key, replacing any previous entry.
func (s *TokenStore) Put(ctx context.Context, contentHash, extractorID string, tokens []string) error {
	if tokens == nil {
		tokens = []string{}
	}
	raw, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO extracted_tokens (content_hash, extractor_id, tokens, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(content_hash, extractor_id) DO UPDATE SET tokens = excluded.tokens, updated_at = excluded.updated_at`,
		contentHash, extractorID, string(raw), time.Now().UnixNano(),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("content_hash", contentHash).Msg("Failed to store tokens")
		return fmt.Errorf("failed to store tokens: %w", err)
	}
	return nil
}

// Prune deletes entries not written since before cutoff and returns how
// many were removed.
func (s *TokenStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM extracted_tokens WHERE updated_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune token cache: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}
	s.logger.Info().Int64("removed", n).Time("cutoff", cutoff).Msg("Pruned token cache")
	return n, nil
}

// Count returns the number of cached entries.
func (s *TokenStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM extracted_tokens`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cached entries: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *TokenStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
