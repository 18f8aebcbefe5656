package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// CacheStore implementiert cache.Store auf einer SQLite-Tabelle und überlebt
// damit Neustarts des Servers.
type CacheStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewCacheStore öffnet die SQLite-Datenbank unter dsn, erstellt das
// Schema und gibt einen einsatzbereiten Speicher zurück.
func NewCacheStore(dsn string, logger *zap.Logger) (*CacheStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite öffnen: %w", err)
	}
	// Jede Verbindung auf ":memory:" wäre eine eigene, leere Datenbank.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("tabelle erstellen: %w", err)
	}

	logger.Info("sqlite-cache initialisiert", zap.String("dsn", dsn))
	return &CacheStore{db: db, now: time.Now}, nil
}

// Close schließt die zugrunde liegende Datenbankverbindung.
func (s *CacheStore) Close() error {
	return s.db.Close()
}

// Get liest den Wert zu key. ok ist false, wenn es keinen Eintrag gibt.
func (s *CacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM cache_entries WHERE key = ?", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("abfrage cache %q: %w", key, err)
	}
	return value, true, nil
}

// Set legt den Wert zu key an oder überschreibt ihn.
func (s *CacheStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("cache %q schreiben: %w", key, err)
	}
	return nil
}

// Delete entfernt den Eintrag zu key. Ein fehlender Eintrag ist kein Fehler.
func (s *CacheStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("cache %q löschen: %w", key, err)
	}
	return nil
}

// Keys gibt alle belegten Schlüssel sortiert zurück.
func (s *CacheStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM cache_entries ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("abfrage: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("zeile lesen: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}
