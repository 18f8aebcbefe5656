package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"modual-backend/internal/domain"
)

// DefaultDuration ist die Zeitspanne, in der ein Eintrag als frisch gilt.
const DefaultDuration = time.Hour

// Store ist ein einfacher Schlüssel-Wert-Speicher für serialisierte Einträge.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Entry ist der persistierte Eintrag im Format {data, timestamp}.
// Timestamp sind Unix-Millisekunden.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// CapturedAt gibt den Erfassungszeitpunkt zurück.
func (e Entry) CapturedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Age gibt das Alter des Eintrags relativ zu now zurück.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.CapturedAt())
}

// Empty meldet, ob der Eintrag keine verwertbaren Daten trägt.
func (e Entry) Empty() bool {
	d := bytes.TrimSpace(e.Data)
	switch string(d) {
	case "", "null", "[]", "{}":
		return true
	}
	return false
}

// Option konfiguriert einen Cache.
type Option func(*Cache)

// WithClock ersetzt die Uhr, vor allem für Tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDuration setzt die Frischedauer.
func WithDuration(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// Cache verwaltet genau einen Schlüssel pro Bundle-Typ. Speicherfehler werden
// protokolliert und wie ein fehlender Eintrag behandelt.
type Cache struct {
	store  Store
	key    string
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// New legt einen Cache für key auf store an.
func New(store Store, key string, logger *zap.Logger, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		key:    key,
		ttl:    DefaultDuration,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key gibt den Speicherschlüssel zurück.
func (c *Cache) Key() string {
	return c.key
}

// Fresh liefert den Eintrag nur, wenn er jünger als die Frischedauer und nicht leer ist.
func (c *Cache) Fresh(ctx context.Context) (Entry, bool) {
	entry, ok := c.read(ctx)
	if !ok || entry.Empty() {
		return Entry{}, false
	}
	age := entry.Age(c.now())
	if age >= c.ttl {
		c.logger.Info("cache abgelaufen",
			zap.String("schluessel", c.key),
			zap.Duration("alter", age),
		)
		return Entry{}, false
	}
	c.logger.Debug("cache-treffer",
		zap.String("schluessel", c.key),
		zap.Duration("alter", age),
	)
	return entry, true
}

// Stale liefert einen vorhandenen Eintrag unabhängig von seinem Alter.
// Nur als letzter Ausweg nach einem fehlgeschlagenen Abruf gedacht.
func (c *Cache) Stale(ctx context.Context) (Entry, bool) {
	entry, ok := c.read(ctx)
	if !ok || entry.Empty() {
		return Entry{}, false
	}
	return entry, true
}

// Set schreibt data mit dem aktuellen Zeitstempel.
func (c *Cache) Set(ctx context.Context, data []byte) error {
	payload, err := json.Marshal(Entry{Data: data, Timestamp: c.now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("cache-eintrag kodieren: %v: %w", err, domain.ErrStorage)
	}
	if err := c.store.Set(ctx, c.key, payload); err != nil {
		return fmt.Errorf("cache %s schreiben: %v: %w", c.key, err, domain.ErrStorage)
	}
	c.logger.Debug("cache geschrieben", zap.String("schluessel", c.key), zap.Int("bytes", len(data)))
	return nil
}

// Clear entfernt den Eintrag. Mehrfaches Aufrufen ist unschädlich; Fehler
// werden nur protokolliert.
func (c *Cache) Clear(ctx context.Context) {
	if err := c.store.Delete(ctx, c.key); err != nil {
		c.logger.Error("cache leeren fehlgeschlagen",
			zap.String("schluessel", c.key),
			zap.Error(fmt.Errorf("%v: %w", err, domain.ErrStorage)),
		)
		return
	}
	c.logger.Info("cache geleert", zap.String("schluessel", c.key))
}

func (c *Cache) read(ctx context.Context) (Entry, bool) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.logger.Error("cache lesen fehlgeschlagen",
			zap.String("schluessel", c.key),
			zap.Error(fmt.Errorf("%v: %w", err, domain.ErrStorage)),
		)
		return Entry{}, false
	}
	if !ok {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.logger.Warn("cache-eintrag unlesbar",
			zap.String("schluessel", c.key),
			zap.Error(err),
		)
		return Entry{}, false
	}
	return entry, true
}
