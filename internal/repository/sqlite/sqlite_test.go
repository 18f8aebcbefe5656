package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"modual-backend/internal/cache"
)

func testLogger() *zap.Logger {
	l, _ := zap.NewDevelopment()
	return l
}

func newStore(t *testing.T) *CacheStore {
	t.Helper()
	s, err := NewCacheStore(":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetSetDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, ok, err := s.Get(ctx, "produkte_cache")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "produkte_cache", []byte(`{"data":[1]}`)))
	v, ok, err := s.Get(ctx, "produkte_cache")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"data":[1]}`, string(v))

	require.NoError(t, s.Set(ctx, "produkte_cache", []byte(`{"data":[2]}`)))
	v, _, _ = s.Get(ctx, "produkte_cache")
	assert.Equal(t, `{"data":[2]}`, string(v), "set überschreibt")

	require.NoError(t, s.Delete(ctx, "produkte_cache"))
	_, ok, _ = s.Get(ctx, "produkte_cache")
	assert.False(t, ok)

	assert.NoError(t, s.Delete(ctx, "produkte_cache"), "löschen ist idempotent")
}

func TestKeys(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Set(ctx, "wissensdatenbank_cache", []byte("{}")))
	require.NoError(t, s.Set(ctx, "produkte_cache", []byte("{}")))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"produkte_cache", "wissensdatenbank_cache"}, keys)
}

func TestDateiUeberlebtNeustart(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "cache.db")

	s, err := NewCacheStore(dsn, testLogger())
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("wert")))
	require.NoError(t, s.Close())

	s, err = NewCacheStore(dsn, testLogger())
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "wert", string(v))
}

func TestGeschlossenerSpeicherMeldetFehler(t *testing.T) {
	s, err := NewCacheStore(":memory:", testLogger())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = s.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, s.Set(context.Background(), "k", []byte("v")))
}

// Der SQLite-Speicher trägt den Cache inklusive Ablauf.
func TestAlsCacheStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := cache.New(newStore(t), "produkte_cache", testLogger(), cache.WithClock(func() time.Time { return now }))

	require.NoError(t, c.Set(ctx, []byte(`[{"product_name":"A"}]`)))

	entry, ok := c.Fresh(ctx)
	require.True(t, ok)
	assert.JSONEq(t, `[{"product_name":"A"}]`, string(entry.Data))
	assert.Equal(t, now.UnixMilli(), entry.Timestamp)

	now = now.Add(2 * time.Hour)
	_, ok = c.Fresh(ctx)
	assert.False(t, ok)
	_, ok = c.Stale(ctx)
	assert.True(t, ok)
}
