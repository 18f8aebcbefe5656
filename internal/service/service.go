package service

import (
	"context"
	"fmt"
	"time"

	"modual-backend/internal/bundle"
	"modual-backend/internal/domain"
)

// Loader liefert ein Bundle über die Cache-Kette. *bundle.Loader erfüllt es.
type Loader[T any] interface {
	Load(ctx context.Context, forceRefresh bool) bundle.Result[T]
	ClearCache(ctx context.Context)
}

// Meta beschreibt Herkunft und Stand geladener Daten.
type Meta struct {
	Source    bundle.Source
	FetchedAt time.Time
	// Warning ist der Abruffehler, wenn auf den veralteten Cache zurückgegriffen wurde.
	Warning error
}

// Stale meldet, ob die Daten aus dem abgelaufenen Cache stammen.
func (m Meta) Stale() bool {
	return m.Source == bundle.SourceStaleCache
}

// load führt einen Ladevorgang aus und übersetzt einen vollständigen
// Fehlschlag in ErrUnavailable, das die Fehlerart weiter trägt.
func load[T any](ctx context.Context, l Loader[T], refresh bool) (T, Meta, error) {
	res := l.Load(ctx, refresh)
	if !res.OK() {
		var zero T
		return zero, Meta{Source: res.Source}, fmt.Errorf("%w: %w", domain.ErrUnavailable, res.Err)
	}
	meta := Meta{Source: res.Source, FetchedAt: res.FetchedAt}
	if res.Stale() {
		meta.Warning = res.Err
	}
	return res.Data, meta, nil
}
