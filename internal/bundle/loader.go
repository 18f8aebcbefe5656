package bundle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"modual-backend/internal/cache"
)

// Source gibt an, woher ein geladenes Bundle stammt.
type Source string

const (
	SourceCache      Source = "cache"
	SourceNetwork    Source = "netzwerk"
	SourceStaleCache Source = "veralteter-cache"
	SourceNone       Source = "keine"
)

// Fetcher liefert den Rohinhalt eines Bundles aus der entfernten API.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Decoder parst und validiert einen Rohinhalt. Ein Fehler bedeutet, dass
// die Daten unbrauchbar sind; Teilerfolge gibt es nicht.
type Decoder[T any] func(raw []byte) (T, error)

// Result ist das Ergebnis eines Ladevorgangs. Err trägt den Abruffehler auch
// dann, wenn auf den veralteten Cache zurückgegriffen wurde.
type Result[T any] struct {
	Data      T
	Source    Source
	FetchedAt time.Time
	Err       error
}

// OK meldet, ob Daten vorliegen.
func (r Result[T]) OK() bool {
	return r.Source != SourceNone
}

// Stale meldet, ob die Daten aus dem abgelaufenen Cache stammen.
func (r Result[T]) Stale() bool {
	return r.Source == SourceStaleCache
}

// errSkip signalisiert, dass eine Strategie nichts beizutragen hat.
var errSkip = errors.New("strategie übersprungen")

type strategy[T any] struct {
	source Source
	run    func(ctx context.Context) (T, time.Time, error)
}

// Loader lädt ein Bundle über die Kette frischer Cache → Netzwerk →
// veralteter Cache → leer. Pro Loader läuft höchstens ein Ladevorgang
// gleichzeitig; weitere Aufrufer teilen sich dessen Ergebnis.
type Loader[T any] struct {
	name    string
	cache   *cache.Cache
	fetcher Fetcher
	decode  Decoder[T]
	logger  *zap.Logger
	now     func() time.Time
	group   singleflight.Group
}

// NewLoader gibt einen Loader für das Bundle name zurück.
func NewLoader[T any](name string, c *cache.Cache, fetcher Fetcher, decode Decoder[T], logger *zap.Logger) *Loader[T] {
	return &Loader[T]{
		name:    name,
		cache:   c,
		fetcher: fetcher,
		decode:  decode,
		logger:  logger.With(zap.String("bundle", name)),
		now:     time.Now,
	}
}

// Name gibt den Bundle-Typ zurück.
func (l *Loader[T]) Name() string {
	return l.name
}

// flight ist das Ergebnis eines Ladevorgangs samt Art des Aufrufs.
type flight[T any] struct {
	res    Result[T]
	forced bool
}

// Load liefert das Bundle. Bei forceRefresh wird der Cache vorher geleert.
// Load gibt nie einen Fehler zurück; Fehlschläge stehen in Result.Err.
//
// Pro Loader läuft höchstens ein Ladevorgang. Ein erzwungener Aufruf, der
// auf einen normalen Ladevorgang trifft, wartet dessen Ende ab und lädt
// danach selbst.
func (l *Loader[T]) Load(ctx context.Context, forceRefresh bool) Result[T] {
	// Der geteilte Abruf darf nicht am Kontext des ersten Aufrufers hängen.
	detached := context.WithoutCancel(ctx)
	for {
		v, _, shared := l.group.Do(l.name, func() (any, error) {
			return flight[T]{res: l.load(detached, forceRefresh), forced: forceRefresh}, nil
		})
		f := v.(flight[T])
		if forceRefresh && !f.forced {
			if err := ctx.Err(); err != nil {
				return Result[T]{Source: SourceNone, Err: err}
			}
			l.logger.Debug("normaler ladevorgang beendet, erzwungenes neuladen folgt")
			continue
		}
		if shared {
			l.logger.Debug("laufenden ladevorgang mitbenutzt")
		}
		return f.res
	}
}

// ClearCache entfernt den Cache-Eintrag des Bundles.
func (l *Loader[T]) ClearCache(ctx context.Context) {
	l.cache.Clear(ctx)
}

func (l *Loader[T]) load(ctx context.Context, forceRefresh bool) Result[T] {
	if forceRefresh {
		l.logger.Info("neuladen erzwungen, cache wird geleert")
		l.cache.Clear(ctx)
	}

	strategies := []strategy[T]{
		{source: SourceCache, run: l.fromFreshCache},
		{source: SourceNetwork, run: l.fromNetwork},
		{source: SourceStaleCache, run: l.fromStaleCache},
	}

	var failure error
	for _, s := range strategies {
		data, at, err := s.run(ctx)
		if err == nil {
			if failure != nil {
				l.logger.Warn("veralteter cache als rückfallebene verwendet",
					zap.Time("stand", at),
					zap.Error(failure),
				)
			} else {
				l.logger.Info("bundle geladen", zap.String("quelle", string(s.source)))
			}
			return Result[T]{Data: data, Source: s.source, FetchedAt: at, Err: failure}
		}
		if !errors.Is(err, errSkip) {
			failure = err
			l.logger.Error("bundle laden fehlgeschlagen",
				zap.String("quelle", string(s.source)),
				zap.Error(err),
			)
		}
	}

	if failure == nil {
		failure = fmt.Errorf("bundle %s: keine daten verfügbar", l.name)
	}
	l.logger.Error("keine daten verfügbar, auch kein cache", zap.Error(failure))
	return Result[T]{Source: SourceNone, Err: failure}
}

func (l *Loader[T]) fromFreshCache(ctx context.Context) (T, time.Time, error) {
	var zero T
	entry, ok := l.cache.Fresh(ctx)
	if !ok {
		return zero, time.Time{}, errSkip
	}
	data, err := l.decode(entry.Data)
	if err != nil {
		l.logger.Warn("cache-eintrag ungültig, wird ignoriert", zap.Error(err))
		return zero, time.Time{}, errSkip
	}
	return data, entry.CapturedAt(), nil
}

func (l *Loader[T]) fromNetwork(ctx context.Context) (T, time.Time, error) {
	var zero T
	l.logger.Info("bundle wird von der api abgerufen")
	raw, err := l.fetcher.Fetch(ctx)
	if err != nil {
		return zero, time.Time{}, err
	}
	data, err := l.decode(raw)
	if err != nil {
		return zero, time.Time{}, err
	}
	if err := l.cache.Set(ctx, raw); err != nil {
		// Ein Speicherfehler verhindert das Laden nicht.
		l.logger.Warn("bundle konnte nicht gecacht werden", zap.Error(err))
	}
	return data, l.now(), nil
}

func (l *Loader[T]) fromStaleCache(ctx context.Context) (T, time.Time, error) {
	var zero T
	entry, ok := l.cache.Stale(ctx)
	if !ok {
		return zero, time.Time{}, errSkip
	}
	data, err := l.decode(entry.Data)
	if err != nil {
		l.logger.Warn("veralteter cache-eintrag ungültig", zap.Error(err))
		return zero, time.Time{}, errSkip
	}
	return data, entry.CapturedAt(), nil
}
