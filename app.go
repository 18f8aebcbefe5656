package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"modual-backend/internal/bundle"
	"modual-backend/internal/cache"
	"modual-backend/internal/docs"
	"modual-backend/internal/domain"
	"modual-backend/internal/env"
	"modual-backend/internal/handler"
	"modual-backend/internal/logging"
	"modual-backend/internal/product"
	"modual-backend/internal/remote"
	csvrepo "modual-backend/internal/repository/csv"
	sqliterepo "modual-backend/internal/repository/sqlite"
	"modual-backend/internal/routes"
	"modual-backend/internal/service"
)

// Cache-Schlüssel der beiden Bundles.
const (
	productsCacheKey = "produkte_cache"
	docsCacheKey     = "wissensdatenbank_cache"
)

const userAgent = "modual-backend/1.0"

// app hält alle verdrahteten Komponenten eines Prozesses.
type app struct {
	cfg    env.Config
	logger *zap.Logger
	store  cache.Store

	installers *service.InstallerService
	products   *service.ProductService
	docs       *service.DocsService

	closers []func()
	// background hält Close zurück, bis laufende Hintergrundladevorgänge fertig sind.
	background sync.WaitGroup
}

func newApp() (*app, error) {
	cfg := env.MustLoad()

	logger, syncLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, closers: []func(){syncLog}}

	logger.Info("konfiguration geladen",
		zap.String("server_addr", cfg.ServerAddr),
		zap.Float64("rate_limit", cfg.RateLimit),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.Duration("cache_dauer", cfg.CacheDuration),
		zap.Duration("abruf_timeout", cfg.FetchTimeout),
	)

	if err := a.initStore(); err != nil {
		a.Close()
		return nil, err
	}

	repo, err := csvrepo.NewInstallerRepository(cfg.InstallersCSVPath, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	postal, err := csvrepo.LoadPostalCodes(cfg.PostalCodesCSVPath, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.installers = service.NewInstallerService(repo, postal, logger)

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}

	productLog := logger.Named("produkte")
	productLoader := bundle.NewLoader[[]domain.Product]("produkte",
		a.newCache(productsCacheKey, productLog),
		remote.NewClient(cfg.ProductsAPIURL, remote.WithHTTPClient(httpClient), remote.WithUserAgent(userAgent)),
		product.NewDecoder(productLog).Decode,
		productLog,
	)
	a.products = service.NewProductService(productLoader, productLog)

	docsLog := logger.Named("docs")
	docsLoader := bundle.NewLoader[domain.DocsBundle]("docs",
		a.newCache(docsCacheKey, docsLog),
		remote.NewClient(cfg.DocsAPIURL, remote.WithHTTPClient(httpClient), remote.WithUserAgent(userAgent)),
		docs.NewDecoder(docsLog).Decode,
		docsLog,
	)
	a.docs = service.NewDocsService(docsLoader, docsLog)

	return a, nil
}

// initStore wählt je nach CACHE_BACKEND den Speicher der Cache-Einträge.
func (a *app) initStore() error {
	switch a.cfg.CacheBackend {
	case "memory":
		a.store = cache.NewMemoryStore()
	case "sqlite":
		s, err := sqliterepo.NewCacheStore(a.cfg.CacheDSN, a.logger)
		if err != nil {
			return fmt.Errorf("sqlite-cache konnte nicht geöffnet werden: %w", err)
		}
		a.store = s
		a.closers = append(a.closers, func() { _ = s.Close() })
	default:
		return fmt.Errorf("unbekanntes cache-backend %q: %w", a.cfg.CacheBackend, domain.ErrInvalidInput)
	}
	return nil
}

func (a *app) newCache(key string, logger *zap.Logger) *cache.Cache {
	return cache.New(a.store, key, logger, cache.WithDuration(a.cfg.CacheDuration))
}

func (a *app) handlers() routes.Handlers {
	return routes.Handlers{
		Installers: handler.NewInstallerHandler(a.installers, a.logger),
		Products:   handler.NewProductHandler(a.products, a.logger),
		Docs:       handler.NewDocsHandler(a.docs, a.logger),
	}
}

// startWarmup lädt beide Bundles im Hintergrund. Close wartet darauf.
func (a *app) startWarmup(ctx context.Context) {
	a.background.Add(1)
	go func() {
		defer a.background.Done()
		a.warmup(ctx)
	}()
}

// warmup lädt beide Bundles parallel in den Cache.
func (a *app) warmup(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, _, err := a.products.Products(ctx, false); err != nil {
			a.logger.Warn("vorladen der produkte fehlgeschlagen", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if _, _, err := a.docs.Overview(ctx, false); err != nil {
			a.logger.Warn("vorladen der wissensdatenbank fehlgeschlagen", zap.Error(err))
		}
	}()
	wg.Wait()
	a.logger.Info("vorladen abgeschlossen")
}

// Close wartet auf Hintergrundladevorgänge und schliesst danach die
// Ressourcen in umgekehrter Reihenfolge.
func (a *app) Close() {
	a.background.Wait()
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
