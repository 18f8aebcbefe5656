package env

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultProductsAPIURL = "https://script.google.com/macros/s/AKfycbwrl8QQDJToFy6IWz8qVmJ8aQm3q33D4u2tv7ptuJV1TeQ-Sh9ck1gF32bU30KtdYU/exec"
	DefaultDocsAPIURL     = "https://script.google.com/macros/s/AKfycbze2YcwvdF3DkglLEPcPdnBiMN0RNRhR6e-Mzekl7rZO8Y-010EvS62dCtOELgIV4a2jQ/exec"
)

// Config enthält alle konfigurierbaren Werte der Anwendung, die über Umgebungsvariablen gesetzt werden können.
type Config struct {
	ServerAddr         string        // SERVER_ADDR – Adresse des HTTP-Servers (Standard: ":8081")
	RateLimit          float64       // RATE_LIMIT – Erlaubte Anfragen pro Sekunde (Standard: 100)
	ProductsAPIURL     string        // PRODUCTS_API_URL – Produkt-API
	DocsAPIURL         string        // DOCS_API_URL – Dokumentations-API
	FetchTimeout       time.Duration // FETCH_TIMEOUT – Zeitlimit pro API-Abruf (Standard: 15s)
	CacheBackend       string        // CACHE_BACKEND – "sqlite" oder "memory" (Standard: "sqlite")
	CacheDSN           string        // CACHE_DSN – Pfad der SQLite-Datei (Standard: "modual-cache.db")
	CacheDuration      time.Duration // CACHE_DURATION – Gültigkeit eines Cache-Eintrags (Standard: 1h)
	InstallersCSVPath  string        // INSTALLERS_CSV_PATH – leer: eingebettete Daten
	PostalCodesCSVPath string        // POSTAL_CODES_CSV_PATH – leer: eingebettete Daten
	LogLevel           string        // LOG_LEVEL – debug, info, warn, error (Standard: "info")
	LogFile            string        // LOG_FILE – zusätzliche rotierende Logdatei
	Warmup             bool          // WARMUP – Bundles beim Start laden (Standard: true)
}

// MustLoad liest die Konfiguration aus Umgebungsvariablen. Eine .env-Datei
// im Arbeitsverzeichnis wird vorher geladen, überschreibt aber keine bereits
// gesetzten Variablen.
func MustLoad() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("env: .env konnte nicht gelesen werden: " + err.Error())
	}
	return Config{
		ServerAddr:         getOr("SERVER_ADDR", ":8081"),
		RateLimit:          getFloatOr("RATE_LIMIT", 100),
		ProductsAPIURL:     getOr("PRODUCTS_API_URL", DefaultProductsAPIURL),
		DocsAPIURL:         getOr("DOCS_API_URL", DefaultDocsAPIURL),
		FetchTimeout:       getDurationOr("FETCH_TIMEOUT", 15*time.Second),
		CacheBackend:       strings.ToLower(getOr("CACHE_BACKEND", "sqlite")),
		CacheDSN:           getOr("CACHE_DSN", "modual-cache.db"),
		CacheDuration:      getDurationOr("CACHE_DURATION", time.Hour),
		InstallersCSVPath:  os.Getenv("INSTALLERS_CSV_PATH"),
		PostalCodesCSVPath: os.Getenv("POSTAL_CODES_CSV_PATH"),
		LogLevel:           getOr("LOG_LEVEL", "info"),
		LogFile:            os.Getenv("LOG_FILE"),
		Warmup:             getBoolOr("WARMUP", true),
	}
}

func getOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
