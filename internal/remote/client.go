package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"modual-backend/internal/domain"
)

// maxBody begrenzt die gelesene Antwort auf 16 MegaByte.
const maxBody = 16 << 20

// Client ruft eine tabellenbasierte JSON-API per GET ab.
type Client struct {
	url        string
	httpClient *http.Client
	userAgent  string
}

// Option konfiguriert einen Client.
type Option func(*Client)

// WithHTTPClient ersetzt den HTTP-Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserAgent setzt den User-Agent-Header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient gibt einen Client für url zurück. Ohne WithHTTPClient wird
// http.DefaultClient verwendet; ein Timeout setzt nur der Aufrufer.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: http.DefaultClient,
		userAgent:  "modual-backend/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL gibt die abgefragte Adresse zurück.
func (c *Client) URL() string {
	return c.url
}

// Fetch lädt den Rohinhalt. Netzwerkfehler und Status ausserhalb 2xx liefern
// domain.ErrNetwork, HTML- oder andere Nicht-JSON-Antworten
// domain.ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("anfrage erstellen: %v: %w", err, domain.ErrNetwork)
	}
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(c.userAgent) != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("abruf %s: %w: %w", c.url, domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("http-status %d: %w", resp.StatusCode, domain.ErrNetwork)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("antwort lesen: %w: %w", domain.ErrNetwork, err)
	}

	if LooksLikeMarkup(body) {
		return nil, fmt.Errorf("api liefert HTML statt JSON, Bereitstellung der Apps-Script-Web-App prüfen "+
			"(doGet() muss JSON über ContentService zurückgeben): %w", domain.ErrMalformedResponse)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("antwort ist kein gültiges JSON (%s): %w", preview(body), domain.ErrMalformedResponse)
	}
	return body, nil
}

// LooksLikeMarkup meldet, ob body wie ein HTML- oder XML-Dokument beginnt.
func LooksLikeMarkup(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '<'
}

func preview(body []byte) string {
	const n = 80
	s := strings.TrimSpace(string(body))
	if len([]rune(s)) > n {
		return string([]rune(s)[:n]) + "..."
	}
	return s
}
