package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modual-backend/internal/domain"
)

func serve(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantErr     error
		notErr      error
	}{
		{
			name:        "gültiges JSON-Objekt",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"navigation":[],"articles":[]}`,
		},
		{
			name:        "gültiges JSON-Array",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        ` [{"product_name":"DC 11.5"}]`,
		},
		{
			name:        "HTTP 500 ist Netzwerkfehler",
			status:      http.StatusInternalServerError,
			contentType: "text/plain",
			body:        "interner fehler",
			wantErr:     domain.ErrNetwork,
			notErr:      domain.ErrMalformedResponse,
		},
		{
			name:        "HTML-Seite ist fehlerhafte Antwort",
			status:      http.StatusOK,
			contentType: "text/html",
			body:        "<!DOCTYPE html><html><body>Anmelden</body></html>",
			wantErr:     domain.ErrMalformedResponse,
			notErr:      domain.ErrNetwork,
		},
		{
			name:        "HTML mit führenden Leerzeichen",
			status:      http.StatusOK,
			contentType: "text/html",
			body:        "\n  <html></html>",
			wantErr:     domain.ErrMalformedResponse,
		},
		{
			name:        "abgeschnittenes JSON",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"articles": [`,
			wantErr:     domain.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.contentType, tt.body)
			c := NewClient(srv.URL, WithHTTPClient(srv.Client()))

			body, err := c.Fetch(context.Background())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.notErr != nil {
					assert.NotErrorIs(t, err, tt.notErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(body))
		})
	}
}

func TestFetch_NichtErreichbar(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestFetch_AbgebrochenerKontext(t *testing.T) {
	srv := serve(t, http.StatusOK, "application/json", `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, WithHTTPClient(srv.Client())).Fetch(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLooksLikeMarkup(t *testing.T) {
	assert.True(t, LooksLikeMarkup([]byte("<!DOCTYPE html>")))
	assert.True(t, LooksLikeMarkup([]byte("  <html>")))
	assert.False(t, LooksLikeMarkup([]byte(`{"a":"<b>"}`)))
	assert.False(t, LooksLikeMarkup(nil))
}
