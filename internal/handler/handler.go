package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"modual-backend/internal/bundle"
	"modual-backend/internal/domain"
	"modual-backend/internal/service"
)

// SourceHeader nennt die Herkunft geladener Daten, wenn sie veraltet sind.
const SourceHeader = "X-Datenquelle"

// errorBody ist die einheitliche Fehlerantwort-Struktur.
type errorBody struct {
	Error string `json:"error"`
}

// loadedBody umschliesst Daten aus der Cache-Kette mit ihrer Herkunft.
type loadedBody struct {
	Source    bundle.Source `json:"quelle"`
	FetchedAt time.Time     `json:"stand"`
	Warning   string        `json:"warnung,omitempty"`
	Data      any           `json:"daten"`
}

// writeJSON setzt den Content-Type-Header und schreibt v als JSON in w.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeLoaded schreibt data samt Herkunft. Bei Rückfall auf den veralteten
// Cache wird zusätzlich SourceHeader gesetzt.
func writeLoaded(w http.ResponseWriter, meta service.Meta, data any) {
	body := loadedBody{Source: meta.Source, FetchedAt: meta.FetchedAt, Data: data}
	if meta.Stale() {
		w.Header().Set(SourceHeader, string(meta.Source))
		body.Warning = staleWarning
	}
	writeJSON(w, http.StatusOK, body)
}

const staleWarning = "aktuelle daten konnten nicht geladen werden, es wird ein veralteter stand angezeigt"

// writeError übersetzt err in Statuscode und Fehlermeldung. op erscheint nur im Log.
func writeError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
	case errors.Is(err, domain.ErrUnavailable):
		logger.Error(op, zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorBody{unavailableMessage(err)})
	default:
		logger.Error(op, zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"interner serverfehler"})
	}
}

func unavailableMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedResponse):
		return "die api liefert kein gültiges JSON, vermutlich eine HTML-Seite; " +
			"bereitstellung der apps-script-web-app prüfen"
	case errors.Is(err, domain.ErrInvalidShape):
		return "die api-antwort hat ein unerwartetes format"
	case errors.Is(err, domain.ErrNetwork):
		return "die api ist nicht erreichbar und es liegen keine zwischengespeicherten daten vor"
	default:
		return "keine daten verfügbar"
	}
}

// refreshParam liest ?refresh=true. Ungültige Werte gelten als false.
func refreshParam(r *http.Request) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return b
}
