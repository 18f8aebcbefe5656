package handler

import (
	"net/http"

	"modual-backend/internal/energy"
)

// Energy liefert den typischen Tagesverlauf des Energieflusses.
func Energy(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, energy.Series())
}
