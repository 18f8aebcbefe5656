package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"modual-backend/internal/domain"
	"modual-backend/internal/geo"
)

// InstallerService definiert den Vertrag, den der Handler von der Service-Schicht erwartet.
type InstallerService interface {
	Filter(ctx context.Context, f geo.Filter) (geo.Result, error)
	GetByID(ctx context.Context, id int) (domain.Installer, error)
}

// InstallerHandler stellt das Installateurverzeichnis über HTTP bereit.
type InstallerHandler struct {
	service InstallerService
	logger  *zap.Logger
}

func NewInstallerHandler(svc InstallerService, logger *zap.Logger) *InstallerHandler {
	return &InstallerHandler{service: svc, logger: logger}
}

// Filter wendet plz, suche und zertifiziert aus der Query an.
func (h *InstallerHandler) Filter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := geo.Filter{
		PostalCode: strings.TrimSpace(q.Get("plz")),
		Search:     q.Get("suche"),
	}
	if v := q.Get("zertifiziert"); v != "" {
		certified, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{"zertifiziert muss true oder false sein"})
			return
		}
		f.CertifiedOnly = certified
	}

	res, err := h.service.Filter(r.Context(), f)
	if err != nil {
		writeError(w, h.logger, "installateure filtern", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetByID gibt einen einzelnen Installateur anhand seiner ID zurück.
func (h *InstallerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"id muss eine ganzzahl sein"})
		return
	}

	inst, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, "installateur nach id abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}
