package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"modual-backend/internal/domain"
	"modual-backend/internal/product"
	"modual-backend/internal/service"
)

type ProductService interface {
	Products(ctx context.Context, refresh bool) ([]domain.Product, service.Meta, error)
	Page(ctx context.Context, identifier string) (product.Page, service.Meta, error)
	ClearCache(ctx context.Context)
}

// ProductHandler stellt Produktliste und Produktseite bereit.
type ProductHandler struct {
	service ProductService
	logger  *zap.Logger
}

func NewProductHandler(svc ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, meta, err := h.service.Products(r.Context(), refreshParam(r))
	if err != nil {
		writeError(w, h.logger, "produkte laden", err)
		return
	}
	writeLoaded(w, meta, products)
}

// Page wählt das Produkt über ?id=, ersatzweise ?product=. Beide Werte
// werden als Name oder Index ausgewertet.
func (h *ProductHandler) Page(w http.ResponseWriter, r *http.Request) {
	identifier := r.URL.Query().Get("id")
	if identifier == "" {
		identifier = r.URL.Query().Get("product")
	}
	page, meta, err := h.service.Page(r.Context(), identifier)
	if err != nil {
		writeError(w, h.logger, "produktseite erstellen", err)
		return
	}
	writeLoaded(w, meta, page)
}

func (h *ProductHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.service.ClearCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
