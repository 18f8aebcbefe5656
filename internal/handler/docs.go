package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"modual-backend/internal/docs"
	"modual-backend/internal/service"
)

// DocsService definiert, was der Handler von der Wissensdatenbank erwartet.
type DocsService interface {
	Overview(ctx context.Context, refresh bool) (service.Overview, service.Meta, error)
	Search(ctx context.Context, query string) (service.SearchResult, service.Meta, error)
	Article(ctx context.Context, id string) (docs.ArticleView, service.Meta, error)
	LLMText(ctx context.Context, id string) (string, error)
	PDF(ctx context.Context, id string) ([]byte, string, error)
	ClearCache(ctx context.Context)
}

// DocsHandler stellt die Wissensdatenbank über HTTP bereit.
type DocsHandler struct {
	service DocsService
	logger  *zap.Logger
}

func NewDocsHandler(svc DocsService, logger *zap.Logger) *DocsHandler {
	return &DocsHandler{service: svc, logger: logger}
}

func (h *DocsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ov, meta, err := h.service.Overview(r.Context(), refreshParam(r))
	if err != nil {
		writeError(w, h.logger, "wissensdatenbank laden", err)
		return
	}
	writeLoaded(w, meta, ov)
}

func (h *DocsHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, meta, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.logger, "wissensdatenbank durchsuchen", err)
		return
	}
	writeLoaded(w, meta, res)
}

func (h *DocsHandler) Article(w http.ResponseWriter, r *http.Request) {
	v, meta, err := h.service.Article(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, "artikel laden", err)
		return
	}
	writeLoaded(w, meta, v)
}

// LLM liefert den Artikel als Klartext.
func (h *DocsHandler) LLM(w http.ResponseWriter, r *http.Request) {
	text, err := h.service.LLMText(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, "artikel als text", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// PDF liefert den Artikel als Download.
func (h *DocsHandler) PDF(w http.ResponseWriter, r *http.Request) {
	out, filename, err := h.service.PDF(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, "artikel als pdf", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (h *DocsHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.service.ClearCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
