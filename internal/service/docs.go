package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"modual-backend/internal/docs"
	"modual-backend/internal/domain"
	"modual-backend/internal/search"
)

// ArticleSummary ist ein Artikel ohne Inhalt für Übersichten.
type ArticleSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// Overview ist die Startansicht der Wissensdatenbank.
type Overview struct {
	Navigation []domain.NavSection `json:"navigation"`
	Articles   []ArticleSummary    `json:"articles"`
	StartID    string              `json:"start_id,omitempty"`
}

// SearchResult enthält die Treffer oder, bei inaktiver Suche, die Navigation.
type SearchResult struct {
	search.Outcome
	Navigation []domain.NavSection `json:"navigation,omitempty"`
}

// DocsService stellt die Wissensdatenbank bereit. Der Suchindex wird pro
// geladenem Bundle einmal aufgebaut.
type DocsService struct {
	loader Loader[domain.DocsBundle]
	logger *zap.Logger

	mu        sync.Mutex
	index     *search.Index
	indexedAt time.Time
}

func NewDocsService(loader Loader[domain.DocsBundle], logger *zap.Logger) *DocsService {
	return &DocsService{loader: loader, logger: logger}
}

// Overview lädt das Bundle und gibt Navigation und Artikelliste zurück.
func (s *DocsService) Overview(ctx context.Context, refresh bool) (Overview, Meta, error) {
	b, meta, err := load(ctx, s.loader, refresh)
	if err != nil {
		return Overview{}, meta, err
	}
	ov := Overview{
		Navigation: b.Navigation,
		Articles:   make([]ArticleSummary, 0, len(b.Articles)),
	}
	for _, a := range b.Articles {
		ov.Articles = append(ov.Articles, ArticleSummary{ID: a.ID, Title: a.Title, Category: a.Category})
	}
	if len(b.Articles) > 0 {
		ov.StartID = b.Articles[0].ID
	}
	return ov, meta, nil
}

// Search durchsucht die Artikel. Bei zu kurzer Anfrage ist die Suche
// inaktiv und das Ergebnis trägt stattdessen die vollständige Navigation.
func (s *DocsService) Search(ctx context.Context, query string) (SearchResult, Meta, error) {
	b, meta, err := load(ctx, s.loader, false)
	if err != nil {
		return SearchResult{}, meta, err
	}
	out := s.indexFor(b, meta.FetchedAt).Search(query)
	if !out.Active {
		return SearchResult{Outcome: out, Navigation: b.Navigation}, meta, nil
	}
	s.logger.Debug("suche ausgeführt", zap.String("anfrage", query), zap.Int("treffer", len(out.Results)))
	return SearchResult{Outcome: out}, meta, nil
}

func (s *DocsService) indexFor(b domain.DocsBundle, fetchedAt time.Time) *search.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil || !s.indexedAt.Equal(fetchedAt) {
		s.index = search.NewIndex(b.Articles)
		s.indexedAt = fetchedAt
		s.logger.Info("suchindex aufgebaut", zap.Int("artikel", s.index.Len()))
	}
	return s.index
}

// Article gibt die Ansicht eines Artikels zurück. Eine leere id wählt den ersten.
func (s *DocsService) Article(ctx context.Context, id string) (docs.ArticleView, Meta, error) {
	b, meta, err := load(ctx, s.loader, false)
	if err != nil {
		return docs.ArticleView{}, meta, err
	}
	v, err := docs.NewArticleView(b, id)
	return v, meta, err
}

// LLMText gibt einen Artikel als Klartext für Sprachmodelle zurück.
func (s *DocsService) LLMText(ctx context.Context, id string) (string, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}
	return docs.LLMText(a), nil
}

// PDF rendert einen Artikel und gibt Inhalt und Dateinamen zurück.
func (s *DocsService) PDF(ctx context.Context, id string) ([]byte, string, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := docs.RenderPDF(a)
	if err != nil {
		s.logger.Error("pdf erzeugen fehlgeschlagen", zap.String("artikel", a.ID), zap.Error(err))
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	return out, docs.PDFFilename(a), nil
}

func (s *DocsService) find(ctx context.Context, id string) (domain.Article, error) {
	b, _, err := load(ctx, s.loader, false)
	if err != nil {
		return domain.Article{}, err
	}
	return docs.Find(b, id)
}

// ClearCache leert den Docs-Cache.
func (s *DocsService) ClearCache(ctx context.Context) {
	s.loader.ClearCache(ctx)
}
