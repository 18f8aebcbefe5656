package docs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"modual-backend/internal/domain"
)

// RootTitle ist der erste Eintrag jeder Brotkrümelnavigation.
const RootTitle = "Wissensdatenbank"

// DefaultCategory ersetzt eine fehlende Artikelkategorie.
const DefaultCategory = "Allgemein"

// Decoder prüft die Antwort der Dokumentations-API.
type Decoder struct {
	logger *zap.Logger
}

func NewDecoder(logger *zap.Logger) *Decoder {
	return &Decoder{logger: logger}
}

// Decode parst raw zu einem DocsBundle. Kein JSON ergibt ErrMalformedResponse,
// jede Abweichung von der erwarteten Struktur ErrInvalidShape.
func (d *Decoder) Decode(raw []byte) (domain.DocsBundle, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return domain.DocsBundle{}, fmt.Errorf("docs: %v: %w", err, domain.ErrMalformedResponse)
		}
		return domain.DocsBundle{}, fmt.Errorf("docs: antwort ist kein objekt: %w", domain.ErrInvalidShape)
	}

	articles, ok := top["articles"]
	if !ok || !isArray(articles) {
		return domain.DocsBundle{}, fmt.Errorf("docs: feld articles fehlt oder ist keine liste: %w", domain.ErrInvalidShape)
	}

	var bundle domain.DocsBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return domain.DocsBundle{}, fmt.Errorf("docs: %v: %w", err, domain.ErrInvalidShape)
	}

	seen := make(map[string]struct{}, len(bundle.Articles))
	for i, a := range bundle.Articles {
		if err := domain.Validate(a); err != nil {
			return domain.DocsBundle{}, fmt.Errorf("docs: artikel %d: %v: %w", i, err, domain.ErrInvalidShape)
		}
		if _, dup := seen[a.ID]; dup {
			return domain.DocsBundle{}, fmt.Errorf("docs: doppelte artikel-id %q: %w", a.ID, domain.ErrInvalidShape)
		}
		seen[a.ID] = struct{}{}
	}
	for i, s := range bundle.Navigation {
		if err := domain.Validate(s); err != nil {
			return domain.DocsBundle{}, fmt.Errorf("docs: navigation %d: %v: %w", i, err, domain.ErrInvalidShape)
		}
	}

	if dangling := DanglingNavigationIDs(bundle); len(dangling) > 0 {
		d.logger.Warn("navigation verweist auf unbekannte artikel", zap.Strings("ids", dangling))
	}
	return bundle, nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// DanglingNavigationIDs gibt die Navigations-IDs ohne zugehörigen Artikel
// in Navigationsreihenfolge zurück.
func DanglingNavigationIDs(b domain.DocsBundle) []string {
	known := make(map[string]struct{}, len(b.Articles))
	for _, a := range b.Articles {
		known[a.ID] = struct{}{}
	}
	var out []string
	for _, s := range b.Navigation {
		for _, e := range s.Children {
			if _, ok := known[e.ID]; !ok {
				out = append(out, e.ID)
			}
		}
	}
	return out
}

// Find sucht einen Artikel. Eine leere id wählt den ersten Artikel.
func Find(b domain.DocsBundle, id string) (domain.Article, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		if len(b.Articles) == 0 {
			return domain.Article{}, fmt.Errorf("keine artikel vorhanden: %w", domain.ErrNotFound)
		}
		return b.Articles[0], nil
	}
	for _, a := range b.Articles {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Article{}, fmt.Errorf("artikel %q: %w", id, domain.ErrNotFound)
}

// Link verweist auf einen benachbarten Artikel.
type Link struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Neighbors liefert den vorherigen und nächsten Artikel in Listenreihenfolge.
func Neighbors(b domain.DocsBundle, id string) (prev, next *Link) {
	for i, a := range b.Articles {
		if a.ID != id {
			continue
		}
		if i > 0 {
			p := b.Articles[i-1]
			prev = &Link{ID: p.ID, Title: p.Title}
		}
		if i+1 < len(b.Articles) {
			n := b.Articles[i+1]
			next = &Link{ID: n.ID, Title: n.Title}
		}
		return prev, next
	}
	return nil, nil
}

// Breadcrumb gibt Wissensdatenbank / Kategorie / Titel zurück.
func Breadcrumb(a domain.Article) []string {
	crumbs := []string{RootTitle}
	if c := strings.TrimSpace(a.Category); c != "" {
		crumbs = append(crumbs, c)
	}
	return append(crumbs, a.Title)
}

// LLMText formatiert einen Artikel als Klartext zum Einfügen in ein Sprachmodell.
func LLMText(a domain.Article) string {
	category := strings.TrimSpace(a.Category)
	if category == "" {
		category = DefaultCategory
	}
	return fmt.Sprintf("# %s\n\nKategorie: %s\n\n%s", a.Title, category, PlainText(a.Content))
}

// ArticleView ist alles, was zur Anzeige eines Artikels gebraucht wird.
type ArticleView struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	HTML       string    `json:"html"`
	TOC        []Heading `json:"toc"`
	Breadcrumb []string  `json:"breadcrumb"`
	Prev       *Link     `json:"prev,omitempty"`
	Next       *Link     `json:"next,omitempty"`
}

// NewArticleView baut die Ansicht des Artikels id.
func NewArticleView(b domain.DocsBundle, id string) (ArticleView, error) {
	a, err := Find(b, id)
	if err != nil {
		return ArticleView{}, err
	}
	prev, next := Neighbors(b, a.ID)
	return ArticleView{
		ID:         a.ID,
		Title:      a.Title,
		Category:   a.Category,
		HTML:       AnnotateHeadings(a.Content),
		TOC:        TableOfContents(a.Content),
		Breadcrumb: Breadcrumb(a),
		Prev:       prev,
		Next:       next,
	}, nil
}
