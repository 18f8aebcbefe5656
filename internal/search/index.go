package search

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"modual-backend/internal/domain"
)

const (
	// MinQueryLength ist die Mindestlänge einer Suchanfrage in Zeichen.
	MinQueryLength = 2
	// MaxResults begrenzt die Trefferliste.
	MaxResults = 10

	// threshold ist der grösste Anteil an Lücken, den ein unscharfer Treffer haben darf.
	threshold = 0.4
)

type field int

const (
	fieldTitle field = iota
	fieldKeywords
	fieldCategory
	fieldContent
)

// fieldPenalty gewichtet Treffer nach Feld; kleiner ist besser.
var fieldPenalty = [...]float64{
	fieldTitle:    0,
	fieldKeywords: 0.05,
	fieldCategory: 0.1,
	fieldContent:  0.15,
}

// Result ist ein Suchtreffer mit Titel und Klartextauszug.
type Result struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Excerpt string  `json:"excerpt"`
	Score   float64 `json:"score"`
}

// Outcome ist das Ergebnis einer Suche. Active ist false, wenn die Anfrage zu
// kurz ist; der Aufrufer zeigt dann die vollständige Navigation.
type Outcome struct {
	Active  bool     `json:"active"`
	Results []Result `json:"results"`
}

type document struct {
	id       string
	title    string
	excerpt  string
	lTitle   string
	lCat     string
	lContent string
	lKeys    []string
}

// Index ist ein einmal pro geladenem Artikelbestand aufgebauter Suchindex
// über Titel, Inhalt, Kategorie und Suchbegriffe.
type Index struct {
	docs []document
}

// NewIndex baut den Index für articles auf.
func NewIndex(articles []domain.Article) *Index {
	docs := make([]document, 0, len(articles))
	for _, a := range articles {
		keys := make([]string, 0, len(a.SearchKeywords))
		for _, k := range a.SearchKeywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keys = append(keys, k)
			}
		}
		docs = append(docs, document{
			id:       a.ID,
			title:    a.Title,
			excerpt:  Excerpt(a.Content, ExcerptLength),
			lTitle:   strings.ToLower(a.Title),
			lCat:     strings.ToLower(a.Category),
			lContent: strings.ToLower(StripTags(a.Content)),
			lKeys:    keys,
		})
	}
	return &Index{docs: docs}
}

// Len gibt die Anzahl indizierter Artikel zurück.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// Search sucht query unscharf und sortiert nach aufsteigender Distanz.
// Gleich gute Treffer behalten die Reihenfolge der Artikelliste.
func (ix *Index) Search(query string) Outcome {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < MinQueryLength {
		return Outcome{Active: false}
	}

	results := make([]Result, 0)
	for _, d := range ix.docs {
		score, ok := d.distance(q)
		if !ok {
			continue
		}
		results = append(results, Result{ID: d.id, Title: d.title, Excerpt: d.excerpt, Score: score})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return Outcome{Active: true, Results: results}
}

func (d document) distance(q string) (float64, bool) {
	best := math.Inf(1)
	consider := func(f field, dist float64, ok bool) {
		if ok && fieldPenalty[f]+dist < best {
			best = fieldPenalty[f] + dist
		}
	}

	dist, ok := fuzzyDistance(q, d.lTitle)
	consider(fieldTitle, dist, ok)
	for _, k := range d.lKeys {
		dist, ok = fuzzyDistance(q, k)
		consider(fieldKeywords, dist, ok)
	}
	dist, ok = fuzzyDistance(q, d.lCat)
	consider(fieldCategory, dist, ok)
	dist, ok = contentDistance(q, d.lContent)
	consider(fieldContent, dist, ok)

	return best, !math.IsInf(best, 1)
}

// fuzzyDistance ist 0 für einen Treffer am Anfang und wächst mit der
// Position und mit Lücken zwischen den getroffenen Zeichen.
func fuzzyDistance(q, text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	if i := strings.Index(text, q); i >= 0 {
		return positionPenalty(i), true
	}

	matches := fuzzy.Find(q, []string{text})
	if len(matches) == 0 {
		return 0, false
	}
	idx := matches[0].MatchedIndexes
	if len(idx) == 0 {
		return 0, false
	}
	span := idx[len(idx)-1] - idx[0] + 1
	gaps := 1 - float64(len(idx))/float64(span)
	if gaps < 0 {
		gaps = 0
	}
	if gaps > threshold {
		return 0, false
	}
	return 0.1 + gaps/2, true
}

// contentDistance sucht nur zusammenhängend: im langen Fliesstext würde eine
// Zeichenfolgen-Suche fast alles treffen.
func contentDistance(q, content string) (float64, bool) {
	if content == "" {
		return 0, false
	}
	if i := strings.Index(content, q); i >= 0 {
		return positionPenalty(i), true
	}
	words := strings.Fields(q)
	if len(words) < 2 {
		return 0, false
	}
	for _, w := range words {
		if !strings.Contains(content, w) {
			return 0, false
		}
	}
	return 0.1, true
}

func positionPenalty(pos int) float64 {
	return math.Min(float64(pos)/1000, 0.05)
}
