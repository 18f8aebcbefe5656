package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modual-backend/internal/bundle"
	"modual-backend/internal/domain"
)

func testDocs() domain.DocsBundle {
	return domain.DocsBundle{
		Navigation: []domain.NavSection{
			{Title: "Start", Children: []domain.NavEntry{{ID: "einstieg", Title: "Einstieg"}}},
		},
		Articles: []domain.Article{
			{ID: "einstieg", Title: "Einstieg", Category: "Grundlagen", Content: "<p>Willkommen beim Speicher.</p>"},
			{ID: "wechselrichter", Title: "Wechselrichter koppeln", Category: "Installation",
				Content: "<h2>Anschluss</h2><p>Kabel verbinden.</p>"},
		},
	}
}

func docsLoader(b domain.DocsBundle, at time.Time) *fakeLoader[domain.DocsBundle] {
	return &fakeLoader[domain.DocsBundle]{res: bundle.Result[domain.DocsBundle]{
		Data: b, Source: bundle.SourceCache, FetchedAt: at,
	}}
}

func TestOverview(t *testing.T) {
	svc := NewDocsService(docsLoader(testDocs(), time.Now()), testLogger())

	ov, meta, err := svc.Overview(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, bundle.SourceCache, meta.Source)
	assert.Equal(t, "einstieg", ov.StartID)
	require.Len(t, ov.Articles, 2)
	assert.Equal(t, ArticleSummary{ID: "wechselrichter", Title: "Wechselrichter koppeln", Category: "Installation"}, ov.Articles[1])
	assert.Len(t, ov.Navigation, 1)
}

func TestOverview_OhneArtikel(t *testing.T) {
	svc := NewDocsService(docsLoader(domain.DocsBundle{}, time.Now()), testLogger())

	ov, _, err := svc.Overview(context.Background(), false)

	require.NoError(t, err)
	assert.Empty(t, ov.StartID)
	assert.Empty(t, ov.Articles)
}

func TestDocsSearch_Aktiv(t *testing.T) {
	svc := NewDocsService(docsLoader(testDocs(), time.Now()), testLogger())

	res, _, err := svc.Search(context.Background(), "wechselrichter")

	require.NoError(t, err)
	assert.True(t, res.Active)
	require.NotEmpty(t, res.Results)
	assert.Equal(t, "wechselrichter", res.Results[0].ID)
	assert.Nil(t, res.Navigation)
}

func TestDocsSearch_InaktivLiefertNavigation(t *testing.T) {
	svc := NewDocsService(docsLoader(testDocs(), time.Now()), testLogger())

	res, _, err := svc.Search(context.Background(), "w")

	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Empty(t, res.Results)
	assert.Len(t, res.Navigation, 1)
}

func TestDocsSearch_IndexNurBeiNeuemStand(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	l := docsLoader(testDocs(), at)
	svc := NewDocsService(l, testLogger())

	_, _, err := svc.Search(context.Background(), "einstieg")
	require.NoError(t, err)
	first := svc.index

	_, _, err = svc.Search(context.Background(), "einstieg")
	require.NoError(t, err)
	assert.Same(t, first, svc.index)

	b := testDocs()
	b.Articles = append(b.Articles, domain.Article{ID: "akku", Title: "Akku tauschen"})
	l.res = bundle.Result[domain.DocsBundle]{Data: b, Source: bundle.SourceNetwork, FetchedAt: at.Add(time.Hour)}

	res, _, err := svc.Search(context.Background(), "akku")
	require.NoError(t, err)
	assert.NotSame(t, first, svc.index)
	assert.Equal(t, 3, svc.index.Len())
	require.NotEmpty(t, res.Results)
	assert.Equal(t, "akku", res.Results[0].ID)
}

func TestArticle(t *testing.T) {
	svc := NewDocsService(docsLoader(testDocs(), time.Now()), testLogger())

	v, _, err := svc.Article(context.Background(), "wechselrichter")
	require.NoError(t, err)
	assert.Equal(t, "Wechselrichter koppeln", v.Title)
	require.NotNil(t, v.Prev)
	assert.Equal(t, "einstieg", v.Prev.ID)
	assert.Nil(t, v.Next)

	v, _, err = svc.Article(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "einstieg", v.ID)

	_, _, err = svc.Article(context.Background(), "gibt-es-nicht")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocsLLMText(t *testing.T) {
	svc := NewDocsService(docsLoader(testDocs(), time.Now()), testLogger())

	text, err := svc.LLMText(context.Background(), "wechselrichter")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "# Wechselrichter koppeln\n\nKategorie: Installation"))
	assert.Contains(t, text, "Kabel verbinden.")
	assert.NotContains(t, text, "<p>")
}

func TestDocsPDF(t *testing.T) {
	svc := NewDocsService(docsLoader(testDocs(), time.Now()), testLogger())

	out, name, err := svc.PDF(context.Background(), "einstieg")

	require.NoError(t, err)
	assert.Equal(t, "einstieg.pdf", name)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestDocs_KeineDaten(t *testing.T) {
	l := &fakeLoader[domain.DocsBundle]{res: bundle.Result[domain.DocsBundle]{
		Source: bundle.SourceNone, Err: domain.ErrInvalidShape,
	}}
	svc := NewDocsService(l, testLogger())

	_, _, err := svc.Search(context.Background(), "speicher")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.ErrorIs(t, err, domain.ErrInvalidShape)

	_, _, err = svc.PDF(context.Background(), "einstieg")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestDocsClearCache(t *testing.T) {
	l := docsLoader(testDocs(), time.Now())
	NewDocsService(l, testLogger()).ClearCache(context.Background())
	assert.Equal(t, int32(1), l.cleared.Load())
}
