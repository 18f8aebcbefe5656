package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modual-backend/internal/domain"
)

func testArticles() []domain.Article {
	return []domain.Article{
		{
			ID:       "installation",
			Title:    "Installation des Speichers",
			Category: "Montage",
			Content:  "<h2>Vorbereitung</h2><p>Der Aufstellort muss trocken sein.</p>",
		},
		{
			ID:             "garantie",
			Title:          "Garantiebedingungen",
			Category:       "Service",
			Content:        "<p>Die Garantie beträgt zehn Jahre ab Installation.</p>",
			SearchKeywords: domain.Keywords{"Gewährleistung", "Rückgabe"},
		},
		{
			ID:       "wechselrichter",
			Title:    "Kompatible Wechselrichter",
			Category: "Technik",
			Content:  "<p>Der DC-Speicher arbeitet mit hybriden Wechselrichtern.</p>",
		},
	}
}

func resultIDs(out Outcome) []string {
	ids := make([]string, 0, len(out.Results))
	for _, r := range out.Results {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestSearch_KurzeAnfrageIstInaktiv(t *testing.T) {
	ix := NewIndex(testArticles())

	for _, q := range []string{"", " ", "g", " w "} {
		out := ix.Search(q)
		assert.False(t, out.Active, "anfrage %q", q)
		assert.Empty(t, out.Results)
	}
}

func TestSearch_ZweiZeichenSindAktiv(t *testing.T) {
	out := NewIndex(testArticles()).Search("ga")
	assert.True(t, out.Active)
}

func TestSearch_TitelVorInhalt(t *testing.T) {
	out := NewIndex(testArticles()).Search("installation")

	require.True(t, out.Active)
	assert.Equal(t, []string{"installation", "garantie"}, resultIDs(out))
	assert.Less(t, out.Results[0].Score, out.Results[1].Score)
}

func TestSearch_Suchbegriffe(t *testing.T) {
	out := NewIndex(testArticles()).Search("gewährleistung")
	assert.Equal(t, []string{"garantie"}, resultIDs(out))
}

func TestSearch_Kategorie(t *testing.T) {
	out := NewIndex(testArticles()).Search("Technik")
	assert.Contains(t, resultIDs(out), "wechselrichter")
}

func TestSearch_UnscharfImTitel(t *testing.T) {
	// Tippfehler durch ausgelassene Buchstaben.
	out := NewIndex(testArticles()).Search("wechslrichter")
	require.NotEmpty(t, out.Results)
	assert.Equal(t, "wechselrichter", out.Results[0].ID)
}

func TestSearch_KeinTreffer(t *testing.T) {
	out := NewIndex(testArticles()).Search("photovoltaik")
	assert.True(t, out.Active)
	assert.Empty(t, out.Results)
}

func TestSearch_AufsteigendSortiert(t *testing.T) {
	out := NewIndex(testArticles()).Search("speicher")
	require.NotEmpty(t, out.Results)
	for i := 1; i < len(out.Results); i++ {
		assert.LessOrEqual(t, out.Results[i-1].Score, out.Results[i].Score)
	}
}

func TestSearch_HoechstensZehnTreffer(t *testing.T) {
	var articles []domain.Article
	for i := 0; i < 25; i++ {
		articles = append(articles, domain.Article{ID: strings.Repeat("x", i+1), Title: "Batterie Handbuch"})
	}
	out := NewIndex(articles).Search("batterie")
	assert.Len(t, out.Results, MaxResults)
}

func TestSearch_TrefferTragenAuszug(t *testing.T) {
	out := NewIndex(testArticles()).Search("garantiebedingungen")
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Garantiebedingungen", out.Results[0].Title)
	assert.Equal(t, "Die Garantie beträgt zehn Jahre ab Installation.", out.Results[0].Excerpt)
}

// ─── Excerpt / StripTags ──────────────────────────────────────────────────────

func TestExcerpt(t *testing.T) {
	long := "<p>" + strings.Repeat("a", 150) + "</p>"
	short := "<p>Kurzer <strong>Text</strong></p>"
	exact := strings.Repeat("b", ExcerptLength)

	gotLong := Excerpt(long, ExcerptLength)
	assert.True(t, strings.HasSuffix(gotLong, Ellipsis))
	assert.Equal(t, ExcerptLength+len(Ellipsis), len([]rune(gotLong)))

	gotShort := Excerpt(short, ExcerptLength)
	assert.Equal(t, "Kurzer Text", gotShort)
	assert.False(t, strings.HasSuffix(gotShort, Ellipsis))

	assert.Equal(t, exact, Excerpt(exact, ExcerptLength))
}

func TestExcerpt_Umlaute(t *testing.T) {
	got := Excerpt(strings.Repeat("ä", 120), ExcerptLength)
	assert.Equal(t, strings.Repeat("ä", ExcerptLength)+Ellipsis, got)
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<h2>Titel</h2><p>Absatz</p>", "TitelAbsatz"},
		{"Schrank &amp; Speicher", "Schrank & Speicher"},
		{"<p>vor<script>alert(1)</script>nach</p>", "vornach"},
		{"kein markup", "kein markup"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripTags(tt.in), tt.in)
	}
}
