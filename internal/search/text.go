package search

import (
	"strings"

	"golang.org/x/net/html"
)

// ExcerptLength ist die Länge der Trefferauszüge in Zeichen.
const ExcerptLength = 100

// Ellipsis markiert einen gekürzten Auszug.
const Ellipsis = "..."

// StripTags entfernt alle HTML-Tags und gibt den reinen Text zurück.
// Entitäten werden dekodiert, Inhalte von script und style verworfen.
func StripTags(s string) string {
	var (
		sb   strings.Builder
		skip int
	)
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF oder kaputtes Markup: bis hierher gelesener Text genügt.
			return sb.String()
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawText(name) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawText(name) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

func isRawText(tag []byte) bool {
	switch string(tag) {
	case "script", "style":
		return true
	}
	return false
}

// Excerpt liefert höchstens maxLen Zeichen Klartext aus content und hängt
// Ellipsis an, wenn gekürzt wurde.
func Excerpt(content string, maxLen int) string {
	text := strings.TrimSpace(StripTags(content))
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + Ellipsis
}
