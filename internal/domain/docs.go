package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// NavEntry ist ein Blatt der Navigation und verweist auf eine Artikel-ID.
type NavEntry struct {
	ID    string `json:"id" validate:"required"`
	Title string `json:"title"`
	Icon  string `json:"icon,omitempty"`
}

// NavSection gruppiert Navigationseinträge unter einem Titel.
type NavSection struct {
	Title    string     `json:"title"`
	Children []NavEntry `json:"children" validate:"dive"`
}

// Article ist ein Artikel der Wissensdatenbank mit HTML-Inhalt.
type Article struct {
	ID             string   `json:"id" validate:"required"`
	Title          string   `json:"title" validate:"required"`
	Category       string   `json:"category"`
	Content        string   `json:"content"`
	SearchKeywords Keywords `json:"searchKeywords,omitempty"`
}

// DocsBundle ist das von der Dokumentations-API gelieferte Paket.
type DocsBundle struct {
	Navigation []NavSection `json:"navigation"`
	Articles   []Article    `json:"articles"`
}

// Keywords akzeptiert sowohl ein JSON-Array als auch eine kommagetrennte
// Zeichenkette, wie sie aus einer Tabellenzelle kommt.
type Keywords []string

func (k *Keywords) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*k = nil
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		var out Keywords
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*k = out
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*k = list
	return nil
}
