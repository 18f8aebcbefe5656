package docs

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"modual-backend/internal/domain"
)

// Zeichen pro Zeile bei Schriftgrösse 10 auf A4 mit 20 mm Rand, grob geschätzt.
const charsPerLine = 95

var (
	darkGray   = color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray = color.Color{Red: 121, Green: 119, Blue: 109}
)

// PDFFilename gibt den Dateinamen für den PDF-Download zurück.
func PDFFilename(a domain.Article) string {
	return a.ID + ".pdf"
}

// RenderPDF erzeugt ein A4-Dokument mit Titel, Kategorie und dem Artikeltext.
func RenderPDF(a domain.Article) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	m.Row(12, func() {
		m.Col(12, func() {
			m.Text(a.Title, props.Text{
				Size:  18,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})
	category := a.Category
	if category == "" {
		category = DefaultCategory
	}
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text("Kategorie: "+category, props.Text{
				Size:  9,
				Color: mediumGray,
			})
		})
	})
	m.Row(4, func() {})

	for _, b := range Blocks(a.Content) {
		writeBlock(m, b)
	}

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("pdf für artikel %q erzeugen: %w", a.ID, err)
	}
	return buf.Bytes(), nil
}

func writeBlock(m pdf.Maroto, b Block) {
	text := b.Text
	style := props.Text{Size: 10, Color: darkGray}
	lineHeight := 5.0
	spacing := 2.0

	switch b.Kind {
	case BlockHeading:
		style = props.Text{Size: 14, Style: consts.Bold, Color: darkGray, Top: 2}
		lineHeight, spacing = 7, 2
	case BlockSubheading:
		style = props.Text{Size: 12, Style: consts.Bold, Color: darkGray, Top: 1}
		lineHeight, spacing = 6, 1
	case BlockListItem:
		text = "• " + text
		spacing = 0.5
	}

	lines := math.Ceil(float64(utf8.RuneCountInString(text)) / charsPerLine)
	if lines < 1 {
		lines = 1
	}
	m.Row(lines*lineHeight+spacing, func() {
		m.Col(12, func() {
			m.Text(text, style)
		})
	})
}
