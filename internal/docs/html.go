package docs

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Heading ist ein Eintrag des Inhaltsverzeichnisses.
type Heading struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// BlockKind unterscheidet die Textblöcke eines Artikels.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockSubheading
	BlockListItem
)

// Block ist ein zusammenhängender Textabschnitt ohne Markup.
type Block struct {
	Kind BlockKind
	Text string
}

func parseFragment(content string) []*html.Node {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil
	}
	return nodes
}

// collectHeadings sammelt h2 und h3 in Dokumentreihenfolge.
func collectHeadings(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.H2 || n.DataAtom == atom.H3) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// headingID gibt die vorhandene id zurück oder heading-<index>.
func headingID(n *html.Node, index int) string {
	if id := strings.TrimSpace(attr(n, "id")); id != "" {
		return id
	}
	return fmt.Sprintf("heading-%d", index)
}

// TableOfContents listet die h2- und h3-Überschriften von content.
func TableOfContents(content string) []Heading {
	headings := collectHeadings(parseFragment(content))
	toc := make([]Heading, 0, len(headings))
	for i, h := range headings {
		level := 2
		if h.DataAtom == atom.H3 {
			level = 3
		}
		toc = append(toc, Heading{ID: headingID(h, i), Title: collapse(textContent(h)), Level: level})
	}
	return toc
}

// AnnotateHeadings vergibt Überschriften ohne id die id heading-<index>,
// passend zu TableOfContents.
func AnnotateHeadings(content string) string {
	nodes := parseFragment(content)
	for i, h := range collectHeadings(nodes) {
		if strings.TrimSpace(attr(h, "id")) == "" {
			h.Attr = append(h.Attr, html.Attribute{Key: "id", Val: headingID(h, i)})
		}
	}
	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return content
		}
	}
	return sb.String()
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Blocks zerlegt content in Textblöcke. Bilder, Skripte und Styles entfallen.
func Blocks(content string) []Block {
	w := &blockWriter{}
	for _, n := range parseFragment(content) {
		w.walk(n)
	}
	w.flush()
	return w.blocks
}

type blockWriter struct {
	blocks []Block
	kind   BlockKind
	sb     strings.Builder
}

func (w *blockWriter) flush() {
	if text := collapse(w.sb.String()); text != "" {
		w.blocks = append(w.blocks, Block{Kind: w.kind, Text: text})
	}
	w.sb.Reset()
}

func (w *blockWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Img:
			return
		case atom.Br:
			w.flush()
			return
		}
		if kind, ok := blockKind(n.DataAtom); ok {
			w.flush()
			outer := w.kind
			w.kind = kind
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				w.walk(c)
			}
			w.flush()
			w.kind = outer
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func blockKind(a atom.Atom) (BlockKind, bool) {
	switch a {
	case atom.H1, atom.H2:
		return BlockHeading, true
	case atom.H3, atom.H4, atom.H5, atom.H6:
		return BlockSubheading, true
	case atom.Li:
		return BlockListItem, true
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Blockquote, atom.Pre,
		atom.Ul, atom.Ol, atom.Table, atom.Tr, atom.Td, atom.Th:
		return BlockParagraph, true
	}
	return 0, false
}

// PlainText gibt den Text von content ohne Markup zurück. Blöcke sind durch
// eine Leerzeile getrennt, aufeinanderfolgende Listenpunkte durch einen Umbruch.
func PlainText(content string) string {
	blocks := Blocks(content)
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			if b.Kind == BlockListItem && blocks[i-1].Kind == BlockListItem {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(b.Text)
	}
	return sb.String()
}
