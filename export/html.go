// Package export renders extracted page text as a standalone HTML
// document. Lines from the text extractor become paragraphs in an
// x/net/html node tree, which keeps escaping and serialization with
// the HTML library rather than string templates.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/vellum/text"
)

// Document accumulates pages of extracted text for HTML output.
type Document struct {
	Title string

	pages [][]text.Line
}

// NewDocument returns an empty document with the given title.
func NewDocument(title string) *Document {
	return &Document{Title: title}
}

// AddPage appends one page of lines, as returned by the text
// extractor's Lines method.
func (d *Document) AddPage(lines []text.Line) {
	d.pages = append(d.pages, lines)
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int { return len(d.pages) }

// Render serializes the document to w.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.Node()); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

// Node builds the document's HTML node tree. Each page becomes a div,
// each paragraph a p; lines inside a paragraph are separated by br.
// Right-to-left paragraphs carry dir="rtl".
func (d *Document) Node() *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := elem("html")
	doc.AppendChild(root)

	head := elem("head")
	head.AppendChild(elem("meta", attr("charset", "utf-8")))
	title := elem("title")
	title.AppendChild(textNode(d.Title))
	head.AppendChild(title)
	root.AppendChild(head)

	body := elem("body")
	for i, page := range d.pages {
		body.AppendChild(pageNode(page, i+1))
	}
	root.AppendChild(body)

	return doc
}

func pageNode(lines []text.Line, number int) *html.Node {
	div := elem("div",
		attr("class", "page"),
		attr("data-page", strconv.Itoa(number)))

	for _, para := range paragraphs(lines) {
		p := elem("p")
		if para[0].Direction == text.RTL {
			p.Attr = append(p.Attr, attr("dir", "rtl"))
		}
		for i, line := range para {
			if i > 0 {
				p.AppendChild(elem("br"))
			}
			p.AppendChild(textNode(line.Text))
		}
		div.AppendChild(p)
	}
	return div
}

// paragraphs splits a page's lines wherever the leading jumps.
func paragraphs(lines []text.Line) [][]text.Line {
	var out [][]text.Line
	var current []text.Line
	for i, line := range lines {
		current = append(current, line)
		if i < len(lines)-1 && text.ParagraphBreak(line, lines[i+1]) {
			out = append(out, current)
			current = nil
		}
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

// HTML renders a single extractor's content as a complete document.
func HTML(title string, ex *text.Extractor) (string, error) {
	d := NewDocument(title)
	d.AddPage(ex.Lines())
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func elem(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
