// Package vellum extracts text and vector graphics from PDF content
// streams. It ties the interpreter to the bundled sinks behind one
// facade:
//
//	ex := vellum.New()
//	if err := ex.ProcessPage(page); err != nil {
//	    // handle error
//	}
//	fmt.Println(ex.Text())
//	if ws := ex.Warnings(); len(ws) > 0 {
//	    log.Println(vellum.FormatWarnings(ws))
//	}
//
// With options:
//
//	ex := vellum.New(
//	    vellum.WithStrictMode(),
//	    vellum.WithOCRFallback(),
//	)
//
// For finer control, drive the interpreter package directly with your
// own EventSink.
package vellum

import (
	"fmt"
	"strings"

	"github.com/tsawler/vellum/export"
	"github.com/tsawler/vellum/graphics"
	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/interpreter/operators"
	"github.com/tsawler/vellum/ocr"
	"github.com/tsawler/vellum/tables"
	"github.com/tsawler/vellum/text"
)

// PageContent is the extraction result for one processed page.
type PageContent struct {
	// Number is the 1-based position in processing order.
	Number int

	Text      string
	Lines     []text.Line
	Fragments []text.TextFragment

	VectorLines []graphics.Line
	VectorRects []graphics.Rect

	// Tables is filled when table detection is enabled.
	Tables []tables.Table

	// OCR reports that Text came from the OCR fallback rather than
	// from glyphs in the content stream.
	OCR bool
}

// Extractor runs pages through the interpreter and accumulates their
// content. It is not safe for concurrent use.
type Extractor struct {
	engineOpts  []interpreter.Option
	extraSinks  []interpreter.EventSink
	ocrFallback bool
	ocrLanguage string
	tables      *tables.Detector

	it         *interpreter.Interpreter
	textEx     *text.Extractor
	graphicsEx *graphics.Extractor
	collector  *collector

	ocrClient *ocr.Client
	pages     []PageContent
	warnings  []Warning
}

// New builds an extractor with the standard operator set registered.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		textEx:      text.NewExtractor(),
		graphicsEx:  graphics.NewExtractor(),
		collector:   &collector{},
		ocrLanguage: "eng",
	}
	for _, opt := range opts {
		opt(e)
	}

	sinks := append([]interpreter.EventSink{e.textEx, e.graphicsEx, e.collector}, e.extraSinks...)
	e.it = interpreter.New(&multiSink{sinks: sinks}, e.engineOpts...)
	operators.RegisterStandard(e.it)
	return e
}

// ProcessPage interprets one page and records its content. Pages are
// numbered in processing order starting at 1.
func (e *Extractor) ProcessPage(page interpreter.Page) error {
	e.textEx.Reset()
	e.graphicsEx.Reset()
	e.collector.reset()

	if err := e.it.ProcessPage(page); err != nil {
		return err
	}

	number := len(e.pages) + 1
	for _, w := range e.collector.warnings {
		w.Page = number
		e.warnings = append(e.warnings, w)
	}

	pc := PageContent{
		Number:      number,
		Text:        e.textEx.Text(),
		Lines:       e.textEx.Lines(),
		Fragments:   append([]text.TextFragment(nil), e.textEx.Fragments()...),
		VectorLines: append([]graphics.Line(nil), e.graphicsEx.Lines()...),
		VectorRects: append([]graphics.Rect(nil), e.graphicsEx.Rects()...),
	}
	if e.tables != nil {
		pc.Tables = e.tables.Detect(pc.Fragments, pc.VectorLines, pc.VectorRects)
	}

	if e.ocrFallback && e.collector.glyphs == 0 && len(e.collector.images) > 0 {
		recognized, err := e.recognizeImages()
		if err != nil {
			return fmt.Errorf("OCR fallback on page %d: %w", number, err)
		}
		pc.Text = recognized
		pc.OCR = true
	}

	e.pages = append(e.pages, pc)
	return nil
}

func (e *Extractor) recognizeImages() (string, error) {
	if e.ocrClient == nil {
		client, err := ocr.New()
		if err != nil {
			return "", err
		}
		if err := client.SetLanguage(e.ocrLanguage); err != nil {
			client.Close()
			return "", err
		}
		e.ocrClient = client
	}

	var parts []string
	for _, img := range e.collector.images {
		recognized, err := e.ocrClient.RecognizeStream(img, e.it.Resolver())
		if err != nil {
			return "", err
		}
		if recognized != "" {
			parts = append(parts, recognized)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// Text returns the text of all processed pages, joined by blank lines.
func (e *Extractor) Text() string {
	parts := make([]string, 0, len(e.pages))
	for _, p := range e.pages {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n\n")
}

// Pages returns the per-page results in processing order.
func (e *Extractor) Pages() []PageContent { return e.pages }

// Warnings returns the non-fatal problems met so far.
func (e *Extractor) Warnings() []Warning { return e.warnings }

// HTML renders every processed page as one HTML document. Text from
// the OCR fallback appears as a single paragraph on its page.
func (e *Extractor) HTML(title string) (string, error) {
	doc := export.NewDocument(title)
	for _, p := range e.pages {
		lines := p.Lines
		if p.OCR && p.Text != "" {
			lines = []text.Line{{
				Fragments: []text.TextFragment{{Text: p.Text}},
				Text:      p.Text,
			}}
		}
		doc.AddPage(lines)
	}
	var sb strings.Builder
	if err := doc.Render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Reset discards accumulated pages and warnings. Options and sinks
// are kept.
func (e *Extractor) Reset() {
	e.pages = nil
	e.warnings = nil
	e.textEx.Reset()
	e.graphicsEx.Reset()
	e.collector.reset()
}

// Close releases the OCR client if the fallback ever ran.
func (e *Extractor) Close() error {
	if e.ocrClient == nil {
		return nil
	}
	client := e.ocrClient
	e.ocrClient = nil
	return client.Close()
}

// Must panics on a non-nil error. Intended for scripts and tests.
//
//	text := vellum.Must(ex.HTML("report"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
