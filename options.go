package vellum

import (
	"github.com/tsawler/vellum/core"
	"github.com/tsawler/vellum/interpreter"
	"github.com/tsawler/vellum/tables"
)

// Option configures an Extractor at construction time.
type Option func(*Extractor)

// WithSink registers an additional event sink beside the built-in
// text and graphics extractors. May be given more than once.
func WithSink(sink interpreter.EventSink) Option {
	return func(e *Extractor) {
		e.extraSinks = append(e.extraSinks, sink)
	}
}

// WithOCRFallback runs OCR over a page's images when interpretation
// produced no text fragments. Requires a binary built with the "ocr"
// tag; without it ProcessPage fails on the first page needing the
// fallback.
func WithOCRFallback() Option {
	return func(e *Extractor) {
		e.ocrFallback = true
	}
}

// WithOCRLanguage sets the recognition language for the OCR fallback.
// Join several with "+" ("eng+fra"). Default is "eng".
func WithOCRLanguage(lang string) Option {
	return func(e *Extractor) {
		e.ocrLanguage = lang
	}
}

// WithTableDetection runs table detection over each processed page's
// fragments and vector graphics, recording results in
// PageContent.Tables.
func WithTableDetection() Option {
	return func(e *Extractor) {
		e.tables = tables.NewDetector()
	}
}

// WithTableConfig enables table detection with a custom configuration.
func WithTableConfig(config tables.Config) Option {
	return func(e *Extractor) {
		e.tables = tables.NewDetector()
		e.tables.Configure(config)
	}
}

// WithStrictMode makes graphics-stack underflow and XObject failures
// hard errors instead of logged warnings.
func WithStrictMode() Option {
	return func(e *Extractor) {
		e.engineOpts = append(e.engineOpts, interpreter.WithStrictMode())
	}
}

// WithMaxRecursionDepth overrides the nested-stream recursion ceiling.
func WithMaxRecursionDepth(n int) Option {
	return func(e *Extractor) {
		e.engineOpts = append(e.engineOpts, interpreter.WithMaxRecursionDepth(n))
	}
}

// WithResolver supplies a resolver for indirect references in
// resources, fonts, and image dictionaries.
func WithResolver(r core.Resolver) Option {
	return func(e *Extractor) {
		e.engineOpts = append(e.engineOpts, interpreter.WithResolver(r))
	}
}
