package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
)

// BufferedHandler is a slog.Handler that captures records in memory.
// Tests use it to assert on the warnings the engine emits without
// writing to stderr.
type BufferedHandler struct {
	level  slog.Leveler
	mu     *sync.Mutex
	buffer *bytes.Buffer

	// preAttrs are rendered at WithAttrs time so that the group prefix
	// in effect then, not at Handle time, qualifies them.
	preAttrs []string
	groups   []string
}

// NewBufferedHandler creates a BufferedHandler. Pass nil to capture all
// levels, or HandlerOptions with a Level to filter.
func NewBufferedHandler(opts *slog.HandlerOptions) *BufferedHandler {
	h := &BufferedHandler{
		mu:     &sync.Mutex{},
		buffer: &bytes.Buffer{},
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled implements slog.Handler.
func (h *BufferedHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

// Handle implements slog.Handler. Records are written one per line as
// "LEVEL message key=value ...".
func (h *BufferedHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buffer.WriteString(r.Level.String())
	h.buffer.WriteByte(' ')
	h.buffer.WriteString(r.Message)
	for _, rendered := range h.preAttrs {
		h.buffer.WriteByte(' ')
		h.buffer.WriteString(rendered)
	}
	r.Attrs(func(attr slog.Attr) bool {
		h.buffer.WriteByte(' ')
		h.buffer.WriteString(h.prefixed(attr))
		return true
	})
	h.buffer.WriteByte('\n')
	return nil
}

func (h *BufferedHandler) prefixed(attr slog.Attr) string {
	if len(h.groups) == 0 {
		return attr.String()
	}
	return strings.Join(h.groups, ".") + "." + attr.String()
}

// WithAttrs implements slog.Handler.
func (h *BufferedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]string, len(h.preAttrs), len(h.preAttrs)+len(attrs))
	copy(newAttrs, h.preAttrs)
	for _, attr := range attrs {
		newAttrs = append(newAttrs, h.prefixed(attr))
	}
	return &BufferedHandler{
		level:    h.level,
		mu:       h.mu,
		buffer:   h.buffer,
		preAttrs: newAttrs,
		groups:   h.groups,
	}
}

// WithGroup implements slog.Handler.
func (h *BufferedHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &BufferedHandler{
		level:    h.level,
		mu:       h.mu,
		buffer:   h.buffer,
		preAttrs: h.preAttrs,
		groups:   newGroups,
	}
}

// String returns all captured output.
func (h *BufferedHandler) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buffer.String()
}

// Reset clears captured output.
func (h *BufferedHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buffer.Reset()
}

// Contains reports whether the captured output contains s.
func (h *BufferedHandler) Contains(s string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return bytes.Contains(h.buffer.Bytes(), []byte(s))
}
