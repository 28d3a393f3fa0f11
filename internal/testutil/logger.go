package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogger captures structured logs for assertion in tests.
type TestLogger struct {
	mu      sync.RWMutex
	Entries []LogEntry
	Logger  *slog.Logger
	buffer  *bytes.Buffer
}

// LogEntry represents a captured log entry.
type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// NewTestLogger creates a logger that captures all log entries for testing.
func NewTestLogger(t *testing.T) *TestLogger {
	t.Helper()

	tl := &TestLogger{
		Entries: make([]LogEntry, 0),
		buffer:  &bytes.Buffer{},
	}

	handler := &captureHandler{
		testLogger: tl,
		handler:    slog.NewJSONHandler(tl.buffer, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}

	tl.Logger = slog.New(handler)
	return tl
}

// captureHandler wraps a slog handler to capture entries.
type captureHandler struct {
	testLogger *TestLogger
	handler    slog.Handler
	attrs      []slog.Attr // Accumulated attrs from WithAttrs calls
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	entry := LogEntry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any),
	}

	for _, a := range h.attrs {
		entry.Attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		entry.Attrs[a.Key] = a.Value.Any()
		return true
	})

	h.testLogger.mu.Lock()
	h.testLogger.Entries = append(h.testLogger.Entries, entry)
	h.testLogger.mu.Unlock()

	return h.handler.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	return &captureHandler{
		testLogger: h.testLogger,
		handler:    h.handler.WithAttrs(attrs),
		attrs:      newAttrs,
	}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{
		testLogger: h.testLogger,
		handler:    h.handler.WithGroup(name),
		attrs:      h.attrs,
	}
}

// GetEntriesOfLevel returns entries at a specific level.
func (l *TestLogger) GetEntriesOfLevel(level slog.Level) []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []LogEntry
	for _, e := range l.Entries {
		if e.Level == level {
			result = append(result, e)
		}
	}
	return result
}

// GetEntriesWithAttrValue returns entries that have a specific attribute value.
func (l *TestLogger) GetEntriesWithAttrValue(key string, value any) []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []LogEntry
	for _, e := range l.Entries {
		if v, exists := e.Attrs[key]; exists && v == value {
			result = append(result, e)
		}
	}
	return result
}

// CountLevel returns the count of entries at a specific level.
func (l *TestLogger) CountLevel(level slog.Level) int {
	return len(l.GetEntriesOfLevel(level))
}

// AssertContains asserts that at least one log entry contains the message.
func (l *TestLogger) AssertContains(t *testing.T, msg string) {
	t.Helper()

	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.Entries {
		if strings.Contains(e.Message, msg) {
			return
		}
	}
	t.Errorf("Expected log to contain message %q, but it wasn't found", msg)
}

// AssertLevel asserts that there are exactly count entries at the given level.
func (l *TestLogger) AssertLevel(t *testing.T, level slog.Level, count int) {
	t.Helper()

	actual := l.CountLevel(level)
	if actual != count {
		t.Errorf("Expected %d entries at level %s, got %d", count, level.String(), actual)
	}
}

// AssertAttrValue asserts that at least one entry has the attribute with the given value.
func (l *TestLogger) AssertAttrValue(t *testing.T, key string, value any) {
	t.Helper()

	entries := l.GetEntriesWithAttrValue(key, value)
	if len(entries) == 0 {
		t.Errorf("Expected at least one log entry with %s=%v", key, value)
	}
}
