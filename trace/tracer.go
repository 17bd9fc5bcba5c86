package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"dynvar/types"
)

// Tracer writes diagnostic lines about value navigation and conversion
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// New creates a tracer. A nil writer means stderr.
func New(enabled bool, filters []string, writer io.Writer) *Tracer {
	if writer == nil {
		writer = os.Stderr
	}
	return &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// Init initializes the global tracer
func Init(enabled bool, filters []string, writer io.Writer) {
	globalTracer = New(enabled, filters, writer)
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	if globalTracer == nil {
		return false
	}
	return globalTracer.enabled
}

// matchesFilter checks if an operation name matches any of the filter patterns
func (t *Tracer) matchesFilter(op string) bool {
	if len(t.filters) == 0 {
		return true
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, op); matched {
			return true
		}
	}
	return false
}

func (t *Tracer) printf(op, format string, args ...any) {
	if t == nil || !t.enabled || !t.matchesFilter(op) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] "+format+"\n", args...)
}

// Step logs one resolved path segment
func (t *Tracer) Step(op, path, segment string, found types.Kind) {
	t.printf(op, "STEP %s %s [%s] => %s", op, path, segment, found)
}

// Miss logs the segment where a path walk stopped
func (t *Tracer) Miss(op, path, segment string) {
	t.printf(op, "MISS %s %s [%s]", op, path, segment)
}

// Coerce logs a coercion and its outcome
func (t *Tracer) Coerce(from types.Kind, target string, err error) {
	if err != nil {
		t.printf("coerce", "COERCE %s -> %s failed: %s", from, target, types.CodeOf(err))
		return
	}
	t.printf("coerce", "COERCE %s -> %s", from, target)
}

// Convert logs a document conversion
func (t *Tracer) Convert(direction, format string, size int) {
	t.printf("convert", "CONVERT %s %s %d bytes", direction, format, size)
}

// Global convenience functions

// Step logs a path segment using the global tracer
func Step(op, path, segment string, found types.Kind) {
	globalTracer.Step(op, path, segment, found)
}

// Miss logs a path miss using the global tracer
func Miss(op, path, segment string) {
	globalTracer.Miss(op, path, segment)
}

// Coerce logs a coercion using the global tracer
func Coerce(from types.Kind, target string, err error) {
	globalTracer.Coerce(from, target, err)
}

// Convert logs a conversion using the global tracer
func Convert(direction, format string, size int) {
	globalTracer.Convert(direction, format, size)
}
