// Package emit writes decoded events to the downstream consumer, one event
// name per line, with abstraction for testing.
package emit

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sweeney/encoder-reader/internal/logic"
)

// Emitter delivers events in detection order.
type Emitter interface {
	// Emit writes one event. When it returns nil the event is visible to
	// the reader.
	Emit(event logic.Event) error
}

// FormatLine returns the protocol line for an event, newline included.
// Only the event name is sent; no timestamp or payload.
func FormatLine(event logic.Event) string {
	return string(event.Type) + "\n"
}

// Writer emits events to an io.Writer, flushing after every event.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a Writer on w (normally os.Stdout).
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Emit writes the event line and flushes it before returning.
func (e *Writer) Emit(event logic.Event) error {
	if _, err := e.w.WriteString(FormatLine(event)); err != nil {
		return fmt.Errorf("write event %s: %w", event.Type, err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("flush event %s: %w", event.Type, err)
	}
	return nil
}
