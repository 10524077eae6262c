package emit

import "github.com/sweeney/encoder-reader/internal/logic"

// FakeEmitter records emitted events for test assertions.
type FakeEmitter struct {
	// Events contains all events that were emitted.
	Events []logic.Event

	// Lines contains the protocol lines that were emitted.
	Lines []string

	// EmitError, if set, will be returned by Emit.
	EmitError error

	// FailAfter, if > 0, makes Emit return EmitError only once that many
	// events have been recorded.
	FailAfter int
}

// NewFakeEmitter creates a FakeEmitter for testing.
func NewFakeEmitter() *FakeEmitter {
	return &FakeEmitter{}
}

// Emit records the event.
func (f *FakeEmitter) Emit(event logic.Event) error {
	if f.EmitError != nil && len(f.Events) >= f.FailAfter {
		return f.EmitError
	}

	f.Events = append(f.Events, event)
	f.Lines = append(f.Lines, FormatLine(event))
	return nil
}

// Types returns the emitted event types in order.
func (f *FakeEmitter) Types() []logic.EventType {
	out := make([]logic.EventType, len(f.Events))
	for i, e := range f.Events {
		out[i] = e.Type
	}
	return out
}
