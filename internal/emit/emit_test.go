package emit

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/encoder-reader/internal/logic"
)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		event logic.EventType
		want  string
	}{
		{logic.EventRotaryCW, "ROTARY_CW\n"},
		{logic.EventRotaryCCW, "ROTARY_CCW\n"},
		{logic.EventButtonPress, "BTN_PRESS\n"},
		{logic.EventButtonRelease, "BTN_RELEASE\n"},
		{logic.EventNext, "BTN_NEXT\n"},
	}

	for _, tt := range tests {
		got := FormatLine(logic.Event{Type: tt.event, Timestamp: time.Now()})
		if got != tt.want {
			t.Errorf("FormatLine(%s): got %q, want %q", tt.event, got, tt.want)
		}
	}
}

// countingWriter records each Write call separately.
type countingWriter struct {
	writes []string
	err    error
}

func (w *countingWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func TestWriterFlushesEachEvent(t *testing.T) {
	cw := &countingWriter{}
	e := NewWriter(cw)

	for _, typ := range []logic.EventType{logic.EventRotaryCW, logic.EventButtonPress, logic.EventButtonRelease} {
		if err := e.Emit(logic.Event{Type: typ}); err != nil {
			t.Fatalf("emit %s: %v", typ, err)
		}
		// Visible to the reader before Emit returns.
		if last := cw.writes[len(cw.writes)-1]; last != string(typ)+"\n" {
			t.Errorf("expected %q written, got %q", string(typ)+"\n", last)
		}
	}

	if len(cw.writes) != 3 {
		t.Errorf("expected one write per event, got %d: %q", len(cw.writes), cw.writes)
	}
}

func TestWriterOrder(t *testing.T) {
	var buf bytes.Buffer
	e := NewWriter(&buf)

	seq := []logic.EventType{
		logic.EventRotaryCW,
		logic.EventRotaryCCW,
		logic.EventButtonPress,
		logic.EventNext,
		logic.EventButtonRelease,
	}
	for _, typ := range seq {
		if err := e.Emit(logic.Event{Type: typ}); err != nil {
			t.Fatalf("emit %s: %v", typ, err)
		}
	}

	want := "ROTARY_CW\nROTARY_CCW\nBTN_PRESS\nBTN_NEXT\nBTN_RELEASE\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriterError(t *testing.T) {
	broken := errors.New("broken pipe")
	e := NewWriter(&countingWriter{err: broken})

	err := e.Emit(logic.Event{Type: logic.EventNext})
	if err == nil {
		t.Fatal("expected error from broken writer")
	}
	if !errors.Is(err, broken) {
		t.Errorf("expected wrapped %v, got %v", broken, err)
	}
}

func TestFakeEmitter(t *testing.T) {
	f := NewFakeEmitter()
	f.EmitError = errors.New("emit failed")
	f.FailAfter = 1

	if err := f.Emit(logic.Event{Type: logic.EventRotaryCW}); err != nil {
		t.Fatalf("first emit: unexpected error: %v", err)
	}
	if err := f.Emit(logic.Event{Type: logic.EventRotaryCCW}); err == nil {
		t.Error("second emit: expected error")
	}

	if len(f.Events) != 1 || f.Lines[0] != "ROTARY_CW\n" {
		t.Errorf("unexpected record: %v %q", f.Types(), f.Lines)
	}
}
