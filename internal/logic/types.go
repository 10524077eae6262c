// Package logic contains the pure edge and debounce decoding for the rotary
// encoder, its push switch and the NEXT button.
// This package has NO external dependencies (no GPIO, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// EventType is the protocol name of a decoded event.
type EventType string

const (
	EventRotaryCW      EventType = "ROTARY_CW"
	EventRotaryCCW     EventType = "ROTARY_CCW"
	EventButtonPress   EventType = "BTN_PRESS"
	EventButtonRelease EventType = "BTN_RELEASE"
	EventNext          EventType = "BTN_NEXT"
)

// Event is a decoded input event, in the order it was detected.
type Event struct {
	Timestamp time.Time
	Type      EventType
}

// Input represents a single sample of line levels (true = high).
type Input struct {
	CLK  bool
	DT   bool
	SW   bool // low while pressed
	NEXT bool // low while pressed
	Time time.Time
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	CW      int
	CCW     int
	Press   int
	Release int
	Next    int
}

// HeartbeatData contains information for a heartbeat log line.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
