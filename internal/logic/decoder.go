package logic

import "time"

// DefaultNextDebounce is the minimum spacing between accepted NEXT presses.
const DefaultNextDebounce = 1 * time.Second

// Decoder turns successive samples into events.
//
// Rotary: one event per detent, decoded on the falling edge of CLK only.
// With CLK now low, DT high means clockwise and DT low counter-clockwise.
//
// Switch: a latch pairs each press with one release. A low level while not
// latched is a press, a high level while latched is a release.
//
// NEXT: falling edges only, and an edge closer than the debounce interval
// to the last accepted one is dropped.
type Decoder struct {
	nextDebounce time.Duration

	lastCLK  bool
	lastSW   bool
	lastNEXT bool
	pressed  bool

	lastNext  time.Time
	nextFired bool

	baselined     bool
	startTime     time.Time
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewDecoder creates a decoder with the given NEXT debounce interval.
// The startTime is used for calculating uptime in heartbeats.
func NewDecoder(nextDebounce time.Duration, startTime time.Time) *Decoder {
	return &Decoder{
		nextDebounce:  nextDebounce,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process takes a new input sample and returns the events it produces,
// in the order rotary, switch, NEXT.
// The first sample only records the starting levels.
func (d *Decoder) Process(in Input) []Event {
	if !d.baselined {
		d.lastCLK = in.CLK
		d.lastSW = in.SW
		d.lastNEXT = in.NEXT
		d.baselined = true
		return nil
	}

	var events []Event
	emit := func(t EventType) {
		events = append(events, Event{Timestamp: in.Time, Type: t})
	}

	if in.CLK != d.lastCLK {
		if !in.CLK {
			if in.DT != in.CLK {
				emit(EventRotaryCW)
			} else {
				emit(EventRotaryCCW)
			}
		}
		d.lastCLK = in.CLK
	}

	if in.SW != d.lastSW {
		if !in.SW && !d.pressed {
			emit(EventButtonPress)
			d.pressed = true
		} else if in.SW && d.pressed {
			emit(EventButtonRelease)
			d.pressed = false
		}
		d.lastSW = in.SW
	}

	if in.NEXT != d.lastNEXT {
		if !in.NEXT && d.acceptNext(in.Time) {
			emit(EventNext)
		}
		d.lastNEXT = in.NEXT
	}

	for _, e := range events {
		switch e.Type {
		case EventRotaryCW:
			d.eventCounts.CW++
		case EventRotaryCCW:
			d.eventCounts.CCW++
		case EventButtonPress:
			d.eventCounts.Press++
		case EventButtonRelease:
			d.eventCounts.Release++
		case EventNext:
			d.eventCounts.Next++
		}
	}

	return events
}

// acceptNext applies the NEXT debounce window. Rejected edges are dropped,
// not deferred.
func (d *Decoder) acceptNext(now time.Time) bool {
	if d.nextFired && now.Sub(d.lastNext) < d.nextDebounce {
		return false
	}
	d.lastNext = now
	d.nextFired = true
	return true
}

// IsBaselined returns whether the starting levels have been recorded.
func (d *Decoder) IsBaselined() bool {
	return d.baselined
}

// Pressed reports whether the switch latch is set.
func (d *Decoder) Pressed() bool {
	return d.pressed
}

// EventCountsSnapshot returns the event counts since startup.
func (d *Decoder) EventCountsSnapshot() EventCounts {
	return d.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if not yet baselined, if the
// interval has not elapsed, or if interval is <= 0 (disabled).
func (d *Decoder) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if !d.baselined {
		return nil
	}

	if now.Sub(d.lastHeartbeat) < interval {
		return nil
	}

	d.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(d.startTime),
		Counts:    d.eventCounts,
	}
}
