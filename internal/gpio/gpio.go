// Package gpio provides line acquisition for the encoder, its push switch,
// the NEXT button and the status LED, with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import (
	"errors"
	"fmt"
)

// ErrAcquisition is wrapped by every error returned while opening the chip
// or reserving lines. Setup failures are fatal.
var ErrAcquisition = errors.New("gpio acquisition failed")

// Lines is the steady-state view of the reserved lines.
type Lines interface {
	// Read samples all four inputs into s.
	// Values are physical levels: true = high.
	Read(s *Sample) error

	// SetStatus drives the status line. true = LED on.
	SetStatus(on bool) error

	// Close deasserts the status line and releases every reservation and
	// the chip, in that order. Safe to call more than once.
	Close() error
}

// Sample is one read of every input line.
type Sample struct {
	CLK  bool
	DT   bool
	SW   bool // low while pressed (pull-up)
	NEXT bool // low while pressed (pull-up)
}

// String renders the sample as CLK=1 DT=0 SW=1 NEXT=1.
func (s Sample) String() string {
	return fmt.Sprintf("CLK=%d DT=%d SW=%d NEXT=%d", level(s.CLK), level(s.DT), level(s.SW), level(s.NEXT))
}

func level(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Chip is the fixed GPIO controller.
const Chip = "gpiochip0"

// Line offsets (BCM numbering)
const (
	PinCLK  = 23
	PinDT   = 17
	PinSW   = 27
	PinNEXT = 3
	PinLED  = 25
)

// Map names the offsets to reserve on a chip.
type Map struct {
	Chip string
	CLK  int
	DT   int
	SW   int
	NEXT int
	LED  int
}

// DefaultMap is the fixed wiring of the board.
var DefaultMap = Map{
	Chip: Chip,
	CLK:  PinCLK,
	DT:   PinDT,
	SW:   PinSW,
	NEXT: PinNEXT,
	LED:  PinLED,
}

// Consumer labels shown by gpioinfo for each reservation.
const (
	ConsumerInputs = "encoder"
	ConsumerStatus = "tvargenta-led"
)

func acquisitionError(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrAcquisition, step, err)
}
