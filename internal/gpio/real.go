//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// index of each input within the input request
const (
	idxCLK = iota
	idxDT
	idxSW
	idxNEXT
	numInputs
)

// RealLines reads and drives GPIO on actual hardware using the Linux GPIO
// character device.
type RealLines struct {
	chip   *gpiocdev.Chip
	inputs *gpiocdev.Lines
	status *gpiocdev.Line
	vals   []int
}

// NewRealLines opens the chip and reserves the inputs and the status line.
// The status line is driven high (LED on) as soon as it is reserved.
// On any failure everything reserved so far is released and the returned
// error wraps ErrAcquisition.
func NewRealLines(m Map) (_ *RealLines, err error) {
	r := &RealLines{vals: make([]int, numInputs)}
	defer func() {
		if err != nil {
			r.Close()
		}
	}()

	r.chip, err = gpiocdev.NewChip(m.Chip)
	if err != nil {
		return nil, acquisitionError("open gpio chip", err)
	}

	// CLK and DT keep whatever bias the board setup applied.
	// SW and NEXT are bare switches to ground and need the internal pull-up.
	r.inputs, err = r.chip.RequestLines(
		[]int{m.CLK, m.DT, m.SW, m.NEXT},
		gpiocdev.WithConsumer(ConsumerInputs),
		gpiocdev.AsInput,
		gpiocdev.WithBiasAsIs,
		gpiocdev.WithLines([]int{m.SW, m.NEXT}, gpiocdev.WithPullUp),
	)
	if err != nil {
		return nil, acquisitionError(fmt.Sprintf("request input lines %d,%d,%d,%d", m.CLK, m.DT, m.SW, m.NEXT), err)
	}

	r.status, err = r.chip.RequestLine(m.LED,
		gpiocdev.WithConsumer(ConsumerStatus),
		gpiocdev.AsOutput(1),
	)
	if err != nil {
		return nil, acquisitionError(fmt.Sprintf("request status line %d", m.LED), err)
	}

	return r, nil
}

// Read samples all four inputs with a single request.
func (r *RealLines) Read(s *Sample) error {
	if err := r.inputs.Values(r.vals); err != nil {
		return fmt.Errorf("read input lines: %w", err)
	}
	s.CLK = r.vals[idxCLK] != 0
	s.DT = r.vals[idxDT] != 0
	s.SW = r.vals[idxSW] != 0
	s.NEXT = r.vals[idxNEXT] != 0
	return nil
}

// SetStatus drives the status LED.
func (r *RealLines) SetStatus(on bool) error {
	if err := r.status.SetValue(level(on)); err != nil {
		return fmt.Errorf("set status line: %w", err)
	}
	return nil
}

// Close turns the status LED off, then releases the status line, the input
// lines and the chip. Resources never acquired are skipped, and each is
// released at most once.
func (r *RealLines) Close() error {
	var errs []error

	if r.status != nil {
		if err := r.status.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear status line: %w", err))
		}
		if err := r.status.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close status line: %w", err))
		}
		r.status = nil
	}
	if r.inputs != nil {
		if err := r.inputs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close input lines: %w", err))
		}
		r.inputs = nil
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		r.chip = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
