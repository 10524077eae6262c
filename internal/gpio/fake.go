package gpio

import "errors"

// FakeLines is a test double that returns scripted samples and records
// status writes and releases.
type FakeLines struct {
	// Samples contains scripted input levels to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Status is the current level of the status line.
	Status bool

	// StatusWrites records every value passed to SetStatus, plus the
	// deassert performed by the first Close.
	StatusWrites []bool

	// Closes counts calls to Close.
	Closes int

	// Released is set by the first Close.
	Released bool

	// ReadError, if set, will be returned by Read()
	ReadError error

	// StatusError, if set, will be returned by SetStatus()
	StatusError error
}

// NewFakeLines creates FakeLines with the given samples. The status line
// starts asserted, as after a successful acquisition.
func NewFakeLines(samples []Sample) *FakeLines {
	return &FakeLines{Samples: samples, Status: true}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeLines) Read(s *Sample) error {
	if f.ReadError != nil {
		return f.ReadError
	}
	if f.Released {
		return errors.New("lines released")
	}
	if len(f.Samples) == 0 {
		return errors.New("no samples configured")
	}

	*s = f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return nil
}

// SetStatus records the status line value.
func (f *FakeLines) SetStatus(on bool) error {
	if f.StatusError != nil {
		return f.StatusError
	}
	f.Status = on
	f.StatusWrites = append(f.StatusWrites, on)
	return nil
}

// Close deasserts the status line and marks the lines released.
// Later calls are counted but release nothing.
func (f *FakeLines) Close() error {
	f.Closes++
	if f.Released {
		return nil
	}
	f.Status = false
	f.StatusWrites = append(f.StatusWrites, false)
	f.Released = true
	return nil
}
