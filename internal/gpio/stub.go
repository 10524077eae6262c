//go:build !linux

package gpio

import "errors"

// RealLines is not available on non-Linux platforms.
type RealLines struct{}

// NewRealLines returns an error on non-Linux platforms.
func NewRealLines(m Map) (*RealLines, error) {
	return nil, acquisitionError("open gpio chip", errors.New("not supported on this platform (requires Linux)"))
}

// Read is not implemented on non-Linux platforms.
func (r *RealLines) Read(s *Sample) error {
	return errors.New("gpio: not supported")
}

// SetStatus is not implemented on non-Linux platforms.
func (r *RealLines) SetStatus(on bool) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealLines) Close() error {
	return nil
}
