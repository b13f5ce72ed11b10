package core

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds shared by the estimation packages. Failures wrap one of these
// with context, so callers match them with errors.Is.
var (
	ErrShapeMismatch    = errors.New("core: frame shape mismatch")
	ErrInvalidParameter = errors.New("core: invalid parameter")
	ErrEmptyInput       = errors.New("core: empty input")
)

// ValidateSampleInterval reports whether dt is a usable time between frames.
func ValidateSampleInterval(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: sample interval must be finite and > 0: %v", ErrInvalidParameter, dt)
	}
	return nil
}

// ValidateEdgeBins reports whether n leading and n trailing bins can be
// suppressed in a spectrum of the given length.
func ValidateEdgeBins(n, length int) error {
	if n < 0 || n > length/2 {
		return fmt.Errorf("%w: edge bins must be in [0,%d]: %d", ErrInvalidParameter, length/2, n)
	}
	return nil
}
