package check

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidArea    = errors.New("area must be positive")
	ErrZeroDistance   = errors.New("surfaces must not share a center")
	ErrNonFiniteInput = errors.New("input must be a finite number")
)

// Finite fails on the first NaN or infinite value. Names and values are
// passed as alternating pairs: Finite("dx_m", dx, "dy_m", dy).
func Finite(pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		v, ok := pairs[i+1].(float64)
		if !ok {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrNonFiniteInput, pairs[i])
		}
	}
	return nil
}

// Area requires a finite, strictly positive surface area.
func Area(name string, a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return fmt.Errorf("%w: %s", ErrNonFiniteInput, name)
	}
	if a <= 0 {
		return fmt.Errorf("%w: %s = %g", ErrInvalidArea, name, a)
	}
	return nil
}

// NonZeroDistance fails when the two surface centers coincide.
func NonZeroDistance(dx, dy, dz float64) error {
	if dx == 0 && dy == 0 && dz == 0 {
		return ErrZeroDistance
	}
	return nil
}

// IsInput reports whether err came from one of the validation sentinels,
// as opposed to a transport or storage failure.
func IsInput(err error) bool {
	return errors.Is(err, ErrInvalidArea) ||
		errors.Is(err, ErrZeroDistance) ||
		errors.Is(err, ErrNonFiniteInput)
}
