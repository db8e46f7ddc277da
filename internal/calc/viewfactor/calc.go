package viewfactor

import (
	"fmt"
	"math"

	"Radiant/internal/calc/check"
)

type Input struct {
	A1M2     float64 `json:"a1_m2"`
	A2M2     float64 `json:"a2_m2"`
	DxM      float64 `json:"dx_m"`
	DyM      float64 `json:"dy_m"`
	DzM      float64 `json:"dz_m"`
	AngleDeg float64 `json:"angle_deg"`
}

// Result carries F12 and whether the raw estimate was clamped.
type Result struct {
	F12       float64 `json:"f12"`
	DistanceM float64 `json:"distance_m"`
	Clamped   bool    `json:"clamped"`
	Notes     string  `json:"notes"`
}

// Estimate approximates the view factor from surface 1 to surface 2.
//
// Both surfaces are treated as squares of side sqrt(area) and the factor is
// cos(angle) * L1 * L2 / (pi * d^2), clamped to [0, 1]. This is a proxy for
// the finite-rectangle integral, not the integral itself.
func Estimate(a1, a2, dx, dy, dz, angleDeg float64) (float64, error) {
	f, _, err := estimate(a1, a2, dx, dy, dz, angleDeg)
	return f, err
}

func estimate(a1, a2, dx, dy, dz, angleDeg float64) (f12 float64, raw float64, err error) {
	if err := check.Finite("dx_m", dx, "dy_m", dy, "dz_m", dz, "angle_deg", angleDeg); err != nil {
		return 0, 0, err
	}
	if err := check.Area("a1_m2", a1); err != nil {
		return 0, 0, err
	}
	if err := check.Area("a2_m2", a2); err != nil {
		return 0, 0, err
	}
	if err := check.NonZeroDistance(dx, dy, dz); err != nil {
		return 0, 0, err
	}

	theta := angleDeg * (math.Pi / 180)
	d := Distance(dx, dy, dz)
	l1 := math.Sqrt(a1)
	l2 := math.Sqrt(a2)

	raw = (math.Cos(theta) / (math.Pi * d * d)) * (l1 * l2)
	return math.Max(math.Min(raw, 1.0), 0.0), raw, nil
}

// Distance is the straight-line distance between the two surface centers.
func Distance(dx, dy, dz float64) float64 {
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func Calculate(in Input) (Result, error) {
	f, raw, err := estimate(in.A1M2, in.A2M2, in.DxM, in.DyM, in.DzM, in.AngleDeg)
	if err != nil {
		return Result{}, fmt.Errorf("view factor: %w", err)
	}
	return Result{
		F12:       f,
		DistanceM: Distance(in.DxM, in.DyM, in.DzM),
		Clamped:   f != raw,
		Notes:     "Square-equivalent approximation, not the exact rectangle integral.",
	}, nil
}
