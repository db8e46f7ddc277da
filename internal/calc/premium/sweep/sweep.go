package sweep

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"Radiant/internal/calc/check"
	"Radiant/internal/calc/dashboard"
)

type Param string

const (
	ParamAngle    Param = "angle_deg"
	ParamDistance Param = "dz_m"
	ParamOffsetX  Param = "dx_m"
	ParamOffsetY  Param = "dy_m"
)

var (
	ErrUnknownParam = errors.New("unknown sweep parameter")
	ErrSteps        = errors.New("steps out of range")
)

type Input struct {
	Base  dashboard.Input `json:"base"`
	Param Param           `json:"param"`
	From  float64         `json:"from"`
	To    float64         `json:"to"`
	Steps int             `json:"steps"`
}

type Point struct {
	Value      float64 `json:"value" csv:"value"`
	ViewFactor float64 `json:"view_factor" csv:"view_factor"`
	QRadW      float64 `json:"q_rad_w" csv:"q_rad_w"`
	QConvW     float64 `json:"q_conv_w" csv:"q_conv_w"`
	NetW       float64 `json:"net_w" csv:"net_w"`
	Skipped    string  `json:"skipped,omitempty" csv:"skipped"`
}

type Result struct {
	Param     Param   `json:"param"`
	Points    []Point `json:"points"`
	Skipped   int     `json:"skipped"`
	MaxQRadW  float64 `json:"max_q_rad_w"`
	MaxAt     float64 `json:"max_at"`
	MeanQRadW float64 `json:"mean_q_rad_w"`
}

// Calculate evaluates the base input at Steps evenly spaced values of Param
// between From and To inclusive. Points the calculator rejects, such as a
// zero center distance, are kept in the output and marked skipped; the
// summary fields cover the evaluated points only.
func Calculate(in Input, maxSteps int) (Result, error) {
	set, err := setter(in.Param)
	if err != nil {
		return Result{}, err
	}
	if in.Steps < 1 || (maxSteps > 0 && in.Steps > maxSteps) {
		return Result{}, fmt.Errorf("%w: %d", ErrSteps, in.Steps)
	}
	if err := check.Finite("from", in.From, "to", in.To); err != nil {
		return Result{}, err
	}

	values := []float64{in.From}
	if in.Steps > 1 {
		values = floats.Span(make([]float64, in.Steps), in.From, in.To)
	}

	res := Result{Param: in.Param, Points: make([]Point, 0, len(values))}
	var gains, at []float64
	for _, v := range values {
		item := in.Base
		set(&item, v)
		out, err := dashboard.Calculate(item)
		if err != nil {
			if !check.IsInput(err) {
				return Result{}, err
			}
			res.Points = append(res.Points, Point{Value: v, Skipped: err.Error()})
			res.Skipped++
			continue
		}
		res.Points = append(res.Points, Point{
			Value:      v,
			ViewFactor: out.ViewFactor,
			QRadW:      out.QRadW,
			QConvW:     out.QConvW,
			NetW:       out.QRadW + out.QConvW,
		})
		gains = append(gains, out.QRadW)
		at = append(at, v)
	}

	if len(gains) > 0 {
		i := floats.MaxIdx(gains)
		res.MaxQRadW = gains[i]
		res.MaxAt = at[i]
		res.MeanQRadW = stat.Mean(gains, nil)
	}
	return res, nil
}

func setter(p Param) (func(*dashboard.Input, float64), error) {
	switch p {
	case ParamAngle:
		return func(in *dashboard.Input, v float64) { in.AngleDeg = v }, nil
	case ParamDistance:
		return func(in *dashboard.Input, v float64) { in.DzM = v }, nil
	case ParamOffsetX:
		return func(in *dashboard.Input, v float64) { in.DxM = v }, nil
	case ParamOffsetY:
		return func(in *dashboard.Input, v float64) { in.DyM = v }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParam, p)
}
