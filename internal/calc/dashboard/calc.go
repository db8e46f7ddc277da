package dashboard

import (
	"fmt"

	"Radiant/internal/calc/geometry"
	"Radiant/internal/calc/heat"
)

// Input carries every field of the calculator form.
type Input heat.Input

type Result struct {
	Input      Input          `json:"input"`
	ViewFactor float64        `json:"view_factor"`
	QRadW      float64        `json:"q_rad_w"`
	QConvW     float64        `json:"q_conv_w"`
	QRadText   string         `json:"q_rad_text"`
	QConvText  string         `json:"q_conv_text"`
	Chart      Chart          `json:"chart"`
	Scene      geometry.Scene `json:"scene"`
	Mesh       geometry.Mesh  `json:"mesh"`
}

// Defaults is the form's initial state.
func Defaults() Input {
	return Input{
		TDeviceC:  70,
		THandC:    33,
		TAirC:     20,
		ADeviceM2: 0.007,
		AHandM2:   0.015,
		DxM:       0,
		DyM:       0,
		DzM:       0.1,
		AngleDeg:  0,
		HWM2K:     5,
	}
}

// Calculate runs one full update: heat flows, view factor, chart and scene.
func Calculate(in Input) (Result, error) {
	flows, err := heat.Calculate(heat.Input(in))
	if err != nil {
		return Result{}, err
	}
	scene, err := geometry.BuildScene(in.DxM, in.DyM, in.DzM, in.AngleDeg, in.AHandM2, in.ADeviceM2, flows.ViewFactor)
	if err != nil {
		return Result{}, fmt.Errorf("geometry: %w", err)
	}

	return Result{
		Input:      in,
		ViewFactor: flows.ViewFactor,
		QRadW:      flows.QRadW,
		QConvW:     flows.QConvW,
		QRadText:   fmt.Sprintf("Radiative Heat Gain (Q_rad): %.2f W", flows.QRadW),
		QConvText:  fmt.Sprintf("Convective Heat Loss (Q_conv): %.2f W", flows.QConvW),
		Chart:      NewChart(flows.QRadW, flows.QConvW),
		Scene:      scene,
		Mesh:       scene.Mesh(),
	}, nil
}
