package heat

import (
	"fmt"
	"math"

	"Radiant/internal/calc/check"
	"Radiant/internal/calc/viewfactor"
)

const (
	// StefanBoltzmann constant, W/m2K4.
	StefanBoltzmann = 5.67e-8
	// Emissivity of the device surface.
	Emissivity = 0.95
	// DefaultConvectionCoefficient fills h_w_m2k when a request omits it, W/m2K.
	DefaultConvectionCoefficient = 10.0

	kelvinOffset = 273.15
)

// Input is one device and hand configuration. Temperatures in °C, areas in
// m², offsets in m.
type Input struct {
	TDeviceC  float64 `json:"t_device_c"`
	THandC    float64 `json:"t_hand_c"`
	TAirC     float64 `json:"t_air_c"`
	ADeviceM2 float64 `json:"a_device_m2"`
	AHandM2   float64 `json:"a_hand_m2"`
	DxM       float64 `json:"dx_m"`
	DyM       float64 `json:"dy_m"`
	DzM       float64 `json:"dz_m"`
	AngleDeg  float64 `json:"angle_deg"`
	HWM2K     float64 `json:"h_w_m2k"`
}

type Result struct {
	ViewFactor float64 `json:"view_factor"`
	QRadW      float64 `json:"q_rad_w"`
	QConvW     float64 `json:"q_conv_w"`
	NetW       float64 `json:"net_w"`
	HWM2K      float64 `json:"h_w_m2k"`
	Notes      string  `json:"notes"`
}

func Kelvin(c float64) float64 {
	return c + kelvinOffset
}

// RadiativeGain is the net radiative heat flow from the device into the
// hand, W. The hand is surface 1 and the device surface 2 of the view
// factor. The result is negative when the hand is the hotter surface.
func RadiativeGain(aDevice, aHand, tDeviceC, tHandC, dx, dy, dz, angleDeg float64) (float64, error) {
	if err := checkInputs(aDevice, aHand, tDeviceC, tHandC); err != nil {
		return 0, err
	}
	f, err := viewfactor.Estimate(aHand, aDevice, dx, dy, dz, angleDeg)
	if err != nil {
		return 0, err
	}
	return radiative(f, aDevice, tDeviceC, tHandC), nil
}

func checkInputs(aDevice, aHand, tDeviceC, tHandC float64) error {
	if err := check.Finite("t_device_c", tDeviceC, "t_hand_c", tHandC); err != nil {
		return err
	}
	if err := check.Area("a_device_m2", aDevice); err != nil {
		return err
	}
	return check.Area("a_hand_m2", aHand)
}

func radiative(f, aDevice, tDeviceC, tHandC float64) float64 {
	tDevice := Kelvin(tDeviceC)
	tHand := Kelvin(tHandC)
	return Emissivity * StefanBoltzmann * f * aDevice * (math.Pow(tDevice, 4) - math.Pow(tHand, 4))
}

// ConvectiveLoss is the heat the hand gives off to the surrounding air, W,
// returned negated so it plots opposite the radiative gain. The result is
// linear in h for any finite h, so h = 0 gives no loss.
func ConvectiveLoss(tHandC, tAirC, aHand, h float64) (float64, error) {
	if err := check.Finite("t_hand_c", tHandC, "t_air_c", tAirC, "h_w_m2k", h); err != nil {
		return 0, err
	}
	if err := check.Area("a_hand_m2", aHand); err != nil {
		return 0, err
	}
	q := h * aHand * (Kelvin(tHandC) - Kelvin(tAirC))
	return -q, nil
}

func Calculate(in Input) (Result, error) {
	if err := checkInputs(in.ADeviceM2, in.AHandM2, in.TDeviceC, in.THandC); err != nil {
		return Result{}, fmt.Errorf("heat: %w", err)
	}
	f, err := viewfactor.Estimate(in.AHandM2, in.ADeviceM2, in.DxM, in.DyM, in.DzM, in.AngleDeg)
	if err != nil {
		return Result{}, fmt.Errorf("heat: %w", err)
	}
	qRad := radiative(f, in.ADeviceM2, in.TDeviceC, in.THandC)
	qConv, err := ConvectiveLoss(in.THandC, in.TAirC, in.AHandM2, in.HWM2K)
	if err != nil {
		return Result{}, fmt.Errorf("heat: %w", err)
	}

	return Result{
		ViewFactor: f,
		QRadW:      qRad,
		QConvW:     qConv,
		NetW:       qRad + qConv,
		HWM2K:      in.HWM2K,
		Notes:      fmt.Sprintf("Emissivity %.2f, convective loss plotted as negative.", Emissivity),
	}, nil
}
