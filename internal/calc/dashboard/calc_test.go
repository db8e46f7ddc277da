package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Radiant/internal/calc/check"
)

func TestCalculate_Defaults(t *testing.T) {
	res, err := Calculate(Defaults())
	require.NoError(t, err)

	assert.InEpsilon(t, 0.3261705732043506, res.ViewFactor, 1e-9)
	assert.InEpsilon(t, 0.6248350540655067, res.QRadW, 1e-9)
	assert.InEpsilon(t, -0.975, res.QConvW, 1e-9)
	assert.Equal(t, "Radiative Heat Gain (Q_rad): 0.62 W", res.QRadText)
	assert.Equal(t, "Convective Heat Loss (Q_conv): -0.97 W", res.QConvText)
	assert.Equal(t, "F12 = 0.33", res.Scene.Label)
	assert.Len(t, res.Mesh.X, 8)
}

func TestCalculate_Chart(t *testing.T) {
	res, err := Calculate(Defaults())
	require.NoError(t, err)

	c := res.Chart
	assert.Equal(t, [2]float64{-7.5, 7.5}, c.YRange)
	assert.Equal(t, "group", c.BarMode)
	require.Len(t, c.Bars, 2)
	assert.Equal(t, RadiativeLabel, c.Bars[0].Name)
	assert.Equal(t, "orange", c.Bars[0].Color)
	assert.Equal(t, res.QRadW, c.Bars[0].Value)
	assert.Equal(t, ConvectiveLabel, c.Bars[1].Name)
	assert.Equal(t, res.QConvW, c.Bars[1].Value)
}

func TestCalculate_ZeroCoefficientMeansNoConvection(t *testing.T) {
	in := Defaults()
	in.HWM2K = 0
	res, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Input.HWM2K)
	assert.Equal(t, 0.0, res.QConvW)
	assert.Equal(t, "Convective Heat Loss (Q_conv): 0.00 W", res.QConvText)
}

func TestCalculate_ZeroDistance(t *testing.T) {
	in := Defaults()
	in.DzM = 0
	_, err := Calculate(in)
	assert.ErrorIs(t, err, check.ErrZeroDistance)
}

func TestHandler_PartialBodyKeepsDefaults(t *testing.T) {
	h := &Handler{Defaults: Defaults()}
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"angle_deg":180}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 0.0, res.ViewFactor)
	assert.Equal(t, 0.0, res.QRadW)
	assert.Equal(t, 70.0, res.Input.TDeviceC)
	assert.Equal(t, 180.0, res.Input.AngleDeg)
}

func TestHandler_Errors(t *testing.T) {
	h := &Handler{Defaults: Defaults()}

	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"dz_m":0}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request payload")
}

func TestHandler_GetDefaults(t *testing.T) {
	h := &Handler{Defaults: Defaults()}
	rec := httptest.NewRecorder()
	h.GetDefaults(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var got Input
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, Defaults(), got)
}
