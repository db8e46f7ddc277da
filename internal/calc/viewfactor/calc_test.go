package viewfactor

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Radiant/internal/calc/check"
)

func TestEstimate_Default(t *testing.T) {
	f, err := Estimate(0.015, 0.007, 0, 0, 0.1, 0)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.3261705732043506, f, 1e-9)
}

func TestEstimate_ClampedToUnitInterval(t *testing.T) {
	tests := []struct {
		name               string
		a1, a2, dx, dy, dz float64
		angle              float64
		want               float64
	}{
		{"very close", 0.5, 0.5, 0, 0, 0.01, 0, 1},
		{"upside down", 0.015, 0.007, 0, 0, 0.1, 180, 0},
		{"past ninety", 0.015, 0.007, 0.05, 0, 0.1, 120, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Estimate(tt.a1, tt.a2, tt.dx, tt.dy, tt.dz, tt.angle)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}

	for _, angle := range []float64{-720, -135, -45, 0, 30, 89, 91, 270, 1e4} {
		for _, dz := range []float64{0.001, 0.05, 0.3, 10} {
			f, err := Estimate(0.02, 0.01, 0.01, -0.02, dz, angle)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, f, 0.0)
			assert.LessOrEqual(t, f, 1.0)
		}
	}
}

func TestEstimate_NonIncreasingWithDistance(t *testing.T) {
	prev := math.Inf(1)
	for dz := 0.02; dz < 1; dz += 0.01 {
		f, err := Estimate(0.015, 0.007, 0.01, 0.02, dz, 15)
		require.NoError(t, err)
		assert.LessOrEqual(t, f, prev)
		prev = f
	}
}

func TestEstimate_RightAngleIsZero(t *testing.T) {
	for _, dz := range []float64{0.05, 0.1, 2} {
		f, err := Estimate(0.015, 0.007, 0, 0, dz, 90)
		require.NoError(t, err)
		assert.InDelta(t, 0, f, 1e-15)
	}
}

func TestEstimate_SymmetricInAreas(t *testing.T) {
	f1, err := Estimate(0.015, 0.007, 0.02, 0.01, 0.12, 30)
	require.NoError(t, err)
	f2, err := Estimate(0.007, 0.015, 0.02, 0.01, 0.12, 30)
	require.NoError(t, err)
	assert.Equal(t, f1, f2)
}

func TestEstimate_Rejects(t *testing.T) {
	_, err := Estimate(0.015, 0.007, 0, 0, 0, 0)
	assert.ErrorIs(t, err, check.ErrZeroDistance)

	_, err = Estimate(0, 0.007, 0, 0, 0.1, 0)
	assert.ErrorIs(t, err, check.ErrInvalidArea)

	_, err = Estimate(0.015, -0.007, 0, 0, 0.1, 0)
	assert.ErrorIs(t, err, check.ErrInvalidArea)

	_, err = Estimate(0.015, 0.007, 0, 0, 0.1, math.NaN())
	assert.ErrorIs(t, err, check.ErrNonFiniteInput)
}

func TestCalculate_ReportsClamp(t *testing.T) {
	res, err := Calculate(Input{A1M2: 0.015, A2M2: 0.007, DzM: 0.1, AngleDeg: 180})
	require.NoError(t, err)
	assert.True(t, res.Clamped)
	assert.InDelta(t, 0.1, res.DistanceM, 1e-12)

	res, err = Calculate(Input{A1M2: 0.015, A2M2: 0.007, DzM: 0.1})
	require.NoError(t, err)
	assert.False(t, res.Clamped)
}

func TestHandler_Calc(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/viewfactor/calc",
		strings.NewReader(`{"a1_m2":0.015,"a2_m2":0.007,"dz_m":0.1}`))
	h.Calc(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"f12":0.32617`)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/tools/viewfactor/calc",
		strings.NewReader(`{"a1_m2":0.015,"a2_m2":0.007}`))
	h.Calc(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/tools/viewfactor/calc", strings.NewReader(`{`))
	h.Calc(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
