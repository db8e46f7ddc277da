package report

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"Radiant/internal/calc/check"
	"Radiant/internal/calc/dashboard"
)

func TestChartPNG(t *testing.T) {
	b, err := ChartPNG(dashboard.NewChart(0.62, -0.97), 4*vg.Inch, 3*vg.Inch)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Input{Project: "Pocket warmer", Author: "QA", Input: dashboard.Defaults()},
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRender_InvalidInput(t *testing.T) {
	in := dashboard.Defaults()
	in.ADeviceM2 = 0
	err := Render(&bytes.Buffer{}, Input{Input: in}, time.Now())
	assert.ErrorIs(t, err, check.ErrInvalidArea)
}

func TestHandler_Generate(t *testing.T) {
	h := &Handler{Defaults: dashboard.Defaults()}

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Bench test","input":{"angle_deg":30}}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"input":{"dz_m":0}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
