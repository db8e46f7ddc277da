package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"Radiant/internal/calc/dashboard"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead(t *testing.T) {
	buf := workbook(t, [][]any{
		{70, 33, 20, 0.007, 0.015, 0, 0, 0.1, 0, 5},
		{"60", "", "", "", "", "", "", "0,2"},
		{"hot", 33},
		{},
		{70, 33, 20, 0.007, -1, 0, 0, 0.1, 0, 5},
	})

	rows, err := Read(buf, dashboard.Defaults())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, dashboard.Defaults(), rows[0].Input)

	assert.Equal(t, 60.0, rows[1].Input.TDeviceC)
	assert.Equal(t, 0.2, rows[1].Input.DzM)
	assert.Equal(t, 33.0, rows[1].Input.THandC)

	assert.Contains(t, rows[2].Error, "t_device_c")
	assert.Empty(t, rows[3].Error)

	res := Evaluate(rows)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 2, res.Skipped)
	assert.InDelta(t, -0.975, res.Results[0].QConvW, 1e-9)
	assert.Contains(t, res.Results[3].Error, "area must be positive")
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(workbook(t, nil), dashboard.Defaults())
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = Read(strings.NewReader("not a workbook"), dashboard.Defaults())
	assert.Error(t, err)
}

func TestWriteThenRead(t *testing.T) {
	bad := dashboard.Defaults()
	bad.DzM = 0
	rows := []Row{{Line: 2, Input: dashboard.Defaults()}, {Line: 3, Input: bad}}
	Evaluate(rows)

	f, err := Write(rows)
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	back, err := Read(buf, dashboard.Input{})
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, dashboard.Defaults(), back[0].Input)

	x, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer x.Close()
	got, err := x.GetCellValue(x.GetSheetName(0), "O3")
	require.NoError(t, err)
	assert.Contains(t, got, "surfaces must not share a center")
}

func TestHandler_Import(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "cases.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook(t, [][]any{{70, 33, 20, 0.007, 0.015, 0, 0, 0.1, 0, 5}}).Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	(&Handler{Defaults: dashboard.Defaults(), MaxUploadBytes: 1 << 20}).Import(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res ImportResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 1, res.Count)
}

func TestHandler_Export(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).Export(rec, httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"items":[{"t_device_c":70,"t_hand_c":33,"t_air_c":20,"a_device_m2":0.007,"a_hand_m2":0.015,"dz_m":0.1,"h_w_m2k":5}]}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxType, rec.Header().Get("Content-Type"))
	// xlsx is a zip archive
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = httptest.NewRecorder()
	(&Handler{}).Export(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
