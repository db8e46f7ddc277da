package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Radiant/internal/calc/dashboard"
)

var ErrEmptySheet = errors.New("empty sheet")

// Columns is the header row of both the import template and the export.
var Columns = []string{
	"t_device_c", "t_hand_c", "t_air_c", "a_device_m2", "a_hand_m2",
	"dx_m", "dy_m", "dz_m", "angle_deg", "h_w_m2k",
}

var resultColumns = []string{"view_factor", "q_rad_w", "q_conv_w", "net_w", "error"}

type Row struct {
	Line   int               `json:"line"`
	Input  dashboard.Input   `json:"input"`
	Result *dashboard.Result `json:"-"`
	Error  string            `json:"error,omitempty"`
}

type Summary struct {
	Line       int     `json:"line"`
	ViewFactor float64 `json:"view_factor"`
	QRadW      float64 `json:"q_rad_w"`
	QConvW     float64 `json:"q_conv_w"`
	NetW       float64 `json:"net_w"`
	Error      string  `json:"error,omitempty"`
}

type ImportResult struct {
	Count   int       `json:"count"`
	Skipped int       `json:"skipped"`
	Results []Summary `json:"results"`
}

// Read parses the first sheet. Row one is the header; blank trailing cells
// take the defaults.
func Read(r io.Reader, defaults dashboard.Input) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		row := Row{Line: i + 1}
		row.Input, err = parseRow(rows[i], defaults)
		if err != nil {
			row.Error = err.Error()
		}
		out = append(out, row)
	}
	return out, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(cells []string, defaults dashboard.Input) (dashboard.Input, error) {
	in := defaults
	fields := []*float64{
		&in.TDeviceC, &in.THandC, &in.TAirC, &in.ADeviceM2, &in.AHandM2,
		&in.DxM, &in.DyM, &in.DzM, &in.AngleDeg, &in.HWM2K,
	}
	for i, cell := range cells {
		if i >= len(fields) {
			break
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64)
		if err != nil {
			return in, fmt.Errorf("%s: %q is not a number", Columns[i], cell)
		}
		*fields[i] = v
	}
	return in, nil
}

// Evaluate calculates every parsed row in place.
func Evaluate(rows []Row) ImportResult {
	res := ImportResult{Results: make([]Summary, 0, len(rows))}
	for i := range rows {
		row := &rows[i]
		if row.Error == "" {
			out, err := dashboard.Calculate(row.Input)
			if err != nil {
				row.Error = err.Error()
			} else {
				row.Result = &out
			}
		}
		s := Summary{Line: row.Line, Error: row.Error}
		if row.Result != nil {
			s.ViewFactor = row.Result.ViewFactor
			s.QRadW = row.Result.QRadW
			s.QConvW = row.Result.QConvW
			s.NetW = row.Result.QRadW + row.Result.QConvW
			res.Count++
		} else {
			res.Skipped++
		}
		res.Results = append(res.Results, s)
	}
	return res
}

// Write renders inputs and results into a new workbook.
func Write(rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := make([]any, 0, len(Columns)+len(resultColumns))
	for _, c := range append(append([]string{}, Columns...), resultColumns...) {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		in := row.Input
		values := []any{
			in.TDeviceC, in.THandC, in.TAirC, in.ADeviceM2, in.AHandM2,
			in.DxM, in.DyM, in.DzM, in.AngleDeg, in.HWM2K,
		}
		if row.Result != nil {
			values = append(values, row.Result.ViewFactor, row.Result.QRadW, row.Result.QConvW,
				row.Result.QRadW+row.Result.QConvW, "")
		} else {
			values = append(values, "", "", "", "", row.Error)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}
	return f, nil
}
