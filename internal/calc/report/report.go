package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
	"gonum.org/v1/plot/vg"

	"Radiant/internal/calc/dashboard"
)

type Input struct {
	Project string          `json:"project"`
	Author  string          `json:"author"`
	Title   string          `json:"title"`
	Notes   string          `json:"notes"`
	Input   dashboard.Input `json:"input"`
}

type row struct {
	label string
	value string
}

// Render writes a one-page PDF with the inputs, the results and the
// contributions chart.
func Render(w io.Writer, in Input, date time.Time) error {
	res, err := dashboard.Calculate(in.Input)
	if err != nil {
		return err
	}
	if in.Title == "" {
		in.Title = "Hand Warmer Heat Exchange Report"
	}
	png, err := ChartPNG(res.Chart, 16*vg.Centimeter, 10*vg.Centimeter)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(in.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", in.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", in.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", date.Format("2006-01-02")))
	pdf.Ln(10)

	p := res.Input
	table(pdf, tr, "Inputs", []row{
		{"Device temperature", fmt.Sprintf("%.1f °C", p.TDeviceC)},
		{"Hand temperature", fmt.Sprintf("%.1f °C", p.THandC)},
		{"Air temperature", fmt.Sprintf("%.1f °C", p.TAirC)},
		{"Device surface area", fmt.Sprintf("%.4f m²", p.ADeviceM2)},
		{"Hand surface area", fmt.Sprintf("%.4f m²", p.AHandM2)},
		{"Offset (x, y, z)", fmt.Sprintf("%.3f, %.3f, %.3f m", p.DxM, p.DyM, p.DzM)},
		{"Device tilt", fmt.Sprintf("%.1f°", p.AngleDeg)},
		{"Convection coefficient", fmt.Sprintf("%.2f W/m²K", p.HWM2K)},
	})
	table(pdf, tr, "Results", []row{
		{"View factor F12", fmt.Sprintf("%.4f", res.ViewFactor)},
		{"Radiative heat gain Q_rad", fmt.Sprintf("%.3f W", res.QRadW)},
		{"Convective heat loss Q_conv", fmt.Sprintf("%.3f W", res.QConvW)},
		{"Net", fmt.Sprintf("%.3f W", res.QRadW+res.QConvW)},
	})

	pdf.RegisterImageOptionsReader("chart", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions("chart", 15, pdf.GetY(), 160, 0, true, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	if in.Notes != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 6, tr(in.Notes), "", "L", false)
	}
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func table(pdf *gofpdf.Fpdf, tr func(string) string, title string, rows []row) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(70, 6, tr(r.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, tr(r.value), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}
