package dashboard

const (
	RadiativeLabel  = "Radiative Heat Gain"
	ConvectiveLabel = "Convective Heat Loss"
)

// ChartYRange is the fixed y axis of the contributions chart, W.
var ChartYRange = [2]float64{-7.5, 7.5}

type Bar struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type Chart struct {
	Title   string     `json:"title"`
	XTitle  string     `json:"x_title"`
	YTitle  string     `json:"y_title"`
	YRange  [2]float64 `json:"y_range"`
	BarMode string     `json:"bar_mode"`
	Bars    []Bar      `json:"bars"`
}

func NewChart(qRad, qConv float64) Chart {
	return Chart{
		Title:   "Heat Gain/Loss Contributions",
		XTitle:  "Heat Gain/Loss Type",
		YTitle:  "Heat Gain Rate (W)",
		YRange:  ChartYRange,
		BarMode: "group",
		Bars: []Bar{
			{Name: RadiativeLabel, Value: qRad, Color: "orange"},
			{Name: ConvectiveLabel, Value: qConv, Color: "blue"},
		},
	}
}
