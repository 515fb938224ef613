package output

import (
	"github.com/iwvelando/freedom-forecast/internal/forecast"
	"github.com/iwvelando/freedom-forecast/pkg/format"
	"github.com/iwvelando/freedom-forecast/pkg/mathutil"
)

// Point is one (year, amount) pair of a plotted series.
type Point struct {
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
	Label  string  `json:"label"`
}

// Chart is everything a plotting collaborator needs to draw a forecast:
// both trajectories, a horizontal reference line at the target, and the
// annotated point where the target is first met.
type Chart struct {
	Name       string  `json:"name"`
	Currency   string  `json:"currency"`
	Nominal    []Point `json:"nominal"`
	Real       []Point `json:"real"`
	TargetLine float64 `json:"targetLine"`
	Annotation *Point  `json:"annotation,omitempty"`
}

// ChartData builds the chart for a forecast. Amounts are rounded to cents.
func ChartData(f forecast.Forecast) Chart {
	chart := Chart{
		Name:       f.Name,
		Currency:   format.NormalizeCurrency(f.Currency),
		Nominal:    make([]Point, 0, f.Result.Len()),
		Real:       make([]Point, 0, f.Result.Len()),
		TargetLine: f.Input.TargetCapital,
	}

	for i, year := range f.Result.Years {
		chart.Nominal = append(chart.Nominal, Point{
			Year:   year,
			Amount: mathutil.Round(f.Result.Nominal[i]),
			Label:  format.Compact(f.Result.Nominal[i], f.Currency),
		})
		chart.Real = append(chart.Real, Point{
			Year:   year,
			Amount: mathutil.Round(f.Result.Real[i]),
			Label:  format.Compact(f.Result.Real[i], f.Currency),
		})
	}

	if f.Result.TargetReached {
		year, amount := f.Result.TargetPoint()
		chart.Annotation = &Point{
			Year:   year,
			Amount: mathutil.Round(amount),
			Label:  format.Compact(amount, f.Currency),
		}
	}
	return chart
}
