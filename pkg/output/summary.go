package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/freedom-forecast/internal/forecast"
	"github.com/iwvelando/freedom-forecast/pkg/format"
)

// Headline describes the plan and when the target is reached.
func Headline(f forecast.Forecast) string {
	in := f.Input
	plan := fmt.Sprintf("Contributing %s monthly from an initial amount of %s, with an annual return of %s and annual inflation of %s,",
		format.LabeledCurrency(in.MonthlyContribution, f.Currency),
		format.LabeledCurrency(in.InitialCapital, f.Currency),
		format.Percent(in.AnnualReturnRate),
		format.Percent(in.AnnualInflationRate),
	)

	target := format.LabeledCurrency(in.TargetCapital, f.Currency)
	if f.Result.TargetReached {
		return fmt.Sprintf("%s you reach the financial independence target of %s in about %d years (inflation-adjusted).",
			plan, target, f.Result.PeriodsRequired)
	}
	return fmt.Sprintf("%s the financial independence target of %s is not reached within %d years (inflation-adjusted).",
		plan, target, f.Result.Horizon)
}

// OutlookLine reports the remaining-life classification, or "" when the
// forecast has no lifespan.
func OutlookLine(f forecast.Forecast) string {
	o := f.Outlook
	if o == nil {
		return ""
	}
	if o.Feasible {
		return fmt.Sprintf("Feasible: the target is reached at age %d, leaving about %d years of a %d year life expectancy to enjoy it.",
			o.AgeReached, o.RemainingLifeYears, o.LifeExpectancy)
	}
	if !o.TargetReached {
		return fmt.Sprintf("Not feasible: the target is not reached within a %d year life expectancy starting at age %d.",
			o.LifeExpectancy, o.CurrentAge)
	}
	return fmt.Sprintf("Not feasible: the target is reached at age %d, which leaves no time within a %d year life expectancy to enjoy it.",
		o.AgeReached, o.LifeExpectancy)
}

// SolverLine reports the contribution solver outcome, or "" without one.
func SolverLine(f forecast.Forecast) string {
	s := f.Solver
	if s == nil {
		return ""
	}
	if !s.Converged {
		return fmt.Sprintf("Solver: %s", strings.Join(s.Notes, "; "))
	}
	return fmt.Sprintf("Solver: a monthly contribution of %s %s reaches the target within %d years (currently %s, a change of %s).",
		s.ValueDisplay, format.NormalizeCurrency(f.Currency), s.TargetYears, s.OriginalDisplay,
		format.Currency(s.Delta(), f.Currency))
}

// Summary joins the headline, outlook, and solver lines into one paragraph.
func Summary(f forecast.Forecast) string {
	parts := []string{Headline(f)}
	if line := OutlookLine(f); line != "" {
		parts = append(parts, line)
	}
	if line := SolverLine(f); line != "" {
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

// MarkdownFormat outputs one section per scenario with its summary and a
// table of the trajectory.
func MarkdownFormat(w io.Writer, results []forecast.Forecast) error {
	var b strings.Builder
	for i, result := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", result.Name)
		fmt.Fprintf(&b, "%s\n\n", Headline(result))
		if line := OutlookLine(result); line != "" {
			fmt.Fprintf(&b, "%s\n\n", line)
		}
		if line := SolverLine(result); line != "" {
			fmt.Fprintf(&b, "%s\n\n", line)
		}

		b.WriteString("| Year | Nominal capital | Real capital |\n")
		b.WriteString("|---:|---:|---:|\n")
		for j, year := range result.Result.Years {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", year,
				format.Currency(result.Result.Nominal[j], result.Currency),
				format.Currency(result.Result.Real[j], result.Currency))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
