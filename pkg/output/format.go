// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/freedom-forecast/internal/forecast"
	"github.com/iwvelando/freedom-forecast/pkg/constants"
	"github.com/iwvelando/freedom-forecast/pkg/format"
)

// Write renders results in the named output format.
func Write(w io.Writer, outputFormat string, results []forecast.Forecast) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	case constants.OutputFormatMarkdown:
		return MarkdownFormat(w, results)
	default:
		return fmt.Errorf("unsupported output format %s", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []forecast.Forecast) error {
	var b strings.Builder
	for i, result := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render("Results for scenario " + result.Name))
		b.WriteString("\n")

		targetYear, _ := result.Result.TargetPoint()
		t := table{headers: []string{"Year", "Nominal capital", "Real capital", "Notes"}}
		for j, year := range result.Result.Years {
			note := ""
			if result.Result.TargetReached && year == targetYear {
				note = reachedStyle.Render("target reached")
			}
			t.rows = append(t.rows, []string{
				strconv.Itoa(year),
				format.Currency(result.Result.Nominal[j], result.Currency),
				format.Currency(result.Result.Real[j], result.Currency),
				note,
			})
		}
		b.WriteString(renderTable(t))
		b.WriteString("Real capital " + sparkline(result.Result.Real) + "\n\n")

		headline := Headline(result)
		if result.Result.TargetReached {
			b.WriteString(reachedStyle.Render(headline))
		} else {
			b.WriteString(warnStyle.Render(headline))
		}
		b.WriteString("\n")
		if line := OutlookLine(result); line != "" {
			b.WriteString(line + "\n")
		}
		if line := SolverLine(result); line != "" {
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat outputs one row per scenario and period in comma-separated
// value format.
func CsvFormat(w io.Writer, results []forecast.Forecast) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"scenario", "year", "nominal", "real", "target reached"}); err != nil {
		return err
	}
	for _, result := range results {
		targetYear, _ := result.Result.TargetPoint()
		for i, year := range result.Result.Years {
			reached := result.Result.TargetReached && year == targetYear
			if err := writer.Write([]string{
				result.Name,
				strconv.Itoa(year),
				strconv.FormatFloat(result.Result.Nominal[i], 'f', 2, 64),
				strconv.FormatFloat(result.Result.Real[i], 'f', 2, 64),
				strconv.FormatBool(reached),
			}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV representation of results.
func CsvString(results []forecast.Forecast) string {
	var b strings.Builder
	if err := CsvFormat(&b, results); err != nil {
		return ""
	}
	return b.String()
}

// JSONFormat outputs the results and their chart data as indented JSON.
func JSONFormat(w io.Writer, results []forecast.Forecast) error {
	type scenarioJSON struct {
		forecast.Forecast
		Summary string `json:"summary"`
		Chart   Chart  `json:"chart"`
	}

	payload := make([]scenarioJSON, 0, len(results))
	for _, result := range results {
		payload = append(payload, scenarioJSON{
			Forecast: result,
			Summary:  Summary(result),
			Chart:    ChartData(result),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
