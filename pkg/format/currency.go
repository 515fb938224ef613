// Package format renders amounts and rates for reports. The currency code is
// a label only; no conversion takes place.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/iwvelando/freedom-forecast/pkg/constants"
	"github.com/iwvelando/freedom-forecast/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// NormalizeCurrency upper-cases a currency code and applies the default.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return constants.DefaultCurrency
	}
	return code
}

// Currency returns the amount with a dollar sign and thousands separators.
// CLP amounts are truncated to whole pesos and grouped with dots
// ("$1.000.000"); every other code gets two decimals ("$1,234.56").
func Currency(amount float64, code string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	abs := math.Abs(amount)

	if NormalizeCurrency(code) == "CLP" {
		grouped := humanize.BigComma(decimal.NewFromFloat(abs).Truncate(0).BigInt())
		return sign + "$" + strings.ReplaceAll(grouped, ",", ".")
	}

	rounded := decimal.NewFromFloat(abs).Round(2).InexactFloat64()
	return sign + printer.Sprintf("$%.2f", rounded)
}

// LabeledCurrency appends the currency code to Currency, e.g. "$500 CLP".
func LabeledCurrency(amount float64, code string) string {
	return Currency(amount, code) + " " + NormalizeCurrency(code)
}

// Compact shortens large CLP amounts to thousands or millions ("12K",
// "1,500M") for chart axes. Other currencies keep two decimals.
func Compact(amount float64, code string) string {
	if NormalizeCurrency(code) != "CLP" {
		return fmt.Sprintf("%.2f", amount)
	}

	d := decimal.NewFromFloat(amount)
	switch {
	case d.GreaterThanOrEqual(million):
		return humanize.BigComma(d.Div(million).Truncate(0).BigInt()) + "M"
	case d.GreaterThanOrEqual(thousand):
		return humanize.BigComma(d.Div(thousand).Truncate(0).BigInt()) + "K"
	default:
		return humanize.BigComma(d.Truncate(0).BigInt())
	}
}

// Percent renders a fractional rate as a percentage with two decimals.
func Percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", mathutil.FractionToPercent(rate))
}
