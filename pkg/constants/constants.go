// Package constants provides shared constants for the freedom-forecast application.
package constants

// Projection constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DefaultMaxPeriods bounds the simulation when no horizon is derived
	DefaultMaxPeriods = 200

	// MaxLifespanPeriods caps the horizon derived from a life expectancy
	MaxLifespanPeriods = 100

	// MaxAge is the largest accepted current age
	MaxAge = 100

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Life expectancy lookup
const (
	// LifeExpectancyMale is the expected lifetime used for the male category
	LifeExpectancyMale = 80

	// LifeExpectancyFemale is the expected lifetime used for the female category
	LifeExpectancyFemale = 85
)

// Currency constants
const (
	// DefaultCurrency is the label used when none is configured
	DefaultCurrency = "CLP"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"

	// OutputFormatMarkdown is the narrative summary format
	OutputFormatMarkdown = "markdown"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KiB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Solver defaults
const (
	// DefaultSolverTolerance is the contribution precision the solver stops at
	DefaultSolverTolerance = 0.01

	// DefaultSolverMaxIterations bounds the bisection
	DefaultSolverMaxIterations = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
