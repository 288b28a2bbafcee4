// Package constants provides shared constants for the dealpilot application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Form boundary limits
const (
	// MinBureauScore is the lowest reportable bureau score
	MinBureauScore = 300

	// MaxBureauScore is the highest reportable bureau score
	MaxBureauScore = 900

	// MinTermMonths is the shortest accepted loan term
	MinTermMonths = 1

	// MaxTermMonths is the longest accepted loan term
	MaxTermMonths = 120
)

// AlertWindowPercent bounds the smart-alert window: a lender only gets a
// near-miss alert when the deal's LTV exceeds the auto-approval threshold
// by no more than this many points.
const AlertWindowPercent = 5.0

// Baseline rule values used when a lender is added by name only
const (
	DefaultRuleMaxLTV    = 130.0
	DefaultRuleMaxPTI    = 15.0
	DefaultRuleAutoLTV   = 100.0
	DefaultRuleAutoScore = 700
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultRulesFile is the default lender rule set file name
	DefaultRulesFile = "lender-rules.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"
)

// Admin gate constants
const (
	// AdminPasscodeEnv is the environment variable holding the admin pass-code
	AdminPasscodeEnv = "DEALPILOT_ADMIN_PASSCODE"

	// DefaultAdminPasscode is the fallback pass-code when the environment
	// variable is unset
	DefaultAdminPasscode = "dealpilot"
)
