// Package config provides environment-driven defaults for the tabular
// library. Settings are read from TABULAR_* environment variables with
// built-in fallbacks and validated on load, so a misconfigured
// environment fails fast instead of silently changing parse behavior.
package config

// Built-in fallbacks, used when the environment is unset or unreadable.
const DefaultSampleSize = 1000

// DefaultMissing is the built-in missing-marker set: the empty string and
// the literal NA.
var DefaultMissing = []string{"", "NA"}

// Defaults holds the library-wide defaults. All settings can be
// configured via environment variables.
type Defaults struct {
	// SampleSize is the default inference sample size (default: 1000).
	SampleSize int `env:"TABULAR_SAMPLE_SIZE" default:"1000"`

	// Missing is the default missing-marker set, comma-separated.
	// Empty entries are kept: the default ",NA" means the empty string
	// and "NA".
	Missing []string `env:"TABULAR_MISSING" default:",NA"`

	// LogLevel is the minimum log level: debug, info, warn, error
	// (default: info).
	LogLevel string `env:"TABULAR_LOG_LEVEL" default:"info"`

	// LogFormat is the log format: text or json (default: text).
	LogFormat string `env:"TABULAR_LOG_FORMAT" default:"text"`
}
