package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/pulseworks/rhythmscan/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 1
	DefaultResultLimit  = 25
	MaxResultLimit      = 1000
	DefaultSynthSeconds = 30.0
	MaxSynthSeconds     = 3600.0
	MinHeartRateBPM     = 20.0
	MaxHeartRateBPM     = 300.0
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath       string
	SamplingRate    int
	ThresholdFactor float64
	Preprocess      bool

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	UseEmojis  bool

	ResultLimit int

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	SynthRhythm    schema.Rhythm
	SynthSeconds   float64
	SynthHeartRate float64
	SynthNoise     float64
	SynthSeed      int64
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Rate          int     `mapstructure:"rate"`
	Threshold     float64 `mapstructure:"threshold"`
	Preprocess    string  `mapstructure:"preprocess"`
	Output        string  `mapstructure:"output"`
	OutputFile    string  `mapstructure:"output-file"`
	Precision     int     `mapstructure:"precision"`
	Width         int     `mapstructure:"width"`
	Color         string  `mapstructure:"color"`
	Emoji         string  `mapstructure:"emoji"`
	Limit         int     `mapstructure:"limit"`
	RunsBackend   string  `mapstructure:"runs-backend"`
	RunsDBConnect string  `mapstructure:"runs-db-connect"`

	// --- Fields from synthCmd.Flags() ---
	Rhythm    string  `mapstructure:"rhythm"`
	Seconds   float64 `mapstructure:"seconds"`
	HeartRate float64 `mapstructure:"heart-rate"`
	Noise     float64 `mapstructure:"noise"`
	Seed      int64   `mapstructure:"seed"`
}

// Clone returns a copy of the configuration for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// AnalysisConfig builds the engine configuration from the validated CLI
// configuration.
func (c *Config) AnalysisConfig() *schema.AnalysisConfig {
	cfg := schema.DefaultAnalysisConfig()
	cfg.SamplingRate = c.SamplingRate
	cfg.ThresholdFactor = c.ThresholdFactor
	return cfg
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := validateSynthInputs(cfg, input); err != nil {
		return err
	}
	cfg.InputPath = strings.TrimSpace(input.InputPathStr)
	return nil
}

// validateSimpleInputs processes and validates all non-backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// --- 1. Signal Parameters ---
	if input.Rate <= 0 {
		return fmt.Errorf("rate must be greater than 0 (received %d)", input.Rate)
	}
	cfg.SamplingRate = input.Rate

	if input.Threshold <= 0 {
		return fmt.Errorf("threshold must be greater than 0 (received %g)", input.Threshold)
	}
	cfg.ThresholdFactor = input.Threshold

	preprocess, err := ParseBoolString(input.Preprocess)
	if err != nil {
		return fmt.Errorf("invalid --preprocess value: %w", err)
	}
	cfg.Preprocess = preprocess

	// --- 2. Output Parameters ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// --- 3. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	return nil
}

// validateBackendConfig validates the run store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
		return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
	}
	cfg.RunsDBConnect = input.RunsDBConnect
	return ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect)
}

// validateSynthInputs validates the signal generator parameters.
func validateSynthInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.SynthRhythm = schema.Rhythm(strings.ToLower(input.Rhythm))
	if _, ok := schema.ValidRhythms[cfg.SynthRhythm]; !ok {
		return fmt.Errorf("invalid rhythm '%s'. must be normal, bradycardia, tachycardia, afib, pvc", input.Rhythm)
	}

	if input.Seconds <= 0 || input.Seconds > MaxSynthSeconds {
		return fmt.Errorf("seconds must be in (0, %g] (received %g)", MaxSynthSeconds, input.Seconds)
	}
	cfg.SynthSeconds = input.Seconds

	if input.HeartRate < MinHeartRateBPM || input.HeartRate > MaxHeartRateBPM {
		return fmt.Errorf("heart-rate must be between %g and %g (received %g)", MinHeartRateBPM, MaxHeartRateBPM, input.HeartRate)
	}
	cfg.SynthHeartRate = input.HeartRate

	if input.Noise < 0 {
		return fmt.Errorf("noise must not be negative (received %g)", input.Noise)
	}
	cfg.SynthNoise = input.Noise
	cfg.SynthSeed = input.Seed

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("runs-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("runs-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
