package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseworks/rhythmscan/schema"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Rate:        250,
		Threshold:   0.6,
		Preprocess:  "yes",
		Output:      "text",
		Precision:   1,
		Color:       "yes",
		Emoji:       "yes",
		Limit:       25,
		RunsBackend: "none",
		Rhythm:      "normal",
		Seconds:     30,
		HeartRate:   60,
		Noise:       0.05,
	}
}

// TestProcessAndValidateDefaults checks that a typical input round-trips into
// a usable Config.
func TestProcessAndValidateDefaults(t *testing.T) {
	input := validRawInput()
	input.InputPathStr = "ecg.csv"

	var cfg Config
	require.NoError(t, ProcessAndValidate(&cfg, input))
	assert.Equal(t, "ecg.csv", cfg.InputPath)
	assert.Equal(t, 250, cfg.SamplingRate)
	assert.True(t, cfg.Preprocess)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.NoneBackend, cfg.RunsBackend)
	assert.Equal(t, schema.NormalRhythm, cfg.SynthRhythm)
}

// TestProcessAndValidateRejects covers the main validation failures.
func TestProcessAndValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{name: "zero rate", mutate: func(in *ConfigRawInput) { in.Rate = 0 }},
		{name: "negative threshold", mutate: func(in *ConfigRawInput) { in.Threshold = -1 }},
		{name: "bad preprocess", mutate: func(in *ConfigRawInput) { in.Preprocess = "maybe" }},
		{name: "bad output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }},
		{name: "bad precision", mutate: func(in *ConfigRawInput) { in.Precision = 5 }},
		{name: "zero limit", mutate: func(in *ConfigRawInput) { in.Limit = 0 }},
		{name: "bad backend", mutate: func(in *ConfigRawInput) { in.RunsBackend = "oracle" }},
		{name: "bad rhythm", mutate: func(in *ConfigRawInput) { in.Rhythm = "flutter" }},
		{name: "zero seconds", mutate: func(in *ConfigRawInput) { in.Seconds = 0 }},
		{name: "slow heart rate", mutate: func(in *ConfigRawInput) { in.HeartRate = 5 }},
		{name: "negative noise", mutate: func(in *ConfigRawInput) { in.Noise = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)
			var cfg Config
			assert.Error(t, ProcessAndValidate(&cfg, input))
		})
	}
}

// TestValidateDatabaseConnectionString covers per-backend connection checks.
func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{name: "sqlite empty ok", backend: schema.SQLiteBackend, connStr: ""},
		{name: "none empty ok", backend: schema.NoneBackend, connStr: ""},
		{name: "mysql empty", backend: schema.MySQLBackend, connStr: "", wantErr: true},
		{name: "mysql missing tcp", backend: schema.MySQLBackend, connStr: "user:pass/db", wantErr: true},
		{name: "mysql ok", backend: schema.MySQLBackend, connStr: "user:pass@tcp(localhost:3306)/runs"},
		{name: "postgres missing host", backend: schema.PostgreSQLBackend, connStr: "dbname=runs", wantErr: true},
		{name: "postgres ok", backend: schema.PostgreSQLBackend, connStr: "host=localhost dbname=runs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestAnalysisConfig checks the CLI to engine configuration hand-off.
func TestAnalysisConfig(t *testing.T) {
	cfg := Config{SamplingRate: 360, ThresholdFactor: 0.5}
	engine := cfg.AnalysisConfig()
	require.NotNil(t, engine)
	assert.Equal(t, 360, engine.SamplingRate)
	assert.InDelta(t, 0.5, engine.ThresholdFactor, 1e-12)
	assert.InDelta(t, 0.12, engine.Ranges.WideQRS, 1e-12)

	// Each call hands out an independent configuration, so overrides on one
	// run cannot leak into another.
	otherCfg := Config{SamplingRate: 128, ThresholdFactor: 0.9}
	other := otherCfg.AnalysisConfig()
	assert.Equal(t, 360, engine.SamplingRate)
	assert.Equal(t, 128, other.SamplingRate)
}
