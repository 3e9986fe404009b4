// Package cmd defines the command-line interface for rhythmscan.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pulseworks/rhythmscan/internal/contract"
	"github.com/pulseworks/rhythmscan/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(synthCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("rate", "r", schema.DefaultSamplingRate, "Sampling rate of the recording in Hz")
	rootCmd.PersistentFlags().Float64P("threshold", "t", schema.DefaultThresholdFactor, "R-peak detection threshold factor")
	rootCmd.PersistentFlags().String("preprocess", "yes", "Apply baseline, low-pass and mains filtering (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in messages (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("runs-backend", string(schema.SQLiteBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of synthCmd to Viper
	synthCmd.Flags().String("rhythm", string(schema.NormalRhythm), "Rhythm preset: normal, bradycardia, tachycardia, afib, pvc")
	synthCmd.Flags().Float64("seconds", contract.DefaultSynthSeconds, "Recording length in seconds")
	synthCmd.Flags().Float64("heart-rate", 70, "Base heart rate in BPM")
	synthCmd.Flags().Float64("noise", 0.05, "White noise standard deviation")
	synthCmd.Flags().Int64("seed", 0, "Random seed for reproducible output")
	if err := viper.BindPFlags(synthCmd.Flags()); err != nil {
		contract.LogFatal("Error binding synth flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
