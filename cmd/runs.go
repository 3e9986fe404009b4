package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pulseworks/rhythmscan/core"
	"github.com/pulseworks/rhythmscan/internal/contract"
	"github.com/pulseworks/rhythmscan/internal/runstore"
	"github.com/pulseworks/rhythmscan/schema"
)

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("runs-backend")
	connStr := viper.GetString("runs-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunsDBFilePath()
	}

	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd lists tracked analysis runs and manages the run store.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage historical run tracking and exports",
	Long: `Manage historical analysis runs used for trend tracking and reporting.

When enabled, Rhythmscan tracks every analyze invocation, storing:
- Run metadata (source, sampling rate, sample count, duration)
- Per-arrhythmia verdicts with probabilities and confidence levels

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Without a subcommand, shows the most recent runs, newest first.

Subcommands:
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Show the last 25 runs
  rhythmscan runs

  # Show more history as CSV
  rhythmscan runs --limit 100 --output csv

  # Export for analysis in pandas/DuckDB
  rhythmscan runs export --output-file runs-data`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRuns(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list runs", err)
		}
	},
}

// runsStatusCmd shows run store status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about historical run tracking.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last run identifier and timestamp
- Database table sizes

Examples:
  # Check run tracking status
  rhythmscan runs status`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRunsStatus(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot get runs status", err)
		}
	},
}

// runsExportCmd exports run data to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored run data to Parquet format for use with analytics tools.

Exports two datasets:
- Runs - metadata about each analyze invocation
- Verdicts - per-arrhythmia probabilities for every run

Requires: --output-file parameter

Examples:
  # Export all data
  rhythmscan runs export --output-file rhythmscan-data

  # Use with DuckDB for analysis
  rhythmscan runs export --output-file data
  duckdb -c "SELECT * FROM read_parquet('data.runs.parquet') LIMIT 10"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRunsExport(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to export run data", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  rhythmscan runs migrate

  # Migrate to specific version
  rhythmscan runs migrate --target-version 1

  # Rollback to previous version
  rhythmscan runs migrate --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.MigrateRuns(cfg.RunsBackend, cfg.RunsDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
