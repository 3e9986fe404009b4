package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pulseworks/rhythmscan/internal/contract"
	"github.com/pulseworks/rhythmscan/internal/outwriter"
	"github.com/pulseworks/rhythmscan/internal/runstore"
	"github.com/pulseworks/rhythmscan/internal/sigio"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteAnalyze loads a recording, runs the full analysis pipeline and
// prints the verdicts. It serves as the main entry point for 'analyze'.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config) error {
	signal, err := sigio.Load(cfg.InputPath)
	if err != nil {
		return err
	}
	return analyzeSignal(ctx, cfg, signal, cfg.InputPath)
}

// ExecuteSynth generates a synthetic recording. With --output-file set the
// samples are written to disk; otherwise the recording is analyzed directly.
func ExecuteSynth(ctx context.Context, cfg *contract.Config) error {
	params := sigio.SynthParams{
		Rhythm:    cfg.SynthRhythm,
		Seconds:   cfg.SynthSeconds,
		HeartRate: cfg.SynthHeartRate,
		Noise:     cfg.SynthNoise,
		Seed:      cfg.SynthSeed,
	}
	signal := sigio.Generate(params, cfg.SamplingRate)

	if cfg.OutputFile != "" {
		if err := sigio.Save(cfg.OutputFile, signal); err != nil {
			return fmt.Errorf("failed to save synthetic signal: %w", err)
		}
		prefix := ""
		if cfg.UseEmojis {
			prefix = "💾 "
		}
		fmt.Fprintf(os.Stderr, "%sWrote %d samples to %s\n", prefix, len(signal), cfg.OutputFile)
		return nil
	}

	// Result output goes to stdout since no output file was given
	return analyzeSignal(ctx, cfg, signal, "synthetic")
}

// analyzeSignal runs the shared preprocess, analyze, track and print steps.
func analyzeSignal(ctx context.Context, cfg *contract.Config, signal []float64, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	// --- 0. Begin Run Tracking (if configured) ---
	store := openRunStore(cfg)
	defer func() {
		if store != nil {
			_ = store.Close()
		}
	}()

	var runID int64
	if store != nil {
		configParams := map[string]any{
			"source":     source,
			"rate":       cfg.SamplingRate,
			"threshold":  cfg.ThresholdFactor,
			"preprocess": cfg.Preprocess,
		}
		var err error
		runID, err = store.BeginRun(start, source, cfg.SamplingRate, len(signal), configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	// --- 1. Preprocess and Analyze ---
	acfg := cfg.AnalysisConfig()
	if cfg.Preprocess {
		signal = Preprocess(acfg, signal)
	}
	result := Analyze(acfg, signal)
	duration := time.Since(start)

	// --- 2. End Run Tracking ---
	if store != nil && runID > 0 {
		if err := store.RecordVerdicts(runID, result.Arrhythmias); err != nil {
			contract.LogWarn("Failed to record verdicts", err)
		}
		if err := store.EndRun(runID, time.Now(), len(result.RPeaks)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return outwriter.WriteResult(result, cfg, duration)
}

// ExecuteRuns lists the most recent tracked runs.
func ExecuteRuns(_ context.Context, cfg *contract.Config) error {
	store, err := runstore.NewRunStore(cfg.RunsBackend, cfg.RunsDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(cfg.ResultLimit)
	if err != nil {
		return err
	}
	return outwriter.WriteRuns(runs, cfg)
}

// ExecuteRunsStatus shows run store statistics and connection details.
func ExecuteRunsStatus(_ context.Context, cfg *contract.Config) error {
	store, err := runstore.NewRunStore(cfg.RunsBackend, cfg.RunsDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	if err != nil {
		return err
	}
	return outwriter.WriteStoreStatus(status, cfg)
}

// ExecuteRunsExport exports the run history to Parquet files.
func ExecuteRunsExport(_ context.Context, cfg *contract.Config) error {
	store, err := runstore.NewRunStore(cfg.RunsBackend, cfg.RunsDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return runstore.ExecuteRunsExport(store, cfg.OutputFile)
}

// openRunStore opens the configured run store, degrading to no tracking
// when the store cannot be reached.
func openRunStore(cfg *contract.Config) contract.RunStore {
	store, err := runstore.NewRunStore(cfg.RunsBackend, cfg.RunsDBConnect)
	if err != nil {
		contract.LogWarn("Run store unavailable, continuing without tracking", err)
		return nil
	}
	return store
}
