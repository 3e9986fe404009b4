package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pulseworks/rhythmscan/core"
	"github.com/pulseworks/rhythmscan/internal/contract"
)

// synthCmd generates synthetic recordings for demos and testing.
var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Generate a synthetic ECG recording.",
	Long: `Generate a synthetic single-lead waveform built from Gaussian P-QRS-T
beat trains, with optional white noise and rhythm presets:

  normal       - regular sinus rhythm at the requested heart rate
  bradycardia  - slow rhythm (45 BPM unless a slower rate is given)
  tachycardia  - fast rhythm (130 BPM unless a faster rate is given)
  afib         - irregular beat spacing with suppressed P waves
  pvc          - periodic premature beats with widened complexes

With --output-file the samples are written to disk, one value per line.
Without it, the generated recording is analyzed directly so the presets
can be used as an end-to-end demo.

Examples:
  # Write a 30 second normal recording
  rhythmscan synth --output-file sample.txt

  # Analyze a simulated atrial fibrillation episode
  rhythmscan synth --rhythm afib --seconds 60

  # Deterministic output for test fixtures
  rhythmscan synth --rhythm pvc --seed 42 --output-file pvc.txt`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSynth(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot generate recording", err)
		}
	},
}
