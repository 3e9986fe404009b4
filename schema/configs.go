package schema

// Default engine parameters.
const (
	DefaultSamplingRate    = 250 // Hz
	DefaultThresholdFactor = 0.6 // Pan-Tompkins adaptive threshold scale
)

// NormalRanges holds the clinical reference bounds the engine compares against.
type NormalRanges struct {
	MinHR         float64 // Below this average rate the run is bradycardic (bpm)
	MaxHR         float64 // Above this average rate the run is tachycardic (bpm)
	MaxPRInterval float64 // Above this mean PR interval suggests first-degree block (s)
	WideQRS       float64 // At or above this duration a complex counts as wide (s)
}

// AnalysisConfig is the immutable per-run configuration passed into every
// engine stage. It carries no derived state, so one value can be shared
// across concurrent analyses of different signals.
type AnalysisConfig struct {
	SamplingRate    int     // Hz
	ThresholdFactor float64 // R-peak detection sensitivity
	Ranges          NormalRanges
}

// DefaultAnalysisConfig returns the standard single-lead configuration.
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		SamplingRate:    DefaultSamplingRate,
		ThresholdFactor: DefaultThresholdFactor,
		Ranges: NormalRanges{
			MinHR:         60,
			MaxHR:         100,
			MaxPRInterval: 0.20,
			WideQRS:       0.12,
		},
	}
}
