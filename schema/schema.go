// Package schema has configs, models and global variables for all parts of rhythmscan.
package schema

import (
	"fmt"
	"math"
	"strconv"
)

// AnalysisResult is the complete output of one analysis pass over a signal.
// On fewer than 2 detected R peaks only Err and RPeaks are populated; all
// stage records stay nil so consumers can present a "no rhythm detected" state.
type AnalysisResult struct {
	RPeaks      []int              `json:"r_peaks"`
	RR          *RRAnalysis        `json:"rr_analysis,omitempty"`
	PWave       *PWaveAnalysis     `json:"p_wave_analysis,omitempty"`
	QRS         *QRSMorphology     `json:"qrs_analysis,omitempty"`
	Freq        *FrequencyAnalysis `json:"freq_analysis,omitempty"`
	Arrhythmias *ArrhythmiaReport  `json:"arrhythmias,omitempty"`
	Err         string             `json:"error,omitempty"`
}

// RRAnalysis holds the time-domain rhythm metrics derived from R-peak spacing.
type RRAnalysis struct {
	Intervals    []int     `json:"rr_intervals"`     // Consecutive R-R gaps in samples
	IntervalsSec []float64 `json:"rr_intervals_sec"` // Same gaps in seconds
	AverageHR    float64   `json:"average_hr"`       // Mean of per-interval instantaneous rates (bpm)
	SDNN         float64   `json:"sdnn"`             // Standard deviation of NN intervals (s)
	RMSSD        float64   `json:"rmssd"`            // Root mean square of successive differences (s)
	PNN50        float64   `json:"pnn50"`            // Percent of successive differences > 50 ms
	Irregular    bool      `json:"irregularity"`
	Bradycardia  bool      `json:"bradycardia"`
	Tachycardia  bool      `json:"tachycardia"`
}

// PWaveAnalysis holds per-beat atrial activity findings.
// Every per-beat slice has length equal to the R-peak count; index i in each
// slice refers to the same beat.
type PWaveAnalysis struct {
	Present     []bool    `json:"p_present"`
	PRIntervals []float64 `json:"pr_intervals"` // Seconds; zero where no P wave was found
	Locations   []int     `json:"p_wave_locations"`
	AFibScore   float64   `json:"afib_probability"` // 0-100 evidence score, not a diagnosis
}

// QRSMorphology holds per-beat ventricular complex measurements plus the
// run-level conduction findings derived from them.
type QRSMorphology struct {
	Durations       []float64 `json:"qrs_durations"` // Seconds; zero for beats near signal edges
	Areas           []float64 `json:"qrs_areas"`
	Amplitudes      []float64 `json:"qrs_amplitudes"`
	NormAreas       []float64 `json:"qrs_areas_norm"` // Area divided by amplitude
	Abnormal        []bool    `json:"abnormal_qrs"`
	PVCLocations    []int     `json:"pvc_locations"` // Sample indices of the flagged R peaks
	WideQRSPct      float64   `json:"wide_qrs_percentage"`
	LBBBProbability float64   `json:"lbbb_probability"`
	RBBBProbability float64   `json:"rbbb_probability"`
}

// FrequencyAnalysis holds the spectral view of the run. The raw-signal
// spectrum is always populated for a non-empty signal; the HRV and wavelet
// fields are nil whenever they cannot be computed (too few beats, or the
// decomposition failed). Nil means "not computable", never "zero".
type FrequencyAnalysis struct {
	Freqs     []float64             `json:"ecg_freqs"` // Positive-frequency bins (Hz)
	PSD       []float64             `json:"ecg_psd"`   // Power spectrum normalized by its maximum
	HRVLF     *float64              `json:"hrv_lf"`    // Power in 0.04-0.15 Hz
	HRVHF     *float64              `json:"hrv_hf"`    // Power in 0.15-0.4 Hz
	LFHFRatio *Ratio                `json:"lf_hf_ratio"`
	Wavelet   *WaveletDecomposition `json:"wavelet_coeffs"`
	AFibScore *float64              `json:"afib_probability"`
}

// WaveletDecomposition holds a multiresolution decomposition of the raw
// signal. Levels is ordered coarsest first: approximation, then detail
// levels down to the finest.
type WaveletDecomposition struct {
	Levels     [][]float64 `json:"levels"`
	NoiseRatio float64     `json:"noise_ratio"` // Finest-detail energy over total energy
}

// ArrhythmiaVerdict pairs a probability estimate with a confidence level.
type ArrhythmiaVerdict struct {
	Probability float64    `json:"probability"` // 0-100, advisory only
	Confidence  Confidence `json:"confidence"`
}

// ArrhythmiaReport maps each known arrhythmia to its verdict, plus a count of
// how many independent rules fired per arrhythmia for auditability.
type ArrhythmiaReport struct {
	Verdicts map[Arrhythmia]ArrhythmiaVerdict `json:"verdicts"`
	Evidence map[Arrhythmia]int               `json:"evidence_counts"`
}

// Ratio is a float64 that survives JSON round-trips when infinite.
// The LF/HF ratio is defined as +infinity when HF power is zero, and
// encoding/json cannot represent IEEE infinities as numbers.
type Ratio float64

// MarshalJSON encodes infinite ratios as the string "+inf".
func (r Ratio) MarshalJSON() ([]byte, error) {
	v := float64(r)
	if math.IsInf(v, 1) {
		return []byte(`"+inf"`), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

// UnmarshalJSON accepts either a JSON number or the string "+inf".
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == `"+inf"` {
		*r = Ratio(math.Inf(1))
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid ratio value %s: %w", data, err)
	}
	*r = Ratio(v)
	return nil
}
