package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseworks/rhythmscan/schema"
)

func normalRR() *schema.RRAnalysis {
	return &schema.RRAnalysis{AverageHR: 70, SDNN: 0.02, RMSSD: 0.02}
}

// TestClassifyNormal verifies a clean recording stays sinus rhythm.
func TestClassifyNormal(t *testing.T) {
	report := Classify(normalRR(), nil, nil, nil, 30)

	assert.InDelta(t, 100, report.Verdicts[schema.SinusRhythm].Probability, 1e-9)
	assert.Equal(t, schema.HighConfidence, report.Verdicts[schema.SinusRhythm].Confidence)
	for _, a := range schema.AllArrhythmias {
		if a == schema.SinusRhythm {
			continue
		}
		assert.Zero(t, report.Verdicts[a].Probability, string(a))
		assert.Zero(t, report.Evidence[a], string(a))
	}
}

// TestClassifyNilRR verifies missing interval analysis returns defaults.
func TestClassifyNilRR(t *testing.T) {
	report := Classify(nil, nil, nil, nil, 0)
	require.Len(t, report.Verdicts, len(schema.AllArrhythmias))
	assert.InDelta(t, 100, report.Verdicts[schema.SinusRhythm].Probability, 1e-9)
}

// TestClassifyRateArrhythmias covers bradycardia and tachycardia verdicts.
func TestClassifyRateArrhythmias(t *testing.T) {
	rr := normalRR()
	rr.Bradycardia = true
	report := Classify(rr, nil, nil, nil, 30)

	assert.InDelta(t, 90, report.Verdicts[schema.Bradycardia].Probability, 1e-9)
	assert.Equal(t, schema.HighConfidence, report.Verdicts[schema.Bradycardia].Confidence)
	assert.Equal(t, 1, report.Evidence[schema.Bradycardia])
	// One confident abnormal finding floors sinus at 10, after the 30 point
	// reduction leaves 70.
	assert.InDelta(t, 70, report.Verdicts[schema.SinusRhythm].Probability, 1e-9)

	rr = normalRR()
	rr.Tachycardia = true
	report = Classify(rr, nil, nil, nil, 30)
	assert.InDelta(t, 90, report.Verdicts[schema.Tachycardia].Probability, 1e-9)
}

// TestClassifyAFibEvidence verifies atrial fibrillation needs at least two
// corroborating sources and scales with them.
func TestClassifyAFibEvidence(t *testing.T) {
	freqScore := 60.0

	tests := []struct {
		name         string
		pWave        *schema.PWaveAnalysis
		irregular    bool
		rmssd        float64
		freq         *schema.FrequencyAnalysis
		expectedProb float64
		expectedConf schema.Confidence
		expectedEvid int
	}{
		{
			name:      "single source ignored",
			irregular: true, rmssd: 0.15,
			expectedProb: 0, expectedConf: schema.LowConfidence,
		},
		{
			name:      "two sources medium",
			pWave:     &schema.PWaveAnalysis{AFibScore: 80},
			irregular: true, rmssd: 0.15,
			expectedProb: 92, expectedConf: schema.MediumConfidence, expectedEvid: 2,
		},
		{
			name:      "three sources capped high",
			pWave:     &schema.PWaveAnalysis{AFibScore: 80},
			irregular: true, rmssd: 0.15,
			freq:         &schema.FrequencyAnalysis{AFibScore: &freqScore},
			expectedProb: 95, expectedConf: schema.HighConfidence, expectedEvid: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := normalRR()
			rr.Irregular = tt.irregular
			rr.RMSSD = tt.rmssd
			report := Classify(rr, tt.pWave, nil, tt.freq, 30)

			verdict := report.Verdicts[schema.AFib]
			assert.InDelta(t, tt.expectedProb, verdict.Probability, 1e-9)
			assert.Equal(t, tt.expectedConf, verdict.Confidence)
			assert.Equal(t, tt.expectedEvid, report.Evidence[schema.AFib])
		})
	}
}

// TestClassifyPVCPercentages pins the three PVC burden tiers.
func TestClassifyPVCPercentages(t *testing.T) {
	tests := []struct {
		name         string
		pvcCount     int
		peakCount    int
		expectedProb float64
		expectedConf schema.Confidence
	}{
		{name: "high burden", pvcCount: 4, peakCount: 30, expectedProb: 90, expectedConf: schema.HighConfidence},
		{name: "medium burden", pvcCount: 2, peakCount: 30, expectedProb: 70, expectedConf: schema.MediumConfidence},
		{name: "low burden", pvcCount: 1, peakCount: 30, expectedProb: 50, expectedConf: schema.LowConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locations := make([]int, tt.pvcCount)
			for i := range locations {
				locations[i] = 100 * (i + 1)
			}
			qrs := &schema.QRSMorphology{PVCLocations: locations}
			report := Classify(normalRR(), nil, qrs, nil, tt.peakCount)

			verdict := report.Verdicts[schema.PVC]
			assert.InDelta(t, tt.expectedProb, verdict.Probability, 1e-9)
			assert.Equal(t, tt.expectedConf, verdict.Confidence)
			assert.Equal(t, tt.pvcCount, report.Evidence[schema.PVC])
		})
	}
}

// TestClassifyHeartBlock verifies the prolonged PR interval rule.
func TestClassifyHeartBlock(t *testing.T) {
	pw := &schema.PWaveAnalysis{
		Present:     []bool{true, true, true},
		PRIntervals: []float64{0.24, 0.26, 0.22},
	}
	report := Classify(normalRR(), pw, nil, nil, 3)

	assert.InDelta(t, 80, report.Verdicts[schema.HeartBlock].Probability, 1e-9)
	assert.Equal(t, schema.HighConfidence, report.Verdicts[schema.HeartBlock].Confidence)
	assert.Equal(t, 1, report.Evidence[schema.HeartBlock])

	// Normal PR intervals leave the verdict alone. Zeros are unmeasured
	// beats and must not drag the average down.
	pw = &schema.PWaveAnalysis{
		Present:     []bool{true, false, true},
		PRIntervals: []float64{0.16, 0, 0.18},
	}
	report = Classify(normalRR(), pw, nil, nil, 3)
	assert.Zero(t, report.Verdicts[schema.HeartBlock].Probability)
}

// TestClassifyBundleBranch verifies LBBB and RBBB pass-through.
func TestClassifyBundleBranch(t *testing.T) {
	qrs := &schema.QRSMorphology{LBBBProbability: 80, RBBBProbability: 40}
	report := Classify(normalRR(), nil, qrs, nil, 30)

	assert.InDelta(t, 80, report.Verdicts[schema.LBBB].Probability, 1e-9)
	assert.Equal(t, schema.MediumConfidence, report.Verdicts[schema.LBBB].Confidence)
	assert.Zero(t, report.Verdicts[schema.RBBB].Probability, "below the 60 cutoff")
	assert.Equal(t, 1, report.Evidence[schema.LBBB])
}

// TestClassifySinusFloor verifies stacked findings cannot push sinus rhythm
// below the residual floor.
func TestClassifySinusFloor(t *testing.T) {
	rr := normalRR()
	rr.Bradycardia = true
	rr.Irregular = true
	rr.RMSSD = 0.15
	pw := &schema.PWaveAnalysis{AFibScore: 90, PRIntervals: []float64{0.25}, Present: []bool{true}}
	qrs := &schema.QRSMorphology{PVCLocations: []int{10, 20, 30, 40}, LBBBProbability: 80}

	report := Classify(rr, pw, qrs, nil, 30)
	assert.InDelta(t, 10, report.Verdicts[schema.SinusRhythm].Probability, 1e-9)
}
