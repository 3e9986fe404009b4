package core

import (
	"math"

	"github.com/pulseworks/rhythmscan/schema"
)

// Classify combines the per-stage findings into a probability and a
// confidence level for each known arrhythmia, with evidence counters.
// Sinus rhythm starts as certain and loses probability as abnormal findings
// accumulate.
func Classify(rr *schema.RRAnalysis, pWave *schema.PWaveAnalysis, qrs *schema.QRSMorphology, freq *schema.FrequencyAnalysis, peakCount int) schema.ArrhythmiaReport {
	verdicts := make(map[schema.Arrhythmia]schema.ArrhythmiaVerdict, len(schema.AllArrhythmias))
	evidence := make(map[schema.Arrhythmia]int, len(schema.AllArrhythmias))
	for _, a := range schema.AllArrhythmias {
		verdicts[a] = schema.ArrhythmiaVerdict{Probability: 0, Confidence: schema.LowConfidence}
		evidence[a] = 0
	}
	verdicts[schema.SinusRhythm] = schema.ArrhythmiaVerdict{Probability: 100, Confidence: schema.HighConfidence}

	if rr == nil {
		return schema.ArrhythmiaReport{Verdicts: verdicts, Evidence: evidence}
	}

	sinus := verdicts[schema.SinusRhythm]

	if rr.Bradycardia {
		verdicts[schema.Bradycardia] = schema.ArrhythmiaVerdict{Probability: 90, Confidence: schema.HighConfidence}
		sinus.Probability -= 30
		evidence[schema.Bradycardia]++
	}
	if rr.Tachycardia {
		verdicts[schema.Tachycardia] = schema.ArrhythmiaVerdict{Probability: 90, Confidence: schema.HighConfidence}
		sinus.Probability -= 30
		evidence[schema.Tachycardia]++
	}

	// Atrial fibrillation needs corroboration: P wave absence, RR
	// irregularity and spectral findings each contribute weighted
	// probability, but at least two sources must agree.
	afibProb, afibEvidence := 0.0, 0
	if pWave != nil && pWave.AFibScore > 50 {
		afibProb += pWave.AFibScore * 0.4
		afibEvidence++
	}
	if rr.Irregular && rr.RMSSD > 0.1 {
		afibProb += 60
		afibEvidence++
	}
	if freq != nil && freq.AFibScore != nil && *freq.AFibScore > 50 {
		afibProb += *freq.AFibScore * 0.3
		afibEvidence++
	}
	if afibEvidence >= 2 {
		conf := schema.MediumConfidence
		if afibEvidence > 2 {
			conf = schema.HighConfidence
		}
		prob := math.Min(95, afibProb)
		verdicts[schema.AFib] = schema.ArrhythmiaVerdict{Probability: prob, Confidence: conf}
		sinus.Probability = math.Max(0, sinus.Probability-prob)
		evidence[schema.AFib] = afibEvidence
	}

	if qrs != nil && len(qrs.PVCLocations) > 0 && peakCount > 0 {
		pct := 100 * float64(len(qrs.PVCLocations)) / float64(peakCount)
		switch {
		case pct > 10:
			verdicts[schema.PVC] = schema.ArrhythmiaVerdict{Probability: 90, Confidence: schema.HighConfidence}
			sinus.Probability -= 50
		case pct > 5:
			verdicts[schema.PVC] = schema.ArrhythmiaVerdict{Probability: 70, Confidence: schema.MediumConfidence}
			sinus.Probability -= 30
		default:
			verdicts[schema.PVC] = schema.ArrhythmiaVerdict{Probability: 50, Confidence: schema.LowConfidence}
			sinus.Probability -= 10
		}
		evidence[schema.PVC] = len(qrs.PVCLocations)
	}

	if pWave != nil {
		var positivePR []float64
		for _, pr := range pWave.PRIntervals {
			if pr > 0 {
				positivePR = append(positivePR, pr)
			}
		}
		if len(positivePR) > 0 {
			// First-degree AV block shows as a prolonged PR interval.
			if mean(positivePR) > 0.2 {
				verdicts[schema.HeartBlock] = schema.ArrhythmiaVerdict{Probability: 80, Confidence: schema.HighConfidence}
				sinus.Probability -= 30
				evidence[schema.HeartBlock]++
			}

			// Second-degree AV block would show P waves without a QRS.
			detected := 0
			for _, p := range pWave.Present {
				if p {
					detected++
				}
			}
			if detected > peakCount {
				hb := verdicts[schema.HeartBlock]
				hb.Probability = math.Max(hb.Probability, 70)
				hb.Confidence = schema.MediumConfidence
				verdicts[schema.HeartBlock] = hb
				sinus.Probability -= 40
				evidence[schema.HeartBlock]++
			}
		}
	}

	if qrs != nil {
		if qrs.LBBBProbability > 60 {
			verdicts[schema.LBBB] = schema.ArrhythmiaVerdict{Probability: qrs.LBBBProbability, Confidence: schema.MediumConfidence}
			sinus.Probability -= 20
			evidence[schema.LBBB]++
		}
		if qrs.RBBBProbability > 60 {
			verdicts[schema.RBBB] = schema.ArrhythmiaVerdict{Probability: qrs.RBBBProbability, Confidence: schema.MediumConfidence}
			sinus.Probability -= 20
			evidence[schema.RBBB]++
		}
	}

	verdicts[schema.SinusRhythm] = sinus
	for a, v := range verdicts {
		v.Probability = clampScore(v.Probability)
		verdicts[a] = v
	}

	// Any confident abnormal finding keeps sinus rhythm from dominating,
	// but the floor stays above zero to reflect residual uncertainty.
	for a, v := range verdicts {
		if a != schema.SinusRhythm && v.Probability > 70 {
			sinus = verdicts[schema.SinusRhythm]
			sinus.Probability = math.Max(10, sinus.Probability)
			verdicts[schema.SinusRhythm] = sinus
			break
		}
	}

	return schema.ArrhythmiaReport{Verdicts: verdicts, Evidence: evidence}
}
