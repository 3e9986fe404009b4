package sigio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseworks/rhythmscan/schema"
)

// TestGenerateDeterministic verifies the same seed yields identical samples.
func TestGenerateDeterministic(t *testing.T) {
	params := SynthParams{
		Rhythm:    schema.NormalRhythm,
		Seconds:   10,
		HeartRate: 60,
		Noise:     0.05,
		Seed:      42,
	}
	a := Generate(params, 250)
	b := Generate(params, 250)
	require.Len(t, a, 2500)
	assert.Equal(t, a, b)

	params.Seed = 43
	c := Generate(params, 250)
	assert.NotEqual(t, a, c, "different seeds should differ")
}

// TestGenerateLength verifies sample counts follow duration and rate.
func TestGenerateLength(t *testing.T) {
	params := SynthParams{Rhythm: schema.NormalRhythm, Seconds: 2.5, HeartRate: 60}
	assert.Len(t, Generate(params, 250), 625)
	assert.Len(t, Generate(params, 360), 900)
}

// TestGenerateRhythmRates verifies preset rates override implausible inputs.
func TestGenerateRhythmRates(t *testing.T) {
	countBeats := func(rhythm schema.Rhythm) int {
		params := SynthParams{Rhythm: rhythm, Seconds: 20, HeartRate: 60, Seed: 1}
		signal := Generate(params, 250)

		// R peaks dominate the waveform, so count threshold crossings.
		beats := 0
		above := false
		for _, v := range signal {
			if v > 0.6 && !above {
				beats++
				above = true
			} else if v < 0.3 {
				above = false
			}
		}
		return beats
	}

	normal := countBeats(schema.NormalRhythm)
	brady := countBeats(schema.BradyRhythm)
	tachy := countBeats(schema.TachyRhythm)

	assert.InDelta(t, 20, normal, 2, "60 BPM over 20 s")
	assert.Less(t, brady, normal)
	assert.Greater(t, tachy, normal)
}
