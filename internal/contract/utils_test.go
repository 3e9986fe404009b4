package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGetPlainLabel pins the probability severity boundaries.
func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		expected    string
	}{
		{name: "critical", probability: 95, expected: CriticalValue},
		{name: "critical boundary", probability: 80, expected: CriticalValue},
		{name: "high", probability: 70, expected: HighValue},
		{name: "moderate", probability: 45, expected: ModerateValue},
		{name: "low", probability: 10, expected: LowValue},
		{name: "zero", probability: 0, expected: LowValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.probability))
		})
	}
}

// TestTruncatePath verifies ellipsis truncation behavior.
func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{name: "short path untouched", path: "ecg.csv", maxWidth: 20, expected: "ecg.csv"},
		{name: "long path truncated", path: "recordings/patient/lead2.csv", maxWidth: 12, expected: "...lead2.csv"},
		{name: "tiny width untouched", path: "recordings/lead2.csv", maxWidth: 3, expected: "recordings/lead2.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncatePath(tt.path, tt.maxWidth))
		})
	}
}

// TestParseBoolString covers accepted and rejected values.
func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
