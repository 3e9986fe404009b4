package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pulseworks/rhythmscan/core"
	"github.com/pulseworks/rhythmscan/internal/contract"
	"github.com/pulseworks/rhythmscan/internal/sigio"
	"github.com/pulseworks/rhythmscan/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleAnalyzeECG(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	path := request.GetString("file", "")
	if path == "" {
		return mcp.NewToolResultError("file is required"), nil
	}
	if r := request.GetInt("rate", 0); r > 0 {
		cfg.SamplingRate = r
	}
	if tf := request.GetFloat("threshold", 0); tf > 0 {
		cfg.ThresholdFactor = tf
	}
	preprocess := request.GetBool("preprocess", cfg.Preprocess)

	signal, err := sigio.Load(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load recording: %v", err)), nil
	}

	acfg := cfg.AnalysisConfig()
	if preprocess {
		signal = core.Preprocess(acfg, signal)
	}
	result := core.Analyze(acfg, signal)

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGenerateECG(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	outputPath := request.GetString("output_path", "")
	if outputPath == "" {
		return mcp.NewToolResultError("output_path is required"), nil
	}

	rhythm := schema.Rhythm(request.GetString("rhythm", string(schema.NormalRhythm)))
	if _, ok := schema.ValidRhythms[rhythm]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid rhythm '%s'. must be normal, bradycardia, tachycardia, afib, pvc", rhythm)), nil
	}

	seconds := request.GetFloat("seconds", contract.DefaultSynthSeconds)
	if seconds <= 0 || seconds > contract.MaxSynthSeconds {
		return mcp.NewToolResultError(fmt.Sprintf("seconds must be between 0 and %.0f", contract.MaxSynthSeconds)), nil
	}

	bpm := request.GetFloat("bpm", 70)
	if bpm < contract.MinHeartRateBPM || bpm > contract.MaxHeartRateBPM {
		return mcp.NewToolResultError(fmt.Sprintf("bpm must be between %.0f and %.0f", contract.MinHeartRateBPM, contract.MaxHeartRateBPM)), nil
	}

	params := sigio.SynthParams{
		Rhythm:    rhythm,
		Seconds:   seconds,
		HeartRate: bpm,
		Noise:     h.baseCfg.SynthNoise,
		Seed:      int64(request.GetInt("seed", 0)),
	}
	signal := sigio.Generate(params, h.baseCfg.SamplingRate)

	if err := sigio.Save(outputPath, signal); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save recording: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Wrote %d samples at %d Hz to %s", len(signal), h.baseCfg.SamplingRate, outputPath)), nil
}
