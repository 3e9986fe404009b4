// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pulseworks/rhythmscan/internal/contract"
)

// NewMCPServer initializes and configures the Rhythmscan MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Rhythmscan Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: analyze_ecg ---
	s.AddTool(mcp.NewTool("analyze_ecg",
		mcp.WithDescription("Analyze a single-lead ECG recording and report arrhythmia verdicts."),
		mcp.WithString("file", mcp.Description("Path to the recording (CSV, text, or raw float64 file)."), mcp.Required()),
		mcp.WithNumber("rate", mcp.Description("Sampling rate in Hz. Defaults to 250.")),
		mcp.WithNumber("threshold", mcp.Description("R-peak detection threshold factor. Defaults to 0.6.")),
		mcp.WithBoolean("preprocess", mcp.Description("Apply baseline wander, low-pass and mains filtering. Defaults to true.")),
	), h.handleAnalyzeECG)

	// --- 2. Tool: generate_ecg ---
	s.AddTool(mcp.NewTool("generate_ecg",
		mcp.WithDescription("Generate a synthetic ECG recording and write it to a file."),
		mcp.WithString("output_path", mcp.Description("Path to write the generated samples to."), mcp.Required()),
		mcp.WithString("rhythm", mcp.Description("Rhythm preset. Defaults to 'normal'."), mcp.Enum("normal", "bradycardia", "tachycardia", "afib", "pvc")),
		mcp.WithNumber("seconds", mcp.Description("Recording length in seconds. Defaults to 30.")),
		mcp.WithNumber("bpm", mcp.Description("Base heart rate in BPM. Defaults to 70.")),
		mcp.WithNumber("seed", mcp.Description("Random seed for reproducible output.")),
	), h.handleGenerateECG)

	return s
}

// StartMCPServer starts the Rhythmscan MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
