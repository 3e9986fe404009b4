// Package sigio loads recorded signals from disk and generates synthetic
// waveforms for demos and tests.
package sigio

import (
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column names recognized as holding the signal in a headed CSV file.
var signalColumns = []string{"ecg", "ECG", "signal", "data", "values", "amplitude"}

// Load reads a signal from a file, dispatching on the extension. Supported
// formats are .csv (with or without header), .txt (whitespace or comma
// separated) and .f64 (raw little-endian float64).
func Load(path string) ([]float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".txt":
		return loadText(path)
	case ".f64":
		return loadRaw(path)
	default:
		return nil, fmt.Errorf("unsupported file format %q: use .csv, .txt or .f64", filepath.Ext(path))
	}
}

// loadCSV reads the signal column of a CSV file. A header row is detected by
// its first field not parsing as a number; the signal column is matched by
// name first, then by the first numeric column.
func loadCSV(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error loading CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("error loading CSV file: %s is empty", path)
	}

	column := 0
	rows := records
	if _, err := strconv.ParseFloat(strings.TrimSpace(records[0][0]), 64); err != nil {
		// Header row present.
		header := records[0]
		rows = records[1:]
		column = matchColumn(header, rows)
		if column < 0 {
			return nil, fmt.Errorf("error loading CSV file: no numeric column found in %s", path)
		}
	}

	signal := make([]float64, 0, len(rows))
	for i, row := range rows {
		if column >= len(row) {
			return nil, fmt.Errorf("error loading CSV file: row %d has %d fields", i+1, len(row))
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[column]), 64)
		if err != nil {
			return nil, fmt.Errorf("error loading CSV file: bad value %q at row %d", row[column], i+1)
		}
		signal = append(signal, v)
	}
	return signal, nil
}

// matchColumn picks the column to read: a known signal column name wins,
// otherwise the first column whose data parses as numeric. Returns -1 when
// nothing qualifies.
func matchColumn(header []string, rows [][]string) int {
	for _, name := range signalColumns {
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				return i
			}
		}
	}
	if len(rows) == 0 {
		return -1
	}
	for i := range header {
		if i < len(rows[0]) {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][i]), 64); err == nil {
				return i
			}
		}
	}
	return -1
}

// loadText reads one value per line, or the first column of comma or
// whitespace separated rows.
func loadText(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var signal []float64
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("error loading text file: bad value %q at line %d", fields[0], i+1)
		}
		signal = append(signal, v)
	}
	if len(signal) == 0 {
		return nil, fmt.Errorf("error loading text file: %s has no samples", path)
	}
	return signal, nil
}

// loadRaw reads a flat little-endian float64 array.
func loadRaw(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("error loading raw file: %s length %d is not a multiple of 8", path, len(data))
	}

	signal := make([]float64, len(data)/8)
	for i := range signal {
		signal[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return signal, nil
}

// Save writes a signal as one value per line, suitable for reloading with
// Load.
func Save(path string, signal []float64) error {
	var b strings.Builder
	for _, v := range signal {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
