package schema

// Custom string types for type safety.
type (
	// Arrhythmia names a rhythm class tracked by the classifier.
	Arrhythmia string

	// Confidence grades how much independent evidence backs a verdict.
	Confidence string

	// OutputMode represents the format of the output.
	OutputMode string

	// Rhythm selects a synthetic waveform preset.
	Rhythm string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All arrhythmia classes tracked by the classifier.
const (
	SinusRhythm Arrhythmia = "sinus_rhythm" // baseline, starts at 100
	Bradycardia Arrhythmia = "bradycardia"
	Tachycardia Arrhythmia = "tachycardia"
	AFib        Arrhythmia = "afib"
	PVC         Arrhythmia = "pvc"
	HeartBlock  Arrhythmia = "heart_block"
	LBBB        Arrhythmia = "lbbb"
	RBBB        Arrhythmia = "rbbb"
)

// Confidence levels, ordered weakest to strongest.
const (
	LowConfidence    Confidence = "low"
	MediumConfidence Confidence = "medium"
	HighConfidence   Confidence = "high"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All synthetic rhythm presets supported.
const (
	NormalRhythm Rhythm = "normal" // default
	BradyRhythm  Rhythm = "bradycardia"
	TachyRhythm  Rhythm = "tachycardia"
	AFibRhythm   Rhythm = "afib"
	PVCRhythm    Rhythm = "pvc"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllArrhythmias returns every class in a stable display order.
var AllArrhythmias = []Arrhythmia{
	SinusRhythm, Bradycardia, Tachycardia, AFib, PVC, HeartBlock, LBBB, RBBB,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// ValidRhythms lists all valid synthetic rhythm presets.
var ValidRhythms = map[Rhythm]struct{}{
	NormalRhythm: {},
	BradyRhythm:  {},
	TachyRhythm:  {},
	AFibRhythm:   {},
	PVCRhythm:    {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
