// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Defaults for the conversion stage. They reproduce the layout the heatmap
// viewer expects: ./data/*.txt in, ./data_json/*.json out, 60 frames of 32x64.
const (
	DefaultInputDir  = "data"
	DefaultOutputDir = "data_json"
	DefaultInputExt  = ".txt"
	DefaultOutputExt = ".json"
	DefaultMaxFrames = 60
)

// ConversionConfig holds settings for a batch conversion run.
type ConversionConfig struct {
	// InputDir is scanned (non-recursively) for files ending in InputExt.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives one JSON file per converted input. Created if absent.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// InputExt selects candidate input files (default ".txt").
	InputExt string `json:"ext" yaml:"ext"`

	// Shape is the fixed frame geometry (default 32x64).
	Shape Shape `json:"shape" yaml:"shape"`

	// MaxFrames caps the frames written per file (default 60). Zero writes
	// every frame.
	MaxFrames int `json:"max_frames" yaml:"max_frames"`

	// SkipExisting leaves already-converted outputs untouched.
	SkipExisting bool `json:"skip_existing" yaml:"skip_existing"`

	// ManifestPath, when set, receives a YAML (or JSON, by extension) list of
	// the files produced by the run.
	ManifestPath string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// CatalogPath, when set, is a SQLite database that records every
	// conversion attempt.
	CatalogPath string `json:"catalog,omitempty" yaml:"catalog,omitempty"`
}

// DefaultConversionConfig returns the reference configuration.
func DefaultConversionConfig() ConversionConfig {
	return ConversionConfig{
		InputDir:  DefaultInputDir,
		OutputDir: DefaultOutputDir,
		InputExt:  DefaultInputExt,
		Shape:     DefaultShape,
		MaxFrames: DefaultMaxFrames,
	}
}
