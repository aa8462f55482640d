// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/heatframe/internal/convert"
	"github.com/pdiddy/heatframe/pkg/types"
)

// Manifest describes one batch run: the settings used and the files it
// produced. The viewer loads Files to populate its file selector.
type Manifest struct {
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	InputDir    string         `json:"input_dir" yaml:"input_dir"`
	OutputDir   string         `json:"output_dir" yaml:"output_dir"`
	Shape       types.Shape    `json:"shape" yaml:"shape"`
	MaxFrames   int            `json:"max_frames" yaml:"max_frames"`
	Summary     Summary        `json:"summary" yaml:"summary"`
	Files       []ManifestFile `json:"files" yaml:"files"`
	Failures    []ManifestFile `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Summary holds the batch counts.
type Summary struct {
	Converted int `json:"converted" yaml:"converted"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
}

// ManifestFile is one entry of a manifest. File is relative to the output
// directory.
type ManifestFile struct {
	File   string `json:"file" yaml:"file"`
	Source string `json:"source" yaml:"source"`
	Frames int    `json:"frames,omitempty" yaml:"frames,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewManifest builds the manifest for a finished batch. Skipped files are
// listed alongside converted ones since their outputs are still available.
func NewManifest(cfg types.ConversionConfig, result convert.BatchResult) Manifest {
	m := Manifest{
		GeneratedAt: time.Now().UTC(),
		InputDir:    cfg.InputDir,
		OutputDir:   cfg.OutputDir,
		Shape:       cfg.Shape,
		MaxFrames:   cfg.MaxFrames,
		Summary: Summary{
			Converted: result.Converted,
			Skipped:   result.Skipped,
			Failed:    result.Failed,
		},
		Files: []ManifestFile{},
	}
	for _, rec := range result.Records {
		entry := ManifestFile{
			File:   filepath.Base(rec.Output),
			Source: filepath.Base(rec.Input),
			Frames: rec.Frames,
		}
		switch rec.Status {
		case types.ConversionDone, types.ConversionSkipped:
			m.Files = append(m.Files, entry)
		case types.ConversionFailed:
			entry.Error = rec.Error
			m.Failures = append(m.Failures, entry)
		}
	}
	return m
}

// WriteManifest writes m to path as JSON when path ends in ".json" and as
// YAML otherwise.
func WriteManifest(path string, m Manifest) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = yaml.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating manifest directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading manifest: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &m)
	} else {
		err = yaml.Unmarshal(data, &m)
	}
	if err != nil {
		return m, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}
