// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// Shape is the fixed geometry of a single frame.
type Shape struct {
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
}

// DefaultShape is the 32x64 pressure grid rendered by the heatmap viewer.
var DefaultShape = Shape{Rows: 32, Cols: 64}

// Cells returns the number of values in one frame.
func (s Shape) Cells() int {
	return s.Rows * s.Cols
}

// Validate checks that both dimensions are positive.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("frame shape must be positive, got %dx%d", s.Rows, s.Cols)
	}
	return nil
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// Frame is one Rows x Cols grid of samples in row-major order.
type Frame [][]float64

// FrameSequence is the ordered, length-capped list of frames produced from one
// input file. It marshals to JSON as [F][Rows][Cols].
type FrameSequence []Frame

// ConversionStatus indicates the outcome of converting one input file.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// ConversionRecord associates one input file with its output file.
type ConversionRecord struct {
	// Input is the path of the source text file.
	Input string `json:"input" yaml:"input"`

	// Output is the path of the JSON file. It is set even when the conversion
	// failed, so operators can see where the file would have gone.
	Output string `json:"output" yaml:"output"`

	// Frames is the number of frames written (zero on failure).
	Frames int `json:"frames" yaml:"frames"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Error is the failure reason, if any.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
