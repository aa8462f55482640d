// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frames turns a flat stream of numeric samples into fixed-shape 2D
// frames. The transform is load, reshape, truncate, serialize; nothing is
// retained between calls.
package frames

import (
	"fmt"
	"os"

	"github.com/pdiddy/heatframe/pkg/types"
)

// Converter reads one sample file and reshapes it into frames of Shape,
// keeping at most MaxFrames of them. MaxFrames <= 0 keeps every frame.
type Converter struct {
	Shape     types.Shape
	MaxFrames int
}

// NewConverter returns a Converter for the given shape and frame cap.
func NewConverter(shape types.Shape, maxFrames int) (*Converter, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if maxFrames < 0 {
		return nil, fmt.Errorf("max frames must not be negative, got %d", maxFrames)
	}
	return &Converter{Shape: shape, MaxFrames: maxFrames}, nil
}

// Convert loads the file at path and returns its frame sequence. Read
// failures are returned wrapped around the underlying *fs.PathError;
// malformed content yields *ParseError or *ShapeError.
func (c *Converter) Convert(path string) (types.FrameSequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening samples: %w", err)
	}
	defer f.Close()

	samples, err := ParseSamples(f)
	if err != nil {
		return nil, err
	}
	return Reshape(samples, c.Shape, c.MaxFrames)
}

// Reshape partitions samples into consecutive non-overlapping frames in
// row-major order and truncates to the first maxFrames. The sample count must
// be a positive multiple of shape.Cells(); anything else is rejected rather
// than producing garbled frames.
func Reshape(samples []float64, shape types.Shape, maxFrames int) (types.FrameSequence, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	cells := shape.Cells()
	if len(samples) == 0 || len(samples)%cells != 0 {
		return nil, &ShapeError{Count: len(samples), Cells: cells}
	}

	count := len(samples) / cells
	if maxFrames > 0 && count > maxFrames {
		count = maxFrames
	}

	seq := make(types.FrameSequence, count)
	for i := range seq {
		base := i * cells
		frame := make(types.Frame, shape.Rows)
		for r := range frame {
			start := base + r*shape.Cols
			// Full slice expression so appending to a row cannot clobber the next.
			frame[r] = samples[start : start+shape.Cols : start+shape.Cols]
		}
		seq[i] = frame
	}
	return seq, nil
}

// Flatten concatenates every row of every frame in order. It is the inverse
// of Reshape for the frames that were kept.
func Flatten(seq types.FrameSequence) []float64 {
	n := 0
	for _, f := range seq {
		for _, row := range f {
			n += len(row)
		}
	}
	out := make([]float64, 0, n)
	for _, f := range seq {
		for _, row := range f {
			out = append(out, row...)
		}
	}
	return out
}
