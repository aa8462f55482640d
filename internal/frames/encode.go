// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frames

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/pdiddy/heatframe/pkg/types"
)

// Encode serializes seq as a bare JSON array of shape [F][Rows][Cols]. The
// output is compact and deterministic: identical sequences always encode to
// identical bytes.
func Encode(seq types.FrameSequence) ([]byte, error) {
	if seq == nil {
		seq = types.FrameSequence{}
	}
	data, err := json.Marshal(seq)
	if err != nil {
		return nil, fmt.Errorf("marshaling frames: %w", err)
	}
	return data, nil
}

// Decode parses a frame JSON document and checks that every frame has the
// given shape.
func Decode(data []byte, shape types.Shape) (types.FrameSequence, error) {
	var seq types.FrameSequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("parsing frame JSON: %w", err)
	}
	for i, f := range seq {
		if len(f) != shape.Rows {
			return nil, &ShapeError{Cells: shape.Cells(), Detail: fmt.Sprintf(
				"frame %d has %d rows, want %d", i, len(f), shape.Rows)}
		}
		for r, row := range f {
			if len(row) != shape.Cols {
				return nil, &ShapeError{Cells: shape.Cells(), Detail: fmt.Sprintf(
					"frame %d row %d has %d columns, want %d", i, r, len(row), shape.Cols)}
			}
		}
	}
	return seq, nil
}

// DecodeFile reads and validates a frame JSON file written by Encode.
func DecodeFile(path string, shape types.Shape) (types.FrameSequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading frame file: %w", err)
	}
	seq, err := Decode(data, shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}

// Stats summarizes the values in a frame sequence. The viewer maps values to
// a fixed colour domain, so the range tells an operator whether that domain
// fits the recording.
type Stats struct {
	Frames int     `json:"frames"`
	Rows   int     `json:"rows"`
	Cols   int     `json:"cols"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// Summarize computes Stats for seq. An empty sequence yields zero values.
func Summarize(seq types.FrameSequence) Stats {
	s := Stats{Frames: len(seq)}
	if len(seq) == 0 || len(seq[0]) == 0 {
		return s
	}
	s.Rows = len(seq[0])
	s.Cols = len(seq[0][0])

	lo, hi, sum, n := math.Inf(1), math.Inf(-1), 0.0, 0
	for _, f := range seq {
		for _, row := range f {
			for _, v := range row {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
				sum += v
				n++
			}
		}
	}
	if n == 0 {
		return s
	}
	s.Min, s.Max, s.Mean = lo, hi, sum/float64(n)
	return s
}
