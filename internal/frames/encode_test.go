// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frames

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/heatframe/pkg/types"
)

func TestEncode(t *testing.T) {
	seq := types.FrameSequence{
		{{0, 1.5}, {-2, 1e-7}},
	}
	data, err := Encode(seq)
	require.NoError(t, err)
	assert.Equal(t, `[[[0,1.5],[-2,1e-7]]]`, string(data))

	again, err := Encode(seq)
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding must be deterministic")
}

func TestEncode_Empty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestEncodeDecode_PreservesValues(t *testing.T) {
	shape := types.Shape{Rows: 2, Cols: 2}
	samples := []float64{0.1, 1.0 / 3.0, 123456.789, -0.000123}
	seq, err := Reshape(samples, shape, 0)
	require.NoError(t, err)

	data, err := Encode(seq)
	require.NoError(t, err)

	got, err := Decode(data, shape)
	require.NoError(t, err)
	assert.Equal(t, samples, Flatten(got))
}

func TestDecode_ShapeMismatch(t *testing.T) {
	shape := types.Shape{Rows: 2, Cols: 2}
	tests := []struct {
		name string
		json string
		msg  string
	}{
		{name: "missing row", json: `[[[1,2]]]`, msg: "frame 0 has 1 rows"},
		{name: "short row", json: `[[[1,2],[3,4]],[[1,2],[3]]]`, msg: "frame 1 row 1 has 1 columns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.json), shape)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrShape)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"frames": 1}`), types.DefaultShape)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrShape)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(path, []byte(`[[[1,2],[3,4]]]`), 0o644))

	seq, err := DecodeFile(path, types.Shape{Rows: 2, Cols: 2})
	require.NoError(t, err)
	assert.Len(t, seq, 1)

	_, err = DecodeFile(filepath.Join(dir, "nope.json"), types.DefaultShape)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	seq := types.FrameSequence{
		{{1, 2}, {3, 4}},
		{{-4, 0}, {10, 0}},
	}
	s := Summarize(seq)
	assert.Equal(t, 2, s.Frames)
	assert.Equal(t, 2, s.Rows)
	assert.Equal(t, 2, s.Cols)
	assert.Equal(t, -4.0, s.Min)
	assert.Equal(t, 10.0, s.Max)
	assert.InDelta(t, 2.0, s.Mean, 1e-12)

	assert.Equal(t, Stats{}, Summarize(nil))
}
