// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/heatframe/internal/convert"
	"github.com/pdiddy/heatframe/internal/frames"
	"github.com/pdiddy/heatframe/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index", "heatframe.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func record(input string, status types.ConversionStatus, frames int, errText string) types.ConversionRecord {
	return types.ConversionRecord{
		Input:       filepath.Join("data", input),
		Output:      filepath.Join("data_json", convert.OutputName(input, ".txt", ".json")),
		Frames:      frames,
		Status:      status,
		Error:       errText,
		ConvertedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// --- store ---

func TestStore_RecordAndList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, record("2.txt", types.ConversionDone, 60, "")))
	require.NoError(t, store.Record(ctx, record("1.txt", types.ConversionFailed, 0, "line 3: invalid number \"abc\"")))

	got, err := store.List(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, filepath.Join("data", "1.txt"), got[0].Input, "ordered by input")
	assert.Equal(t, types.ConversionFailed, got[0].Status)
	assert.Equal(t, `line 3: invalid number "abc"`, got[0].Error)

	assert.Equal(t, 60, got[1].Frames)
	assert.Empty(t, got[1].Error)
	assert.True(t, got[1].ConvertedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestStore_RecordReplacesEarlierRun(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, record("1.txt", types.ConversionFailed, 0, "bad")))
	require.NoError(t, store.Record(ctx, record("1.txt", types.ConversionDone, 12, "")))

	got, err := store.List(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.ConversionDone, got[0].Status)
	assert.Equal(t, 12, got[0].Frames)
	assert.Empty(t, got[0].Error)
}

func TestStore_ListFilters(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordAll(ctx, []types.ConversionRecord{
		record("1.txt", types.ConversionDone, 60, ""),
		record("2.txt", types.ConversionFailed, 0, "short"),
		record("3.txt", types.ConversionDone, 4, ""),
		record("4.txt", types.ConversionSkipped, 0, ""),
	}))

	tests := []struct {
		name string
		opts QueryOptions
		want int
	}{
		{name: "all", opts: QueryOptions{}, want: 4},
		{name: "converted only", opts: QueryOptions{Status: types.ConversionDone}, want: 2},
		{name: "failed only", opts: QueryOptions{Status: types.ConversionFailed}, want: 1},
		{name: "limit", opts: QueryOptions{Limit: 3}, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.opts)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heatframe.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, record("1.txt", types.ConversionDone, 1, "")))
	require.NoError(t, store.Close())

	store, err = NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.List(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// --- manifest ---

func testResult() convert.BatchResult {
	return convert.BatchResult{
		Converted: 1,
		Skipped:   1,
		Failed:    1,
		Records: []types.ConversionRecord{
			record("1.txt", types.ConversionDone, 60, ""),
			record("2.txt", types.ConversionSkipped, 0, ""),
			record("3.txt", types.ConversionFailed, 0, "cannot reshape 2047 values"),
		},
	}
}

func TestNewManifest(t *testing.T) {
	cfg := types.DefaultConversionConfig()
	m := NewManifest(cfg, testResult())

	assert.Equal(t, types.DefaultShape, m.Shape)
	assert.Equal(t, 60, m.MaxFrames)
	assert.Equal(t, Summary{Converted: 1, Skipped: 1, Failed: 1}, m.Summary)

	require.Len(t, m.Files, 2)
	assert.Equal(t, "1.json", m.Files[0].File)
	assert.Equal(t, "1.txt", m.Files[0].Source)
	assert.Equal(t, 60, m.Files[0].Frames)
	assert.Equal(t, "2.json", m.Files[1].File)

	require.Len(t, m.Failures, 1)
	assert.Equal(t, "3.txt", m.Failures[0].Source)
	assert.Contains(t, m.Failures[0].Error, "2047")
}

// TestSkippedRerun_KeepsFrameCount records a conversion run and then a
// --skip-existing rerun, and checks neither the catalog row nor the manifest
// entry loses the frame count.
func TestSkippedRerun_KeepsFrameCount(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	tmpDir := t.TempDir()
	inDir := filepath.Join(tmpDir, "data")
	require.NoError(t, os.MkdirAll(inDir, 0o755))
	cells := types.DefaultShape.Cells()
	two := strings.TrimSpace(strings.Repeat("1.5 ", 2*cells)) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "a.txt"), []byte(two), 0o644))

	conv, err := frames.NewConverter(types.DefaultShape, types.DefaultMaxFrames)
	require.NoError(t, err)

	cfg := types.DefaultConversionConfig()
	cfg.InputDir = inDir
	cfg.OutputDir = filepath.Join(tmpDir, "data_json")

	var log bytes.Buffer
	first, err := convert.ConvertDir(ctx, conv, cfg, &log)
	require.NoError(t, err)
	require.NoError(t, store.RecordAll(ctx, first.Records))

	cfg.SkipExisting = true
	second, err := convert.ConvertDir(ctx, conv, cfg, &log)
	require.NoError(t, err)
	require.NoError(t, store.RecordAll(ctx, second.Records))

	recs, err := store.List(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, types.ConversionSkipped, recs[0].Status)
	assert.Equal(t, 2, recs[0].Frames)

	m := NewManifest(cfg, second)
	require.Len(t, m.Files, 1)
	assert.Equal(t, "a.json", m.Files[0].File)
	assert.Equal(t, 2, m.Files[0].Frames)
}

func TestWriteManifest_Formats(t *testing.T) {
	for _, name := range []string{"manifest.yaml", "manifest.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", name)
			m := NewManifest(types.DefaultConversionConfig(), testResult())

			require.NoError(t, WriteManifest(path, m))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			if filepath.Ext(name) == ".json" {
				assert.Contains(t, string(data), `"file": "1.json"`)
			} else {
				assert.Contains(t, string(data), "file: 1.json")
			}

			got, err := ReadManifest(path)
			require.NoError(t, err)
			assert.Equal(t, m.Files, got.Files)
			assert.Equal(t, m.Failures, got.Failures)
			assert.Equal(t, m.Shape, got.Shape)
			assert.True(t, m.GeneratedAt.Equal(got.GeneratedAt))
		})
	}
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
