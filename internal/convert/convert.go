// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives batch conversion of sample text files into frame
// JSON files. Each file is converted inside its own error boundary: a failure
// is reported and the batch moves on to the next file.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/heatframe/internal/frames"
	"github.com/pdiddy/heatframe/pkg/types"
)

// Converter turns one input file into a frame sequence. *frames.Converter is
// the production implementation.
type Converter interface {
	// Convert reads the sample file at path and returns its frames.
	Convert(path string) (types.FrameSequence, error)
}

// Options controls per-file behaviour.
type Options struct {
	// InputExt is the extension replaced by OutputExt when deriving the
	// output name.
	InputExt  string
	OutputExt string

	// SkipExisting leaves an existing output file untouched.
	SkipExisting bool

	// Shape is used to read the frame count back from a skipped output.
	Shape types.Shape
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Records lists one entry per candidate file, in processing order.
	Records []types.ConversionRecord
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputName derives the output file name by replacing inExt with outExt.
// Names without inExt get outExt appended.
func OutputName(name, inExt, outExt string) string {
	return strings.TrimSuffix(name, inExt) + outExt
}

// ConvertFile converts the file at inPath and writes the JSON into outDir.
// It never returns an error: the outcome is reported on w and in the returned
// record. A failed conversion leaves no output file behind.
func ConvertFile(c Converter, inPath, outDir string, opts Options, w io.Writer) types.ConversionRecord {
	inName := filepath.Base(inPath)
	outName := OutputName(inName, opts.InputExt, opts.OutputExt)
	rec := types.ConversionRecord{
		Input:       inPath,
		Output:      filepath.Join(outDir, outName),
		ConvertedAt: time.Now().UTC(),
	}

	if opts.SkipExisting {
		if _, err := os.Stat(rec.Output); err == nil {
			fmt.Fprintf(w, "Skipped %s (%s already exists)\n", inName, outName)
			rec.Status = types.ConversionSkipped
			// An unreadable output is still left alone; its count stays 0.
			if seq, err := frames.DecodeFile(rec.Output, opts.Shape); err == nil {
				rec.Frames = len(seq)
			}
			return rec
		}
	}

	fail := func(err error) types.ConversionRecord {
		fmt.Fprintf(w, "Error processing %s: %v\n", inName, err)
		rec.Status = types.ConversionFailed
		rec.Error = err.Error()
		return rec
	}

	seq, err := c.Convert(inPath)
	if err != nil {
		return fail(err)
	}

	data, err := frames.Encode(seq)
	if err != nil {
		return fail(err)
	}

	if err := writeFileAtomic(rec.Output, data); err != nil {
		return fail(err)
	}

	rec.Frames = len(seq)
	rec.Status = types.ConversionDone
	fmt.Fprintf(w, "Converted %s -> %s (%d frames)\n", inName, outName, rec.Frames)
	return rec
}

// ConvertDir converts every file in cfg.InputDir whose name ends in
// cfg.InputExt, in name order, printing per-file status to w and returning a
// summary. Only failure to create the output directory, failure to list the
// input directory, or cancellation of ctx stop the batch.
func ConvertDir(ctx context.Context, c Converter, cfg types.ConversionConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	inputs, err := ListInputs(cfg.InputDir, cfg.InputExt)
	if err != nil {
		return result, err
	}

	opts := Options{
		InputExt:     cfg.InputExt,
		OutputExt:    types.DefaultOutputExt,
		SkipExisting: cfg.SkipExisting,
		Shape:        cfg.Shape,
	}

	for _, in := range inputs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		rec := ConvertFile(c, in, cfg.OutputDir, opts, w)
		result.Records = append(result.Records, rec)
		switch rec.Status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// ListInputs returns the regular files in dir whose names end in ext,
// sorted by name.
func ListInputs(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partially written frame file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
