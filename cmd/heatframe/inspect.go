// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/heatframe/internal/frames"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.json>...",
	Short: "Validate frame JSON files and report their value range",
	Long: `Inspect loads frame JSON files, checks that every frame has the configured
rows x cols shape, and prints the frame count with the minimum, maximum, and
mean value. Use the range to choose the heatmap colour domain.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

// inspectResult is one row of inspect output.
type inspectResult struct {
	File  string       `json:"file"`
	Stats frames.Stats `json:"stats"`
	Error string       `json:"error,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	shape := shapeConfig()
	if err := shape.Validate(); err != nil {
		return err
	}

	results := make([]inspectResult, 0, len(args))
	failed := 0
	for _, path := range args {
		r := inspectResult{File: path}
		seq, err := frames.DecodeFile(path, shape)
		if err != nil {
			r.Error = err.Error()
			failed++
		} else {
			r.Stats = frames.Summarize(seq)
		}
		results = append(results, r)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if err := formatInspectOutput(cmd.OutOrStdout(), results, jsonOutput); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

func formatInspectOutput(w io.Writer, results []inspectResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Fprintf(w, "%-24s  %6s  %7s  %10s  %10s  %10s\n",
		"File", "Frames", "Shape", "Min", "Max", "Mean")
	for _, r := range results {
		name := filepath.Base(r.File)
		if r.Error != "" {
			fmt.Fprintf(w, "%-24s  error: %s\n", name, r.Error)
			continue
		}
		s := r.Stats
		fmt.Fprintf(w, "%-24s  %6d  %7s  %10.3f  %10.3f  %10.3f\n",
			name, s.Frames, fmt.Sprintf("%dx%d", s.Rows, s.Cols), s.Min, s.Max, s.Mean)
	}
	return nil
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(inspectCmd)
}
