// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/heatframe/internal/catalog"
	"github.com/pdiddy/heatframe/internal/convert"
	"github.com/pdiddy/heatframe/internal/frames"
	"github.com/pdiddy/heatframe/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every sample file in the input directory to frame JSON",
	Long: `Convert reads each *.txt file in the input directory, reshapes its values
into frames of rows x cols, keeps the first --max-frames frames, and writes
<name>.json to the output directory.

A file that cannot be parsed or reshaped is reported and skipped; the rest of
the batch still runs and the command exits 0. Only failure to create the
output directory aborts the run.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig()

	conv, err := frames.NewConverter(cfg.Shape, cfg.MaxFrames)
	if err != nil {
		return err
	}

	result, err := convert.ConvertDir(context.Background(), conv, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if cfg.ManifestPath != "" {
		if err := catalog.WriteManifest(cfg.ManifestPath, catalog.NewManifest(cfg, result)); err != nil {
			fmt.Fprintf(stderr, "warning: manifest write failed: %v\n", err)
		}
	}

	if cfg.CatalogPath != "" {
		if err := recordCatalog(cfg.CatalogPath, result.Records); err != nil {
			fmt.Fprintf(stderr, "warning: catalog update failed: %v\n", err)
		}
	}

	// Per-file failures do not change the exit status.
	if result.HasFailures() {
		fmt.Fprintf(stderr, "%d file(s) failed to convert; see the errors above\n", result.Failed)
	}
	return nil
}

func recordCatalog(path string, recs []types.ConversionRecord) error {
	store, err := catalog.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordAll(context.Background(), recs)
}

// conversionConfig assembles the run configuration from flags, environment,
// and config file.
func conversionConfig() types.ConversionConfig {
	return types.ConversionConfig{
		InputDir:     viper.GetString("input_dir"),
		OutputDir:    viper.GetString("output_dir"),
		InputExt:     viper.GetString("ext"),
		Shape:        shapeConfig(),
		MaxFrames:    viper.GetInt("max_frames"),
		SkipExisting: viper.GetBool("skip_existing"),
		ManifestPath: viper.GetString("manifest"),
		CatalogPath:  viper.GetString("catalog"),
	}
}

func init() {
	flags := convertCmd.Flags()
	flags.String("input-dir", types.DefaultInputDir, "directory containing sample files")
	flags.String("output-dir", types.DefaultOutputDir, "directory receiving frame JSON files (created if absent)")
	flags.String("ext", types.DefaultInputExt, "extension of sample files to convert")
	flags.Int("max-frames", types.DefaultMaxFrames, "maximum frames written per file (0 = all)")
	flags.Bool("skip-existing", false, "leave existing JSON outputs untouched")
	flags.String("manifest", "", "write a YAML (or .json) manifest of converted files to this path")

	for flag, key := range map[string]string{
		"input-dir":     "input_dir",
		"output-dir":    "output_dir",
		"ext":           "ext",
		"max-frames":    "max_frames",
		"skip-existing": "skip_existing",
		"manifest":      "manifest",
	} {
		bindFlag(flags.Lookup(flag), key)
	}

	rootCmd.AddCommand(convertCmd)
}
