// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/heatframe/internal/catalog"
	"github.com/pdiddy/heatframe/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the conversion catalog",
	Long: `Catalog reads the SQLite database that convert fills when --catalog (or
HEATFRAME_CATALOG) is set. Each input file keeps the record of its most
recent conversion.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	path := viper.GetString("catalog")
	if path == "" {
		return fmt.Errorf("catalog path required: pass --catalog or set HEATFRAME_CATALOG")
	}

	status, _ := cmd.Flags().GetString("status")
	switch types.ConversionStatus(status) {
	case "", types.ConversionDone, types.ConversionSkipped, types.ConversionFailed:
	default:
		return fmt.Errorf("unsupported status %q: use converted, skipped, or failed", status)
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := catalog.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(context.Background(), catalog.QueryOptions{
		Status: types.ConversionStatus(status),
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCatalogOutput(cmd.OutOrStdout(), recs, jsonOutput)
}

func formatCatalogOutput(w io.Writer, recs []types.ConversionRecord, jsonOutput bool) error {
	if jsonOutput {
		if recs == nil {
			recs = []types.ConversionRecord{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-24s  %-24s  %-9s  %6s  %s\n", "Input", "Output", "Status", "Frames", "Error")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range recs {
		fmt.Fprintf(w, "%-24s  %-24s  %-9s  %6d  %s\n",
			filepath.Base(r.Input), filepath.Base(r.Output), r.Status, r.Frames, r.Error)
	}
	fmt.Fprintf(w, "\n%d records\n", len(recs))
	return nil
}

func init() {
	catalogListCmd.Flags().String("status", "", "filter by status: converted, skipped, or failed")
	catalogListCmd.Flags().Int("limit", 0, "maximum records (0 = default of 100)")
	catalogListCmd.Flags().Bool("json", false, "output records as JSON")

	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}
