// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the heatframe CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/heatframe/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the heatframe CLI.
var rootCmd = &cobra.Command{
	Use:   "heatframe",
	Short: "Convert numeric sample recordings into frame JSON for heatmap viewing",
	Long: `heatframe turns whitespace-delimited numeric text files into JSON arrays of
fixed-shape frames (32x64 by default) that the heatmap viewer can load.

Settings come from flags, HEATFRAME_* environment variables, or a
heatframe.yaml config file, in that order of precedence.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./heatframe.yaml or ~/.config/heatframe/config.yaml)")
	rootCmd.PersistentFlags().Int("rows", types.DefaultShape.Rows, "rows per frame")
	rootCmd.PersistentFlags().Int("cols", types.DefaultShape.Cols, "columns per frame")
	rootCmd.PersistentFlags().String("catalog", "", "SQLite catalog recording every conversion (disabled when empty)")

	bindFlag(rootCmd.PersistentFlags().Lookup("rows"), "rows")
	bindFlag(rootCmd.PersistentFlags().Lookup("cols"), "cols")
	bindFlag(rootCmd.PersistentFlags().Lookup("catalog"), "catalog")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("heatframe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "heatframe"))
		}
	}

	viper.SetEnvPrefix("HEATFRAME")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlag binds a flag to a viper key so flag > env > config > default.
func bindFlag(f *pflag.Flag, key string) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", f.Name, err))
	}
}

// shapeConfig returns the frame shape from flags, environment, or config.
func shapeConfig() types.Shape {
	return types.Shape{
		Rows: viper.GetInt("rows"),
		Cols: viper.GetInt("cols"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
