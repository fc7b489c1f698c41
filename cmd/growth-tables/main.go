// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the growth-tables CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/growth-tables/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is replaced in PersistentPreRunE; a no-op logger keeps helpers
// usable from tests.
var logger = zap.NewNop()

// rootCmd is the base command for the growth-tables CLI.
var rootCmd = &cobra.Command{
	Use:   "growth-tables",
	Short: "Extract HK 2020 growth percentile tables for the charting application",
	Long: `growth-tables reads the Hong Kong Growth Survey 2020-22 standard tables
(HK-2020-StandardTables_v2.csv) and reshapes the height percentiles into the
per-gender JSON structure the growth chart application loads.

Subcommands extract and write the data, verify an existing artifact, fetch
the published CSV, and keep a SQLite copy for per-age lookups.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("Using config file", zap.String("path", f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./growth-tables.yaml or ~/.config/growth-tables/config.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("input", types.DefaultInput, "source CSV path")
	flags.String("output", types.DefaultOutput, "output artifact path")
	flags.String("data-dir", types.DefaultDataDir, "directory holding growth.db")
	flags.String("dataset", types.DefaultDataset, "dataset name in the store")

	bindFlag("input", flags.Lookup("input"))
	bindFlag("output", flags.Lookup("output"))
	bindFlag("store.data_dir", flags.Lookup("data-dir"))
	bindFlag("store.dataset", flags.Lookup("dataset"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("growth-tables")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "growth-tables"))
		}
	}

	viper.SetEnvPrefix("GROWTH_TABLES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
