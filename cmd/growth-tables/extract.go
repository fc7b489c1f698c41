// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/growth-tables/internal/extract"
	"github.com/pdiddy/growth-tables/internal/output"
	"github.com/pdiddy/growth-tables/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract percentile tables from the survey CSV and write the data file",
	Long: `Extract reads the survey CSV (two header rows, then one row per age in
months), collects the nine height percentiles for girls (columns 5-13) and
boys (columns 17-25), and writes them as compact JSON for the application.

Rows with a missing or non-numeric value are skipped for both genders. If the
CSV cannot be read nothing is written and any previous output is left as is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		return runExtract(cfg, os.Stdout)
	},
}

func runExtract(cfg types.Config, w io.Writer) error {
	fmt.Fprintln(w, "Hong Kong 2020 growth chart data extractor")
	fmt.Fprintf(w, "Extracting data from %s...\n", cfg.Input)

	rec, err := extract.Extract(cfg.Input)
	if err != nil {
		logger.Error("Extraction failed", zap.String("input", cfg.Input), zap.Error(err))
		fmt.Fprintln(w, "Failed to extract data. Check the CSV file path and format.")
		return err
	}
	logger.Info("Extracted growth data",
		zap.String("input", cfg.Input),
		zap.Int("boy_points", rec.Boy.Len()),
		zap.Int("girl_points", rec.Girl.Len()))

	fmt.Fprintln(w)
	output.PrintSummary(w, rec)
	fmt.Fprintln(w)

	if err := output.WriteFile(cfg.Output, rec, cfg.Format, cfg.JSVar); err != nil {
		return err
	}
	fmt.Fprintf(w, "Data saved to %s (%s)\n", cfg.Output, cfg.Format)

	if cfg.JSOutput != "" {
		if err := output.WriteFile(cfg.JSOutput, rec, types.FormatJS, cfg.JSVar); err != nil {
			return err
		}
		fmt.Fprintf(w, "JavaScript snippet saved to %s\n", cfg.JSOutput)
	}
	return nil
}

func init() {
	extractCmd.Flags().String("format", string(types.FormatJSON), "output format: json, yaml, or js")
	extractCmd.Flags().String("js-output", "", "also write a JavaScript snippet to this path")
	extractCmd.Flags().String("js-var", types.DefaultJSVar, "variable name for the JavaScript snippet")

	bindFlag("format", extractCmd.Flags().Lookup("format"))
	bindFlag("js_output", extractCmd.Flags().Lookup("js-output"))
	bindFlag("js_var", extractCmd.Flags().Lookup("js-var"))

	rootCmd.AddCommand(extractCmd)
}
