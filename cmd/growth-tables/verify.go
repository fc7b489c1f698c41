// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/growth-tables/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Check a growth data file against the application format",
	Long: `Verify reads a JSON growth data file (default: the configured output)
and checks that both genders are present with non-empty ages, that each has
exactly the nine percentile keys, and that every series lines up with ages.
It prints the final 50th percentile value of each gender.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		path := cfg.Output
		if len(args) == 1 {
			path = args[0]
		}
		return runVerify(path, os.Stdout)
	},
}

func runVerify(path string, w io.Writer) error {
	report, err := verify.File(path)
	if err != nil {
		return err
	}
	report.Print(w)

	if !report.OK() {
		logger.Warn("Verification failed", zap.String("path", path), zap.Strings("problems", report.Problems))
		return fmt.Errorf("%s: %d problem(s) found", path, len(report.Problems))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
