// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/growth-tables/internal/extract"
	"github.com/pdiddy/growth-tables/internal/store"
	"github.com/pdiddy/growth-tables/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Keep extracted tables in a local SQLite database",
	Long: `Store manages data/growth.db, a SQLite copy of extracted tables keyed by
dataset name. Use subcommands to ingest the source CSV, list datasets, or
look up the percentiles at one age.`,
}

// --- ingest subcommand ---

var storeIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract the source CSV and store it under the dataset name",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		return runStoreIngest(context.Background(), cfg, os.Stdout)
	},
}

func runStoreIngest(ctx context.Context, cfg types.Config, w io.Writer) error {
	rec, err := extract.Extract(cfg.Input)
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(ctx, cfg.Store.Dataset, rec)
	if err != nil {
		return err
	}
	logger.Info("Stored dataset",
		zap.String("dataset", summary.Dataset),
		zap.String("db", s.Path()),
		zap.Int("rows", summary.Total()))
	fmt.Fprintf(w, "stored %s: %d boy, %d girl points in %s\n",
		summary.Dataset, summary.Boy, summary.Girl, s.Path())
	return nil
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		return runStoreList(context.Background(), cfg, os.Stdout)
	},
}

func runStoreList(ctx context.Context, cfg types.Config, w io.Writer) error {
	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	datasets, err := s.Datasets(ctx)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		fmt.Fprintln(w, "No datasets stored.")
		return nil
	}

	fmt.Fprintf(w, "%-12s  %-6s  %-6s  %s\n", "Dataset", "Boy", "Girl", "Ingested")
	fmt.Fprintln(w, strings.Repeat("-", 56))
	for _, d := range datasets {
		fmt.Fprintf(w, "%-12s  %-6d  %-6d  %s\n", d.Name, d.BoyPoints, d.GirlPoints, d.IngestedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// --- lookup subcommand ---

var storeLookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Print the percentile heights for one gender at one age",
	Long: `Lookup prints the nine percentile heights stored for --gender at --age
months. If the table has several rows for the same age the first is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		gender, _ := cmd.Flags().GetString("gender")
		age, _ := cmd.Flags().GetInt("age")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return runStoreLookup(context.Background(), cfg, types.Gender(gender), age, jsonOutput, os.Stdout)
	},
}

func runStoreLookup(ctx context.Context, cfg types.Config, gender types.Gender, age int, jsonOutput bool, w io.Writer) error {
	if gender != types.GenderBoy && gender != types.GenderGirl {
		return fmt.Errorf("unsupported gender %q: use boy or girl", gender)
	}

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.Lookup(ctx, cfg.Store.Dataset, gender, age)
	if err != nil {
		return err
	}

	if jsonOutput {
		values := make(map[string]float64, len(types.PercentileKeys))
		for i, key := range types.PercentileKeys {
			values[key] = p.Values[i]
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Gender      types.Gender       `json:"gender"`
			AgeMonths   int                `json:"age_months"`
			Percentiles map[string]float64 `json:"percentiles"`
		}{p.Gender, p.AgeMonths, values})
	}

	fmt.Fprintf(w, "%s, %d months (%.1f years)\n", p.Gender, p.AgeMonths, float64(p.AgeMonths)/12)
	for i, key := range types.PercentileKeys {
		fmt.Fprintf(w, "  %-15s %g cm\n", types.PercentileLabels[key], p.Values[i])
	}
	return nil
}

func init() {
	storeLookupCmd.Flags().String("gender", string(types.GenderBoy), "gender: boy or girl")
	storeLookupCmd.Flags().Int("age", 0, "age in months")
	storeLookupCmd.Flags().Bool("json", false, "output as JSON")

	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeLookupCmd)

	rootCmd.AddCommand(storeCmd)
}
