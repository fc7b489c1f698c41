// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/growth-tables/internal/extract"
	"github.com/pdiddy/growth-tables/internal/httputil"
	"github.com/pdiddy/growth-tables/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the published survey CSV to the input path",
	Long: `Fetch downloads the standard tables CSV from --url (or http.source_url
in the config file) to the configured input path. The download is checked
by extracting it before the previous file is replaced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		return runFetch(cmd.Context(), cfg, os.Stdout)
	},
}

func runFetch(ctx context.Context, cfg types.Config, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.HTTP.SourceURL == "" {
		return fmt.Errorf("no source URL: pass --url or set http.source_url")
	}

	client := &http.Client{Timeout: cfg.HTTP.Timeout}
	tmp := cfg.Input + ".download"
	n, err := httputil.Download(ctx, client, cfg.HTTP.SourceURL, tmp, cfg.HTTP.MaxRetries)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", cfg.HTTP.SourceURL, err)
	}
	defer os.Remove(tmp)

	rec, err := extract.Extract(tmp)
	if err != nil {
		return fmt.Errorf("downloaded file is not a usable table: %w", err)
	}
	if rec.Boy.Len() == 0 {
		return fmt.Errorf("downloaded file has no data rows")
	}

	if err := os.Rename(tmp, cfg.Input); err != nil {
		return fmt.Errorf("replacing %s: %w", cfg.Input, err)
	}
	logger.Info("Fetched source table",
		zap.String("url", cfg.HTTP.SourceURL),
		zap.Int64("bytes", n),
		zap.Int("rows", rec.Boy.Len()))
	fmt.Fprintf(w, "Saved %d bytes (%d data rows) to %s\n", n, rec.Boy.Len(), cfg.Input)
	return nil
}

func init() {
	fetchCmd.Flags().String("url", "", "URL of the standard tables CSV")
	fetchCmd.Flags().Duration("timeout", types.DefaultConfig().HTTP.Timeout, "HTTP request timeout")
	fetchCmd.Flags().Int("retries", types.DefaultConfig().HTTP.MaxRetries, "retries on HTTP 429/503")

	bindFlag("http.source_url", fetchCmd.Flags().Lookup("url"))
	bindFlag("http.timeout", fetchCmd.Flags().Lookup("timeout"))
	bindFlag("http.max_retries", fetchCmd.Flags().Lookup("retries"))

	rootCmd.AddCommand(fetchCmd)
}
