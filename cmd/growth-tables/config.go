// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/growth-tables/pkg/types"
)

// bindFlag ties a viper key to a flag. Binding only fails for a nil flag,
// which is a programming error.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

// loadConfig overlays the values known to v on types.DefaultConfig and
// validates the result.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()

	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			if s := v.GetString(key); s != "" {
				*dst = s
			}
		}
	}

	setString("input", &cfg.Input)
	setString("output", &cfg.Output)
	setString("js_output", &cfg.JSOutput)
	setString("js_var", &cfg.JSVar)
	setString("http.source_url", &cfg.HTTP.SourceURL)
	setString("store.data_dir", &cfg.Store.DataDir)
	setString("store.dataset", &cfg.Store.Dataset)

	var format string
	setString("format", &format)
	if format != "" {
		cfg.Format = types.OutputFormat(format)
	}
	if v.IsSet("http.timeout") {
		cfg.HTTP.Timeout = v.GetDuration("http.timeout")
	}
	if v.IsSet("http.max_retries") {
		cfg.HTTP.MaxRetries = v.GetInt("http.max_retries")
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
