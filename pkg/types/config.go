// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// OutputFormat selects the serialization of an extracted record.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatJS   OutputFormat = "js"
)

// Default paths match the layout the charting application expects.
const (
	DefaultInput   = "reference/HK-2020-StandardTables_v2.csv"
	DefaultOutput  = "data/hk2020-growth-data.json"
	DefaultJSVar   = "hk2020GrowthData"
	DefaultDataDir = "data"
	DefaultDataset = "hk2020"
)

// HTTPConfig holds settings for fetching the source table.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retries on 429/503 responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// SourceURL is where the published CSV is downloaded from.
	SourceURL string `json:"source_url" yaml:"source_url"`
}

// StoreConfig holds settings for the SQLite store.
type StoreConfig struct {
	// DataDir contains growth.db.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Dataset names the table set a record is stored under (e.g. "hk2020").
	Dataset string `json:"dataset" yaml:"dataset"`
}

// Config groups the settings of every command.
type Config struct {
	// Input is the source CSV path.
	Input string `json:"input" yaml:"input"`

	// Output is the primary artifact path.
	Output string `json:"output" yaml:"output"`

	// Format selects the primary artifact format.
	Format OutputFormat `json:"format" yaml:"format"`

	// JSOutput, when set, also writes the JavaScript literal snippet there.
	JSOutput string `json:"js_output,omitempty" yaml:"js_output,omitempty"`

	// JSVar is the variable name used by the JavaScript snippet.
	JSVar string `json:"js_var" yaml:"js_var"`

	HTTP  HTTPConfig  `json:"http" yaml:"http"`
	Store StoreConfig `json:"store" yaml:"store"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Input:  DefaultInput,
		Output: DefaultOutput,
		Format: FormatJSON,
		JSVar:  DefaultJSVar,
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 5,
		},
		Store: StoreConfig{
			DataDir: DefaultDataDir,
			Dataset: DefaultDataset,
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	switch c.Format {
	case FormatJSON, FormatYAML, FormatJS:
	default:
		return fmt.Errorf("unsupported format %q: use json, yaml, or js", c.Format)
	}
	if c.JSVar == "" {
		return fmt.Errorf("js_var must not be empty")
	}
	return nil
}
