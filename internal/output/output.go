// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output serializes a GrowthRecord for the charting application.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/growth-tables/internal/fsutil"
	"github.com/pdiddy/growth-tables/pkg/types"
)

// Encode writes rec to w in the given format. JSON is compact.
func Encode(w io.Writer, rec *types.GrowthRecord, format types.OutputFormat, jsVar string) error {
	switch format {
	case types.FormatJSON, "":
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = w.Write(data)
		return err
	case types.FormatYAML:
		data, err := yaml.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case types.FormatJS:
		return WriteJS(w, rec, JSOptions{Var: jsVar, Export: true})
	default:
		return fmt.Errorf("unsupported format %q: use json, yaml, or js", format)
	}
}

// WriteFile encodes rec into path, creating parent directories. The previous
// file, if any, is replaced only once encoding has succeeded.
func WriteFile(path string, rec *types.GrowthRecord, format types.OutputFormat, jsVar string) error {
	if rec == nil {
		return fmt.Errorf("no data to save")
	}
	if err := fsutil.WriteAtomic(path, func(w io.Writer) error {
		return Encode(w, rec, format, jsVar)
	}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes rec to path as compact JSON.
func WriteJSON(path string, rec *types.GrowthRecord) error {
	return WriteFile(path, rec, types.FormatJSON, "")
}

// WriteYAML writes rec to path as YAML.
func WriteYAML(path string, rec *types.GrowthRecord) error {
	return WriteFile(path, rec, types.FormatYAML, "")
}
