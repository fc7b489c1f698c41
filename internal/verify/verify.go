// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify checks that a growth data artifact has the shape the
// charting application reads: both genders, non-empty ages, exactly the nine
// percentile keys, and series aligned with ages.
package verify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pdiddy/growth-tables/pkg/types"
)

// ErrInvalidArtifact reports a file that is not a JSON object.
var ErrInvalidArtifact = errors.New("invalid growth data artifact")

// GenderReport holds what was found for one gender.
type GenderReport struct {
	Gender     types.Gender
	Present    bool
	Points     int
	Categories int

	// FinalP50 is the p50 value at the last index of ages, valid when
	// HasFinalP50 is true.
	FinalP50    float64
	HasFinalP50 bool
	FinalAge    int
}

// Report is the outcome of verifying one artifact.
type Report struct {
	Genders  []GenderReport
	Problems []string
}

// OK reports whether no problems were found.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

type genderData struct {
	Ages        []int                `json:"ages"`
	Percentiles map[string][]float64 `json:"percentiles"`
}

// File verifies the artifact at path.
func File(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	report, err := Decode(f)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

// Decode verifies an artifact read from r. Schema problems are collected in
// the report; only undecodable input is an error.
func Decode(r io.Reader) (Report, error) {
	var top map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&top); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if top == nil {
		return Report{}, fmt.Errorf("%w: top level is null", ErrInvalidArtifact)
	}

	var report Report
	for key := range top {
		if key != string(types.GenderBoy) && key != string(types.GenderGirl) {
			report.Problems = append(report.Problems, fmt.Sprintf("unexpected top-level key %q", key))
		}
	}
	sort.Strings(report.Problems)

	for _, g := range types.Genders {
		gr := GenderReport{Gender: g}
		raw, ok := top[string(g)]
		if !ok {
			report.Problems = append(report.Problems, fmt.Sprintf("%s: missing", g))
			report.Genders = append(report.Genders, gr)
			continue
		}
		gr.Present = true

		var data genderData
		if err := json.Unmarshal(raw, &data); err != nil {
			report.Problems = append(report.Problems, fmt.Sprintf("%s: malformed: %v", g, err))
			report.Genders = append(report.Genders, gr)
			continue
		}

		gr.Points = len(data.Ages)
		gr.Categories = len(data.Percentiles)
		report.Problems = append(report.Problems, checkGender(g, data)...)

		if p50 := data.Percentiles["p50"]; gr.Points > 0 && len(p50) >= gr.Points {
			gr.FinalP50 = p50[gr.Points-1]
			gr.FinalAge = data.Ages[gr.Points-1]
			gr.HasFinalP50 = true
		}
		report.Genders = append(report.Genders, gr)
	}

	return report, nil
}

func checkGender(g types.Gender, data genderData) []string {
	var problems []string
	if len(data.Ages) == 0 {
		problems = append(problems, fmt.Sprintf("%s: ages is empty", g))
	}

	var missing, extra []string
	for _, key := range types.PercentileKeys {
		if _, ok := data.Percentiles[key]; !ok {
			missing = append(missing, key)
		}
	}
	for key := range data.Percentiles {
		if _, ok := types.PercentileLabels[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	if len(missing) > 0 {
		problems = append(problems, fmt.Sprintf("%s: missing percentiles %s", g, strings.Join(missing, ", ")))
	}
	if len(extra) > 0 {
		problems = append(problems, fmt.Sprintf("%s: unexpected percentiles %s", g, strings.Join(extra, ", ")))
	}

	for _, key := range types.PercentileKeys {
		values, ok := data.Percentiles[key]
		if ok && len(values) != len(data.Ages) {
			problems = append(problems, fmt.Sprintf("%s: %s has %d values for %d ages", g, key, len(values), len(data.Ages)))
		}
	}
	return problems
}

// Print writes the diagnostic printout for r.
func (r Report) Print(w io.Writer) {
	fmt.Fprintln(w, "Data structure:")
	for _, g := range r.Genders {
		fmt.Fprintf(w, "  %s ages: %d data points\n", g.Gender, g.Points)
	}
	for _, g := range r.Genders {
		fmt.Fprintf(w, "  %s percentiles: %d categories\n", g.Gender, g.Categories)
	}

	fmt.Fprintln(w, "\nSample values:")
	for _, g := range r.Genders {
		if g.HasFinalP50 {
			fmt.Fprintf(w, "  %s %dm p50: %g cm\n", g.Gender, g.FinalAge, g.FinalP50)
		} else {
			fmt.Fprintf(w, "  %s p50: unavailable\n", g.Gender)
		}
	}

	if r.OK() {
		fmt.Fprintln(w, "\nStructure: matches application format")
		return
	}
	fmt.Fprintln(w, "\nStructure: mismatch detected")
	fmt.Fprintf(w, "  expected percentiles: %s\n", strings.Join(types.PercentileKeys, ", "))
	for _, p := range r.Problems {
		fmt.Fprintf(w, "  - %s\n", p)
	}
}
