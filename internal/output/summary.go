// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pdiddy/growth-tables/pkg/types"
)

const sampleSize = 3

// GenderSummary describes one gender's series for a quick visual check.
type GenderSummary struct {
	Gender   types.Gender
	Points   int
	MinAge   int
	MaxAge   int
	FinalP50 float64

	// FirstAges and FirstP50 hold up to three leading entries.
	FirstAges []int
	FirstP50  []float64
}

// MinYears returns MinAge in years.
func (s GenderSummary) MinYears() float64 { return float64(s.MinAge) / 12 }

// MaxYears returns MaxAge in years.
func (s GenderSummary) MaxYears() float64 { return float64(s.MaxAge) / 12 }

// Summarize returns a summary per gender in types.Genders order.
func Summarize(rec *types.GrowthRecord) []GenderSummary {
	out := make([]GenderSummary, 0, len(types.Genders))
	for _, g := range types.Genders {
		s := rec.Series(g)
		sum := GenderSummary{Gender: g, Points: s.Len()}
		if sum.Points > 0 {
			sum.MinAge = slices.Min(s.Ages)
			sum.MaxAge = slices.Max(s.Ages)
			n := min(sampleSize, sum.Points)
			sum.FirstAges = slices.Clone(s.Ages[:n])
			if len(s.Percentiles.P50) >= n {
				sum.FirstP50 = slices.Clone(s.Percentiles.P50[:n])
			}
			if len(s.Percentiles.P50) > 0 {
				sum.FinalP50 = s.Percentiles.P50[len(s.Percentiles.P50)-1]
			}
		}
		out = append(out, sum)
	}
	return out
}

// PrintSummary writes the sample-data verification block for rec.
func PrintSummary(w io.Writer, rec *types.GrowthRecord) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "SAMPLE DATA")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	for _, s := range Summarize(rec) {
		fmt.Fprintf(w, "\n%ss:\n", titleCase(string(s.Gender)))
		if s.Points == 0 {
			fmt.Fprintln(w, "  no data points")
			continue
		}
		fmt.Fprintf(w, "  data points:   %d\n", s.Points)
		fmt.Fprintf(w, "  age range:     %d to %d months (%.1f to %.1f years)\n",
			s.MinAge, s.MaxAge, s.MinYears(), s.MaxYears())
		fmt.Fprintf(w, "  final p50:     %g cm\n", s.FinalP50)
		fmt.Fprintf(w, "  first ages:    %v months\n", s.FirstAges)
		fmt.Fprintf(w, "  first p50:     %v cm\n", s.FirstP50)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
