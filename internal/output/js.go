// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/growth-tables/pkg/types"
)

// JSOptions controls the JavaScript literal snippet.
type JSOptions struct {
	// Var is the constant name; types.DefaultJSVar when empty.
	Var string

	// Export prefixes the declaration with "export".
	Export bool
}

// WriteJS renders rec as a JavaScript constant with a data-point count per
// gender and the ordinal label of each percentile as trailing comments.
func WriteJS(w io.Writer, rec *types.GrowthRecord, opts JSOptions) error {
	name := opts.Var
	if name == "" {
		name = types.DefaultJSVar
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "// Hong Kong Growth Survey 2020-22 height percentiles (cm) by age in months.")
	if opts.Export {
		bw.WriteString("export ")
	}
	fmt.Fprintf(bw, "const %s = {\n", name)

	for i, g := range types.Genders {
		s := rec.Series(g)
		fmt.Fprintf(bw, "  %s: {\n", g)
		fmt.Fprintf(bw, "    // %d data points\n", s.Len())
		fmt.Fprintf(bw, "    ages: [%s],\n", joinInts(s.Ages))
		bw.WriteString("    percentiles: {\n")
		all := s.Percentiles.All()
		for j, ns := range all {
			sep := ","
			if j == len(all)-1 {
				sep = ""
			}
			fmt.Fprintf(bw, "      %s: [%s]%s // %s percentile\n",
				ns.Key, joinFloats(ns.Values), sep, types.PercentileLabels[ns.Key])
		}
		bw.WriteString("    }\n")
		if i == len(types.Genders)-1 {
			bw.WriteString("  }\n")
		} else {
			bw.WriteString("  },\n")
		}
	}
	bw.WriteString("};\n")
	return bw.Flush()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}
