// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/growth-tables/pkg/types"
)

func TestSummarize(t *testing.T) {
	rec := sampleRecord()
	rec.Boy.Append(216, [9]float64{160, 163, 166, 170, 173.4, 177, 180, 184, 188})
	rec.Boy.Append(24, [9]float64{80, 81, 82, 83, 84, 85, 86, 87, 88})

	sums := Summarize(rec)
	require.Len(t, sums, 2)

	boy := sums[0]
	assert.Equal(t, types.GenderBoy, boy.Gender)
	assert.Equal(t, 4, boy.Points)
	assert.Equal(t, 0, boy.MinAge)
	assert.Equal(t, 216, boy.MaxAge)
	assert.InDelta(t, 18.0, boy.MaxYears(), 1e-9)
	assert.Equal(t, 84.0, boy.FinalP50)
	assert.Equal(t, []int{0, 1, 216}, boy.FirstAges)
	assert.Equal(t, []float64{50, 54.5, 173.4}, boy.FirstP50)

	girl := sums[1]
	assert.Equal(t, types.GenderGirl, girl.Gender)
	assert.Equal(t, 2, girl.Points)
	assert.Equal(t, []int{0, 1}, girl.FirstAges)
	assert.Equal(t, 53.5, girl.FinalP50)
}

func TestPrintSummary(t *testing.T) {
	var b strings.Builder
	PrintSummary(&b, sampleRecord())
	out := b.String()

	assert.Contains(t, out, "Boys:")
	assert.Contains(t, out, "Girls:")
	assert.Contains(t, out, "data points:   2")
	assert.Contains(t, out, "0 to 1 months (0.0 to 0.1 years)")
	assert.Contains(t, out, "final p50:     54.5 cm")
}

func TestPrintSummary_Empty(t *testing.T) {
	var b strings.Builder
	assert.NotPanics(t, func() { PrintSummary(&b, &types.GrowthRecord{}) })
	assert.Equal(t, 2, strings.Count(b.String(), "no data points"))
}
