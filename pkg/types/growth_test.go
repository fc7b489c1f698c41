// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentiles_AppendAndAccess(t *testing.T) {
	var s GenderSeries
	s.Append(0, [9]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	s.Append(1, [9]float64{11, 12, 13, 14, 15, 16, 17, 18, 19})

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Aligned())
	assert.Equal(t, []float64{5, 15}, s.Percentiles.P50)
	assert.Equal(t, [9]float64{11, 12, 13, 14, 15, 16, 17, 18, 19}, s.Percentiles.At(1))

	all := s.Percentiles.All()
	require.Len(t, all, 9)
	for i, ns := range all {
		assert.Equal(t, PercentileKeys[i], ns.Key)
		assert.Equal(t, []float64{float64(i + 1), float64(i + 11)}, ns.Values)
	}

	v, ok := s.Percentiles.Series("p99_6")
	require.True(t, ok)
	assert.Equal(t, []float64{9, 19}, v)

	_, ok = s.Percentiles.Series("p100")
	assert.False(t, ok)
}

func TestGenderSeries_Aligned(t *testing.T) {
	var s GenderSeries
	assert.True(t, s.Aligned())

	s.Append(3, [9]float64{})
	s.Percentiles.P9 = nil
	assert.False(t, s.Aligned())
}

func TestGenderSeries_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(GenderSeries{})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"ages":[],"percentiles":{"p0_4":[],"p2":[],"p9":[],"p25":[],"p50":[],"p75":[],"p91":[],"p98":[],"p99_6":[]}}`,
		string(data))

	// Marshaling must not mutate the receiver.
	s := GenderSeries{}
	_, err = json.Marshal(&s)
	require.NoError(t, err)
	assert.Nil(t, s.Ages)
}

func TestGrowthRecord_Series(t *testing.T) {
	var rec GrowthRecord
	rec.Series(GenderBoy).Append(1, [9]float64{})
	assert.Equal(t, []int{1}, rec.Boy.Ages)
	assert.Empty(t, rec.Girl.Ages)
	assert.Nil(t, rec.Series(Gender("other")))
}

func TestPercentileLabelsCoverKeys(t *testing.T) {
	assert.Len(t, PercentileLabels, len(PercentileKeys))
	for _, k := range PercentileKeys {
		assert.NotEmpty(t, PercentileLabels[k], k)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"missing input", func(c *Config) { c.Input = "" }, "input path"},
		{"missing output", func(c *Config) { c.Output = "" }, "output path"},
		{"bad format", func(c *Config) { c.Format = "csv" }, "unsupported format"},
		{"empty js var", func(c *Config) { c.JSVar = "" }, "js_var"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
