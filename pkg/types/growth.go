// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// Gender selects one half of a GrowthRecord.
type Gender string

const (
	GenderBoy  Gender = "boy"
	GenderGirl Gender = "girl"
)

// Genders lists both genders in output order.
var Genders = []Gender{GenderBoy, GenderGirl}

// PercentileKeys lists the percentile series keys in declared order.
var PercentileKeys = []string{"p0_4", "p2", "p9", "p25", "p50", "p75", "p91", "p98", "p99_6"}

// PercentileLabels maps each percentile key to its ordinal label.
var PercentileLabels = map[string]string{
	"p0_4":  "0.4th",
	"p2":    "2nd",
	"p9":    "9th",
	"p25":   "25th",
	"p50":   "50th (median)",
	"p75":   "75th",
	"p91":   "91st",
	"p98":   "98th",
	"p99_6": "99.6th",
}

// Percentiles holds the nine height series (cm) of one gender. Every series
// is index-aligned with GenderSeries.Ages.
type Percentiles struct {
	P0_4  []float64 `json:"p0_4" yaml:"p0_4"`
	P2    []float64 `json:"p2" yaml:"p2"`
	P9    []float64 `json:"p9" yaml:"p9"`
	P25   []float64 `json:"p25" yaml:"p25"`
	P50   []float64 `json:"p50" yaml:"p50"`
	P75   []float64 `json:"p75" yaml:"p75"`
	P91   []float64 `json:"p91" yaml:"p91"`
	P98   []float64 `json:"p98" yaml:"p98"`
	P99_6 []float64 `json:"p99_6" yaml:"p99_6"`
}

// NamedSeries pairs a percentile key with its values.
type NamedSeries struct {
	Key    string
	Values []float64
}

// fields returns pointers to the nine series in PercentileKeys order.
func (p *Percentiles) fields() [9]*[]float64 {
	return [9]*[]float64{&p.P0_4, &p.P2, &p.P9, &p.P25, &p.P50, &p.P75, &p.P91, &p.P98, &p.P99_6}
}

// All returns the series in PercentileKeys order.
func (p Percentiles) All() []NamedSeries {
	out := make([]NamedSeries, len(PercentileKeys))
	for i, f := range p.fields() {
		out[i] = NamedSeries{Key: PercentileKeys[i], Values: *f}
	}
	return out
}

// Series returns the values for key. The bool is false for unknown keys.
func (p Percentiles) Series(key string) ([]float64, bool) {
	for i, k := range PercentileKeys {
		if k == key {
			return *p.fields()[i], true
		}
	}
	return nil, false
}

// Append adds one value to each series, in PercentileKeys order.
func (p *Percentiles) Append(values [9]float64) {
	for i, f := range p.fields() {
		*f = append(*f, values[i])
	}
}

// At returns the nine values at index i in PercentileKeys order.
func (p Percentiles) At(i int) [9]float64 {
	var out [9]float64
	for j, f := range p.fields() {
		out[j] = (*f)[i]
	}
	return out
}

// GenderSeries holds the per-age percentile heights for one gender.
type GenderSeries struct {
	// Ages are ages in months, one per accepted source row, in row order.
	Ages []int `json:"ages" yaml:"ages"`

	Percentiles Percentiles `json:"percentiles" yaml:"percentiles"`
}

// Append adds one data point.
func (s *GenderSeries) Append(age int, values [9]float64) {
	s.Ages = append(s.Ages, age)
	s.Percentiles.Append(values)
}

// Len returns the number of data points.
func (s GenderSeries) Len() int {
	return len(s.Ages)
}

// Aligned reports whether every percentile series has len(Ages) entries.
func (s GenderSeries) Aligned() bool {
	for _, ns := range s.Percentiles.All() {
		if len(ns.Values) != len(s.Ages) {
			return false
		}
	}
	return true
}

// MarshalJSON emits empty arrays rather than null for unset series so
// consumers always see all nine keys as arrays.
func (s GenderSeries) MarshalJSON() ([]byte, error) {
	type plain GenderSeries
	if s.Ages == nil {
		s.Ages = []int{}
	}
	for _, f := range s.Percentiles.fields() {
		if *f == nil {
			*f = []float64{}
		}
	}
	return json.Marshal(plain(s))
}

// GrowthRecord is the complete extracted table for both genders.
type GrowthRecord struct {
	Boy  GenderSeries `json:"boy" yaml:"boy"`
	Girl GenderSeries `json:"girl" yaml:"girl"`
}

// Series returns the series for g, or nil for an unknown gender.
func (r *GrowthRecord) Series(g Gender) *GenderSeries {
	switch g {
	case GenderBoy:
		return &r.Boy
	case GenderGirl:
		return &r.Girl
	}
	return nil
}
