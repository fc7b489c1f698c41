// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pdiddy/growth-tables/pkg/types"
)

// Point is one stored row: a gender's nine percentile heights at one age.
type Point struct {
	Gender    types.Gender `json:"gender" yaml:"gender"`
	Index     int          `json:"index" yaml:"index"`
	AgeMonths int          `json:"age_months" yaml:"age_months"`
	Values    [9]float64   `json:"values" yaml:"values"`
}

// Percentile returns the value for a types.PercentileKeys key.
func (p Point) Percentile(key string) (float64, bool) {
	for i, k := range types.PercentileKeys {
		if k == key {
			return p.Values[i], true
		}
	}
	return 0, false
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPoint(sc scanner) (Point, error) {
	var p Point
	var gender string
	v := &p.Values
	err := sc.Scan(&gender, &p.Index, &p.AgeMonths,
		&v[0], &v[1], &v[2], &v[3], &v[4], &v[5], &v[6], &v[7], &v[8])
	p.Gender = types.Gender(gender)
	return p, err
}

var pointSelect = `SELECT gender, idx, age_months, ` + percentileColumns + ` FROM growth_points`

// Load rebuilds the record stored under dataset, in original row order.
func (s *Store) Load(ctx context.Context, dataset string) (*types.GrowthRecord, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM datasets WHERE name = ?`, dataset,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking dataset: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("dataset %q: %w", dataset, ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		pointSelect+` WHERE dataset = ? ORDER BY gender, idx`, dataset)
	if err != nil {
		return nil, fmt.Errorf("querying points: %w", err)
	}
	defer rows.Close()

	rec := &types.GrowthRecord{}
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning point: %w", err)
		}
		series := rec.Series(p.Gender)
		if series == nil {
			return nil, fmt.Errorf("unknown gender %q in dataset %q", p.Gender, dataset)
		}
		series.Append(p.AgeMonths, p.Values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Lookup returns the first stored point for gender at ageMonths.
func (s *Store) Lookup(ctx context.Context, dataset string, gender types.Gender, ageMonths int) (Point, error) {
	row := s.db.QueryRowContext(ctx,
		pointSelect+` WHERE dataset = ? AND gender = ? AND age_months = ? ORDER BY idx LIMIT 1`,
		dataset, string(gender), ageMonths)

	p, err := scanPoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Point{}, fmt.Errorf("%s age %d in dataset %q: %w", gender, ageMonths, dataset, ErrNotFound)
	}
	if err != nil {
		return Point{}, fmt.Errorf("looking up %s age %d: %w", gender, ageMonths, err)
	}
	return p, nil
}
