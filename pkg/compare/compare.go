/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package compare lines up a legacy series against the new store's series.
package compare

import (
	"math"
	"sort"

	"github.com/carverauto/ifcompare/pkg/models"
)

// DefaultTolerance is the relative difference under which two values match.
const DefaultTolerance = 1e-6

// Row is one timestamp of the aligned series. A nil side had no value there.
type Row struct {
	Timestamp int64
	Legacy    *float64
	New       *float64
}

// Align merges both series by timestamp in ascending order. Gaps (nil
// values) are treated as absent.
func Align(legacy, current *models.Series) []Row {
	rows := make(map[int64]*Row)

	add := func(s *models.Series, set func(*Row, *float64)) {
		if s == nil {
			return
		}

		for _, p := range s.Points {
			if p.Value == nil {
				continue
			}

			r, ok := rows[p.Timestamp]
			if !ok {
				r = &Row{Timestamp: p.Timestamp}
				rows[p.Timestamp] = r
			}

			set(r, p.Value)
		}
	}

	add(legacy, func(r *Row, v *float64) { r.Legacy = v })
	add(current, func(r *Row, v *float64) { r.New = v })

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })

	return out
}

// Series summarises how closely current tracks legacy. A legacy payload
// that could not be parsed into points is reported as not comparable.
func Series(legacy, current *models.Series, tolerance float64) models.SeriesDiff {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	if legacy == nil || current == nil || legacy.Points == nil {
		return models.SeriesDiff{}
	}

	diff := models.SeriesDiff{Comparable: true}

	for _, r := range Align(legacy, current) {
		switch {
		case r.Legacy != nil && r.New != nil:
			diff.LegacyCount++
			diff.NewCount++

			delta := math.Abs(*r.Legacy - *r.New)
			if delta > diff.MaxAbsDelta {
				diff.MaxAbsDelta = delta
			}

			if withinTolerance(*r.Legacy, *r.New, tolerance) {
				diff.Matched++
			} else {
				diff.Mismatched++
			}
		case r.Legacy != nil:
			diff.LegacyCount++
			diff.LegacyOnly++
		default:
			diff.NewCount++
			diff.NewOnly++
		}
	}

	return diff
}

func withinTolerance(a, b, tolerance float64) bool {
	delta := math.Abs(a - b)
	if delta <= tolerance {
		return true
	}

	return delta <= tolerance*math.Max(math.Abs(a), math.Abs(b))
}
