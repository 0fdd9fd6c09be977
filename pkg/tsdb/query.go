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

// Package tsdb adapts reconciliation requests to the new time-series
// engine's base-rate query contract.
package tsdb

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/carverauto/ifcompare/pkg/models"
)

const msPerSecond = 1000

// BaseRateQuery is the new store's query contract. Every time field is in
// milliseconds.
type BaseRateQuery struct {
	Path   []string `json:"path"` // device, oidset, counter, interface
	Freq   int64    `json:"freq"`
	TSMin  int64    `json:"ts_min"`
	TSMax  int64    `json:"ts_max"`
	CF     string   `json:"cf"`
	AsJSON bool     `json:"as_json"`
}

// RatePoint is one aggregated base-rate bucket.
type RatePoint struct {
	TS    int64    `json:"ts"` // milliseconds
	Value *float64 `json:"val"`
}

// BaseRateResult is what the engine returns for a BaseRateQuery. JSON is only
// set when the query asked for serialized output.
type BaseRateResult struct {
	Path   []string        `json:"path"`
	Freq   int64           `json:"freq"`
	CF     string          `json:"cf"`
	Points []RatePoint     `json:"data"`
	JSON   json.RawMessage `json:"-"`
}

// NewBaseRateQuery is the single place where the reconciler's second-based
// units become the engine's millisecond units.
func NewBaseRateQuery(req *models.SeriesRequest, cf string) (BaseRateQuery, error) {
	if err := req.Window.Validate(); err != nil {
		return BaseRateQuery{}, err
	}

	if req.Frequency <= 0 {
		return BaseRateQuery{}, fmt.Errorf("%w: frequency %d for %s/%s", errBadFrequency,
			req.Frequency, req.Device, req.OIDSet)
	}

	return BaseRateQuery{
		Path:   []string{req.Device, req.OIDSet, req.Counter, req.Interface},
		Freq:   req.Frequency * msPerSecond,
		TSMin:  req.Window.Begin * msPerSecond,
		TSMax:  req.Window.End * msPerSecond,
		CF:     cf,
		AsJSON: true,
	}, nil
}

// String renders the query the way dry runs and logs show it.
func (q BaseRateQuery) String() string {
	return fmt.Sprintf("path=%s freq=%d ts_min=%d ts_max=%d cf=%s",
		strings.Join(q.Path, "/"), q.Freq, q.TSMin, q.TSMax, q.CF)
}

// toPoints converts engine buckets back to second-resolution points.
func toPoints(in []RatePoint) []models.Point {
	out := make([]models.Point, 0, len(in))
	for _, p := range in {
		out = append(out, models.Point{Timestamp: p.TS / msPerSecond, Value: p.Value})
	}

	return out
}
