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

package models

import (
	"encoding/json"
	"fmt"
)

// Direction is the traffic direction of an interface counter.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Counter names as stored by both systems.
const (
	CounterInOctets  = "ifHCInOctets"
	CounterOutOctets = "ifHCOutOctets"
)

// Directions is the fixed processing order for each interface.
var Directions = []Direction{DirectionIn, DirectionOut}

// Counter returns the octet counter carried by the direction.
func (d Direction) Counter() string {
	if d == DirectionOut {
		return CounterOutOctets
	}

	return CounterInOctets
}

// Window is a time range in whole seconds since the epoch, [Begin, End).
type Window struct {
	Begin int64 `json:"begin"`
	End   int64 `json:"end"`
}

// Validate checks that the window is non-empty.
func (w Window) Validate() error {
	if w.End <= w.Begin {
		return fmt.Errorf("%w: end (%d) must be after begin (%d)", ErrConfiguration, w.End, w.Begin)
	}

	return nil
}

// SeriesRequest addresses one counter series on one interface over a window.
type SeriesRequest struct {
	Device    string    `json:"device"`
	OIDSet    string    `json:"oidset"`
	Counter   string    `json:"oid"`
	Frequency int64     `json:"frequency"` // seconds, from the device's own oidset
	Interface string    `json:"interface"`
	Direction Direction `json:"direction"`
	Window    Window    `json:"window"`
}

// Point is a single sample. A nil Value is a gap in the series.
type Point struct {
	Timestamp int64    `json:"ts"` // seconds
	Value     *float64 `json:"value"`
}

// Series is a fetched time series. Raw holds the backend payload verbatim.
type Series struct {
	Source string          `json:"source"`
	Raw    json.RawMessage `json:"raw,omitempty"`
	Points []Point         `json:"points"`
}

// ComparisonBundle is the per-interface, per-direction unit of comparison.
// It is built once from a legacy fetch and is not modified afterwards.
type ComparisonBundle struct {
	SeriesRequest
	Legacy *Series `json:"legacy"`
}

// NewComparisonBundle pairs a request with the legacy series fetched for it.
func NewComparisonBundle(req SeriesRequest, legacy *Series) *ComparisonBundle {
	return &ComparisonBundle{SeriesRequest: req, Legacy: legacy}
}
