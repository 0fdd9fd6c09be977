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
	"time"
)

// UnitStatus is the outcome of one unit of reconciliation work.
type UnitStatus string

const (
	StatusOK      UnitStatus = "ok"
	StatusSkipped UnitStatus = "skipped"
	StatusError   UnitStatus = "error"
	StatusPlanned UnitStatus = "planned"
)

// UnitResult records what happened to a device or a (device, interface,
// direction) unit. Interface and Direction are empty for device-level outcomes.
type UnitResult struct {
	Device    string     `json:"device"`
	Interface string     `json:"interface,omitempty"`
	Direction Direction  `json:"direction,omitempty"`
	Status    UnitStatus `json:"status"`
	Reason    string     `json:"reason,omitempty"`
	Err       error      `json:"-"`
}

// MarshalJSON adds Err's text as "error" so serialized summaries keep the
// cause alongside the reason.
func (r UnitResult) MarshalJSON() ([]byte, error) {
	type unitResult UnitResult

	out := struct {
		unitResult
		Error string `json:"error,omitempty"`
	}{unitResult: unitResult(r)}

	if r.Err != nil {
		out.Error = r.Err.Error()
	}

	return json.Marshal(out)
}

// SeriesDiff summarises how the legacy and new-store series line up.
type SeriesDiff struct {
	Comparable  bool    `json:"comparable"`
	LegacyCount int     `json:"legacy_count"`
	NewCount    int     `json:"new_count"`
	Matched     int     `json:"matched"`
	Mismatched  int     `json:"mismatched"`
	LegacyOnly  int     `json:"legacy_only"`
	NewOnly     int     `json:"new_only"`
	MaxAbsDelta float64 `json:"max_abs_delta"`
}

// Comparison is what gets emitted for each bundle.
type Comparison struct {
	RunID   string            `json:"run_id"`
	Bundle  *ComparisonBundle `json:"bundle"`
	Current *Series           `json:"new_store"`
	Diff    SeriesDiff        `json:"diff"`
}

// RunSummary collects every outcome of a reconciliation run.
type RunSummary struct {
	RunID     string       `json:"run_id"`
	Window    Window       `json:"window"`
	Devices   int          `json:"devices"`
	Results   []UnitResult `json:"results"`
	StartedAt time.Time    `json:"started_at"`
	Duration  Duration     `json:"duration"`
}

// Count returns the number of results with the given status.
func (s *RunSummary) Count(status UnitStatus) int {
	n := 0

	for i := range s.Results {
		if s.Results[i].Status == status {
			n++
		}
	}

	return n
}

// DeviceResults returns the results recorded for one device.
func (s *RunSummary) DeviceResults(device string) []UnitResult {
	var out []UnitResult

	for i := range s.Results {
		if s.Results[i].Device == device {
			out = append(out, s.Results[i])
		}
	}

	return out
}
