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

package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/carverauto/ifcompare/pkg/models"
)

// Record types written by the JSON reporter.
const (
	RecordComparison = "comparison"
	RecordSummary    = "summary"
)

// JSONRecord is one line of JSON output.
type JSONRecord struct {
	Type       string             `json:"type"`
	Comparison *models.Comparison `json:"comparison,omitempty"`
	Summary    *models.RunSummary `json:"summary,omitempty"`
}

// JSON writes one JSONRecord per line.
type JSON struct {
	mu    sync.Mutex
	enc   *json.Encoder
	debug bool
}

func NewJSON(w io.Writer, debug bool) *JSON {
	return &JSON{enc: json.NewEncoder(w), debug: debug}
}

func (j *JSON) Report(_ context.Context, c *models.Comparison) error {
	if !j.debug {
		c = withoutCurrentRaw(c)
	}

	return j.write(JSONRecord{Type: RecordComparison, Comparison: c})
}

func (j *JSON) Summary(_ context.Context, s *models.RunSummary) error {
	return j.write(JSONRecord{Type: RecordSummary, Summary: s})
}

func (j *JSON) write(rec JSONRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.enc.Encode(rec); err != nil {
		return fmt.Errorf("writing %s record: %w", rec.Type, err)
	}

	return nil
}
