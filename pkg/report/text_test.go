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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextReport(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewText(&buf, false).Report(context.Background(), sampleComparison()))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, "r1 xe-0 ifHCInOctets 30", lines[0])
	assert.Equal(t, Separator, lines[len(lines)-1])
	assert.Contains(t, out, "legacy")
	assert.Contains(t, out, "new_store")
	assert.Contains(t, out, "1030")
	assert.Contains(t, out, "1060")
	assert.Contains(t, out, "matched=1 mismatched=0 legacy_only=1 new_only=1")
	assert.Contains(t, out, "legacy raw:")
	assert.Contains(t, out, `{"data":[[1000,10],[1030,20]]}`)
	assert.NotContains(t, out, "new_store raw:")
}

func TestTextReportDebugIncludesRaw(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewText(&buf, true).Report(context.Background(), sampleComparison()))

	out := buf.String()
	assert.Contains(t, out, "legacy raw:")
	assert.Contains(t, out, `{"data":[[1000,10],[1030,20]]}`)
	assert.Contains(t, out, "new_store raw:")
}

func TestTextReportPayloadWithoutData(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewText(&buf, false).Report(context.Background(), undecodableComparison()))

	out := buf.String()
	assert.Contains(t, out, "not comparable")
	assert.Contains(t, out, "legacy raw:")
	assert.Contains(t, out, undecodablePayload)
}

func TestTextSummary(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewText(&buf, false).Summary(context.Background(), sampleSummary()))

	out := buf.String()
	assert.Contains(t, out, "skipped r1 xe-0 out: no legacy data")
	assert.Contains(t, out, "skipped ghost: unknown device")
	assert.Contains(t, out, "run run-1 window=[1000,4000) devices=2 skipped_devices=1 ok=1 skipped=2 errors=0 planned=0 duration=1.5s")
	assert.NotContains(t, out, "ok r1")
}
