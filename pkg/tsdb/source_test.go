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

package tsdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

type recordingEngine struct {
	queries []BaseRateQuery
	result  *BaseRateResult
}

func (e *recordingEngine) QueryBaseRateTimerange(_ context.Context, q BaseRateQuery) (*BaseRateResult, error) {
	e.queries = append(e.queries, q)
	return e.result, nil
}

func TestSourceFetchSeries(t *testing.T) {
	v := 8.0
	engine := &recordingEngine{result: &BaseRateResult{
		Points: []RatePoint{{TS: 1000000, Value: &v}},
		JSON:   []byte(`{"data":[{"ts":1000000,"val":8}]}`),
	}}
	src := NewSource(engine, "", logger.NewTestLogger())

	series, err := src.FetchSeries(context.Background(), &models.SeriesRequest{
		Device:    "r1",
		OIDSet:    "FastPollHC",
		Counter:   models.CounterOutOctets,
		Interface: "xe-0",
		Direction: models.DirectionOut,
		Frequency: 30,
		Window:    models.Window{Begin: 1000, End: 4000},
	})
	require.NoError(t, err)

	require.Len(t, engine.queries, 1)
	q := engine.queries[0]
	assert.Equal(t, int64(30000), q.Freq)
	assert.Equal(t, int64(1000000), q.TSMin)
	assert.Equal(t, int64(4000000), q.TSMax)
	assert.Equal(t, "average", q.CF)

	assert.Equal(t, SourceName, series.Source)
	require.Len(t, series.Points, 1)
	assert.Equal(t, int64(1000), series.Points[0].Timestamp)
	assert.JSONEq(t, `{"data":[{"ts":1000000,"val":8}]}`, string(series.Raw))
}

func TestSourceDoesNotQueryInvalidWindow(t *testing.T) {
	engine := &recordingEngine{}
	src := NewSource(engine, "max", logger.NewTestLogger())

	_, err := src.FetchSeries(context.Background(), &models.SeriesRequest{
		Frequency: 30,
		Window:    models.Window{Begin: 4000, End: 1000},
	})
	require.Error(t, err)
	assert.Empty(t, engine.queries)
}

func TestDryRunEngineRefusesQueries(t *testing.T) {
	src := NewSource(DryRunEngine{}, "", logger.NewTestLogger())

	req := &models.SeriesRequest{
		Device:    "r1",
		OIDSet:    "FastPollHC",
		Counter:   models.CounterInOctets,
		Interface: "xe-0",
		Direction: models.DirectionIn,
		Frequency: 30,
		Window:    models.Window{Begin: 1000, End: 4000},
	}
	assert.Contains(t, src.Describe(req), "freq=30000 ts_min=1000000 ts_max=4000000 cf=average")

	_, err := src.FetchSeries(context.Background(), req)
	require.ErrorIs(t, err, errDryRun)
}
