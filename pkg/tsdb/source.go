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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

// SourceName identifies new-store series in reports.
const SourceName = "new_store"

// Source exposes an Engine as a reconciliation series source.
type Source struct {
	engine Engine
	cf     string
	tracer trace.Tracer
	logger logger.Logger
}

// NewSource queries engine with the given consolidation function.
func NewSource(engine Engine, cf string, log logger.Logger) *Source {
	if cf == "" {
		cf = models.DefaultCF
	}

	return &Source{
		engine: engine,
		cf:     cf,
		tracer: logger.GetTracer("ifcompare/tsdb"),
		logger: log,
	}
}

// Name implements the reconciler's series source.
func (*Source) Name() string { return SourceName }

// Query returns the engine query that FetchSeries would issue for req.
func (s *Source) Query(req *models.SeriesRequest) (BaseRateQuery, error) {
	return NewBaseRateQuery(req, s.cf)
}

// FetchSeries queries the base rates covering req's window.
func (s *Source) FetchSeries(ctx context.Context, req *models.SeriesRequest) (*models.Series, error) {
	q, err := s.Query(req)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "tsdb.QueryBaseRateTimerange", trace.WithAttributes(
		attribute.StringSlice("path", q.Path),
		attribute.Int64("freq_ms", q.Freq),
		attribute.Int64("ts_min", q.TSMin),
		attribute.Int64("ts_max", q.TSMax),
		attribute.String("cf", q.CF),
	))
	defer span.End()

	res, err := s.engine.QueryBaseRateTimerange(ctx, q)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &models.Series{
		Source: SourceName,
		Raw:    res.JSON,
		Points: toPoints(res.Points),
	}, nil
}

// Describe renders the engine query FetchSeries would issue, for dry runs.
func (s *Source) Describe(req *models.SeriesRequest) string {
	q, err := s.Query(req)
	if err != nil {
		return "invalid query: " + err.Error()
	}

	return "base rate " + q.String()
}
