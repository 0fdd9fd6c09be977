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

// Package report emits comparisons and run summaries: a styled text view for
// operators, JSON lines for tooling and CloudEvents on NATS JetStream.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/carverauto/ifcompare/pkg/models"
)

// Reporter receives comparisons in order and one summary per run.
type Reporter interface {
	Report(ctx context.Context, c *models.Comparison) error
	Summary(ctx context.Context, s *models.RunSummary) error
}

// New builds the writer-backed reporter for format ("text" or "json").
// The legacy payload is always written verbatim; debug adds the new store's
// raw result.
func New(format string, w io.Writer, debug bool) (Reporter, error) {
	switch format {
	case "", "text":
		return NewText(w, debug), nil
	case "json":
		return NewJSON(w, debug), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// Multi fans every call out to each reporter. All reporters are called even
// when one fails.
type Multi []Reporter

func (m Multi) Report(ctx context.Context, c *models.Comparison) error {
	var errs []error

	for _, r := range m {
		if err := r.Report(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (m Multi) Summary(ctx context.Context, s *models.RunSummary) error {
	var errs []error

	for _, r := range m {
		if err := r.Summary(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// withoutCurrentRaw returns a copy of c without the new store's raw result.
// The legacy payload is kept: it is the only faithful view of the legacy
// series when its samples could not be parsed.
func withoutCurrentRaw(c *models.Comparison) *models.Comparison {
	out := *c
	out.Current = stripRaw(c.Current)

	return &out
}

func stripRaw(s *models.Series) *models.Series {
	if s == nil {
		return nil
	}

	out := *s
	out.Raw = nil

	return &out
}
