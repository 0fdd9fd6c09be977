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
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

// aggregates maps consolidation function names to SQL over the value column.
var aggregates = map[string]string{
	"average": "avg(value)",
	"min":     "min(value)",
	"max":     "max(value)",
	"last":    "(array_agg(value ORDER BY ts_ms DESC))[1]",
}

// CNPGEngine answers base-rate queries from a Timescale table shaped as
// (device, oidset, oid, interface, ts_ms, value) holding per-second rates.
type CNPGEngine struct {
	db     Querier
	table  string
	logger logger.Logger
}

// NewCNPGEngine wraps a pool (or any Querier) reading from table.
func NewCNPGEngine(db Querier, table string, log logger.Logger) *CNPGEngine {
	if table == "" {
		table = models.DefaultBaseRateTable
	}

	return &CNPGEngine{db: db, table: table, logger: log}
}

// buildBaseRateSQL returns the statement and arguments for q.
func (e *CNPGEngine) buildBaseRateSQL(q BaseRateQuery) (string, []any, error) {
	agg, ok := aggregates[q.CF]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", errUnsupportedCF, q.CF)
	}

	if len(q.Path) != 4 {
		return "", nil, fmt.Errorf("%w: got %d elements", errBadPath, len(q.Path))
	}

	if q.Freq <= 0 {
		return "", nil, fmt.Errorf("%w: %d ms", errBadFrequency, q.Freq)
	}

	sql := fmt.Sprintf(`
SELECT (ts_ms / $5) * $5 AS bucket, %s AS value
FROM %s
WHERE device = $1
  AND oidset = $2
  AND oid = $3
  AND interface = $4
  AND ts_ms >= $6
  AND ts_ms < $7
GROUP BY bucket
ORDER BY bucket`, agg, pgx.Identifier{e.table}.Sanitize())

	args := []any{q.Path[0], q.Path[1], q.Path[2], q.Path[3], q.Freq, q.TSMin, q.TSMax}

	return sql, args, nil
}

// QueryBaseRateTimerange implements Engine.
func (e *CNPGEngine) QueryBaseRateTimerange(ctx context.Context, q BaseRateQuery) (*BaseRateResult, error) {
	sql, args, err := e.buildBaseRateSQL(q)
	if err != nil {
		return nil, err
	}

	rows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: cnpg base rate query %s: %w", models.ErrTransport, q, err)
	}
	defer rows.Close()

	result := &BaseRateResult{Path: q.Path, Freq: q.Freq, CF: q.CF, Points: []RatePoint{}}

	for rows.Next() {
		var p RatePoint
		if err := rows.Scan(&p.TS, &p.Value); err != nil {
			return nil, fmt.Errorf("%w: cnpg scan base rate: %w", models.ErrTransport, err)
		}

		result.Points = append(result.Points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: cnpg iterate base rate: %w", models.ErrTransport, err)
	}

	if q.AsJSON {
		result.JSON, err = json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("marshal base rate result: %w", err)
		}
	}

	e.logger.Debug().
		Str("query", q.String()).
		Int("buckets", len(result.Points)).
		Msg("Queried base rates")

	return result, nil
}
