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

package directory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

// Querier is the subset of pgxpool.Pool used here.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CNPG reads the directory tables from Postgres.
type CNPG struct {
	db      Querier
	closeFn func()
	logger  logger.Logger
}

// NewCNPG wraps a pool. closeFn, when set, is called by Close.
func NewCNPG(db Querier, closeFn func(), log logger.Logger) *CNPG {
	return &CNPG{db: db, closeFn: closeFn, logger: log}
}

func (c *CNPG) Device(ctx context.Context, name string) (*models.DeviceRecord, error) {
	rows, err := c.db.Query(ctx, fmt.Sprintf(deviceQuery, "$1"), name)
	if err != nil {
		return nil, fmt.Errorf("cnpg device %s: %w", name, err)
	}
	defer rows.Close()

	record, err := collectDevice(rows, name)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("device", name).Int("oidsets", len(record.OIDSets)).Msg("Resolved device from cnpg")

	return record, nil
}

func (c *CNPG) Close() error {
	if c.closeFn != nil {
		c.closeFn()
	}

	return nil
}
