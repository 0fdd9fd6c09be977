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

// Package directory is the read-only device/oidset lookup. Backends share the
// esmond table layout: device(id, name), oidset(id, name, frequency) and the
// device_oidsets(device_id, oidset_id) join table.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/carverauto/ifcompare/pkg/db"
	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

var errUnknownDriver = errors.New("unknown directory driver")

// New opens the directory selected by cfg.Driver.
func New(ctx context.Context, cfg *models.DirectoryConfig, log logger.Logger) (Directory, error) {
	switch cfg.Driver {
	case "", "static":
		return NewStatic(cfg.Devices), nil
	case "sqlite":
		return OpenSQLite(ctx, cfg.DSN, log)
	case "mysql":
		return OpenMySQL(cfg.DSN, log)
	case "cnpg":
		pool, err := db.NewCNPGPool(ctx, cfg.CNPG, log)
		if err != nil {
			return nil, err
		}

		return NewCNPG(pool, pool.Close, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownDriver, cfg.Driver)
	}
}

// deviceQuery lists a device's oidsets. Devices without oidsets return one
// row with NULL oidset columns; unknown devices return no rows.
const deviceQuery = `
SELECT d.name, o.name, o.frequency
FROM device d
LEFT JOIN device_oidsets dos ON dos.device_id = d.id
LEFT JOIN oidset o ON o.id = dos.oidset_id
WHERE d.name = %s
ORDER BY o.name`

// scanner is satisfied by both *sql.Rows and pgx.Rows.
type scanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectDevice(rows scanner, name string) (*models.DeviceRecord, error) {
	var record *models.DeviceRecord

	for rows.Next() {
		var (
			deviceName string
			oidsetName *string
			frequency  *int64
		)

		if err := rows.Scan(&deviceName, &oidsetName, &frequency); err != nil {
			return nil, fmt.Errorf("scan device %s: %w", name, err)
		}

		if record == nil {
			record = &models.DeviceRecord{Name: deviceName, OIDSets: []models.OIDSet{}}
		}

		if oidsetName == nil || frequency == nil {
			continue
		}

		record.OIDSets = append(record.OIDSets, models.OIDSet{Name: *oidsetName, Frequency: *frequency})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate device %s: %w", name, err)
	}

	if record == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownDevice, name)
	}

	return record, nil
}
