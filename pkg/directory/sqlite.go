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
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

// SQLite reads an exported directory snapshot.
type SQLite struct {
	db     *sql.DB
	logger logger.Logger
}

// OpenSQLite opens the snapshot at dsn (a path or a file: URI) and pings it.
func OpenSQLite(ctx context.Context, dsn string, log logger.Logger) (*SQLite, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open %s: %w", dsn, err)
	}

	conn.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sqlite ping %s: %w", dsn, err)
	}

	return NewSQLite(conn, log), nil
}

// NewSQLite wraps an already opened database.
func NewSQLite(conn *sql.DB, log logger.Logger) *SQLite {
	return &SQLite{db: conn, logger: log}
}

func (s *SQLite) Device(ctx context.Context, name string) (*models.DeviceRecord, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(deviceQuery, "?"), name)
	if err != nil {
		return nil, fmt.Errorf("sqlite device %s: %w", name, err)
	}
	defer rows.Close()

	record, err := collectDevice(rows, name)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("device", name).Int("oidsets", len(record.OIDSets)).Msg("Resolved device from sqlite")

	return record, nil
}

func (s *SQLite) Close() error { return s.db.Close() }
