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
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

type deviceRow struct {
	ID      uint
	Name    string
	OIDSets []oidsetRow `gorm:"many2many:device_oidsets;joinForeignKey:DeviceID;joinReferences:OidsetID"`
}

func (deviceRow) TableName() string { return "device" }

type oidsetRow struct {
	ID        uint
	Name      string
	Frequency int64
}

func (oidsetRow) TableName() string { return "oidset" }

// Gorm reads the directory through the ORM, matching the web application's
// own models.
type Gorm struct {
	db     *gorm.DB
	logger logger.Logger
}

// OpenMySQL connects to the application database.
func OpenMySQL(dsn string, log logger.Logger) (*Gorm, error) {
	return OpenGorm(mysql.Open(dsn), log)
}

// OpenGorm opens any gorm dialector.
func OpenGorm(dialector gorm.Dialector, log logger.Logger) (*Gorm, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm pool: %w", err)
	}

	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(4)

	return &Gorm{db: db, logger: log}, nil
}

func (g *Gorm) Device(ctx context.Context, name string) (*models.DeviceRecord, error) {
	var row deviceRow

	err := g.db.WithContext(ctx).
		Preload("OIDSets", func(tx *gorm.DB) *gorm.DB { return tx.Order("name") }).
		Where("name = ?", name).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownDevice, name)
	}

	if err != nil {
		return nil, fmt.Errorf("gorm device %s: %w", name, err)
	}

	g.logger.Debug().Str("device", name).Int("oidsets", len(row.OIDSets)).Msg("Resolved device from gorm")

	return row.record(), nil
}

func (r *deviceRow) record() *models.DeviceRecord {
	out := &models.DeviceRecord{Name: r.Name, OIDSets: make([]models.OIDSet, 0, len(r.OIDSets))}
	for _, o := range r.OIDSets {
		out.OIDSets = append(out.OIDSets, models.OIDSet{Name: o.Name, Frequency: o.Frequency})
	}

	return out
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
