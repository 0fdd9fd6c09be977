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

// Package config loads the reconciler configuration from a JSON file, an
// optional .env file and IFCOMPARE_* environment variables, in that order.
package config

import (
	"context"
	"fmt"

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

// Loader assembles a models.Config.
type Loader struct {
	file   ConfigLoader
	logger logger.Logger
}

// NewLoader returns a Loader reading JSON files from disk.
func NewLoader(log logger.Logger) *Loader {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Loader{file: &FileConfigLoader{}, logger: log}
}

// Load reads path (if non-empty), applies environment overrides and
// validates the result. Every failure wraps models.ErrConfiguration.
func (l *Loader) Load(ctx context.Context, path, dotEnvPath string) (*models.Config, error) {
	if err := LoadDotEnv(dotEnvPath); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrConfiguration, err)
	}

	cfg := &models.Config{}

	if path != "" {
		if err := l.file.Load(ctx, path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrConfiguration, err)
		}

		l.logger.Debug().Str("path", path).Msg("Loaded configuration file")
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
