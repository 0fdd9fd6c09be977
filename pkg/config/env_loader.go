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

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/carverauto/ifcompare/pkg/models"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "IFCOMPARE_"

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); err != nil {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides copies the supported IFCOMPARE_* variables onto cfg.
func applyEnvOverrides(cfg *models.Config) error {
	if v := os.Getenv(EnvPrefix + "LEGACY_URL"); v != "" {
		cfg.Legacy.BaseURL = v
	}

	if v := os.Getenv(EnvPrefix + "OIDSET"); v != "" {
		cfg.OIDSet = v
	}

	if v := os.Getenv(EnvPrefix + "WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sWORKERS=%q", models.ErrConfiguration, EnvPrefix, v)
		}

		cfg.Workers = n
	}

	if v := os.Getenv(EnvPrefix + "CNPG_PASSWORD"); v != "" {
		if cfg.NewStore.CNPG != nil {
			cfg.NewStore.CNPG.Password = v
		}

		if cfg.Directory.CNPG != nil {
			cfg.Directory.CNPG.Password = v
		}
	}

	if v := os.Getenv(EnvPrefix + "DIRECTORY_DSN"); v != "" {
		cfg.Directory.DSN = v
	}

	if v := os.Getenv(EnvPrefix + "NATS_URL"); v != "" {
		if cfg.Report.NATS == nil {
			cfg.Report.NATS = &models.NATSConfig{}
		}

		cfg.Report.NATS.URL = v
	}

	return nil
}
