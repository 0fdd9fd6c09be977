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
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

const sampleConfig = `{
  "legacy": {"base_url": "http://snmp-west.example.net:8001/snmp", "timeout": "10s"},
  "new_store": {"cnpg": {"host": "tsdb", "database": "esmond"}},
  "directory": {
    "driver": "static",
    "devices": [{"name": "r1", "oidsets": [{"name": "FastPollHC", "frequency": 30}]}]
  },
  "workers": 4
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ifcompare.json", sampleConfig)

	cfg, err := NewLoader(logger.NewTestLogger()).Load(context.Background(), path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://snmp-west.example.net:8001/snmp", cfg.Legacy.BaseURL)
	assert.Equal(t, models.Duration(10_000_000_000), cfg.Legacy.Timeout)
	assert.Equal(t, 4, cfg.Workers)
	require.Len(t, cfg.Directory.Devices, 1)
	assert.Equal(t, int64(30), cfg.Directory.Devices[0].OIDSets[0].Frequency)
	assert.Equal(t, "FastPollHC", cfg.OIDSet)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ifcompare.json", sampleConfig)

	t.Setenv(EnvPrefix+"LEGACY_URL", "http://override/snmp")
	t.Setenv(EnvPrefix+"CNPG_PASSWORD", "s3cret")
	t.Setenv(EnvPrefix+"NATS_URL", "nats://bus:4222")

	cfg, err := NewLoader(nil).Load(context.Background(), path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://override/snmp", cfg.Legacy.BaseURL)
	assert.Equal(t, "s3cret", cfg.NewStore.CNPG.Password)
	require.NotNil(t, cfg.Report.NATS)
	assert.Equal(t, "nats://bus:4222", cfg.Report.NATS.URL)
	assert.Equal(t, models.DefaultNATSSubject, cfg.Report.NATS.Subject)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ifcompare.json", `{"directory": {"driver": "static"}}`)
	envPath := writeFile(t, dir, ".env", "IFCOMPARE_LEGACY_URL=http://from-dotenv/snmp\n")

	t.Setenv(EnvPrefix+"LEGACY_URL", "")
	require.NoError(t, os.Unsetenv(EnvPrefix+"LEGACY_URL"))

	cfg, err := NewLoader(nil).Load(context.Background(), path, envPath)
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv/snmp", cfg.Legacy.BaseURL)
}

func TestLoadErrorsAreConfigurationErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.env")

	_, err := NewLoader(nil).Load(context.Background(), filepath.Join(dir, "nope.json"), missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrConfiguration))

	bad := writeFile(t, dir, "bad.json", "{")
	_, err = NewLoader(nil).Load(context.Background(), bad, missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrConfiguration))

	t.Setenv(EnvPrefix+"WORKERS", "many")
	good := writeFile(t, dir, "good.json", sampleConfig)
	_, err = NewLoader(nil).Load(context.Background(), good, missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrConfiguration))
}
