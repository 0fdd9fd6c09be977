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

package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidateDefaults(t *testing.T) {
	cfg := &Config{Legacy: LegacyConfig{BaseURL: "http://legacy:8001/snmp"}}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"lo0"}, cfg.Legacy.IgnorePrefixes)
	assert.Equal(t, DefaultLegacyTimeout, cfg.Legacy.Timeout)
	assert.Equal(t, "FastPollHC", cfg.OIDSet)
	assert.Equal(t, "average", cfg.NewStore.CF)
	assert.Equal(t, "base_rates", cfg.NewStore.Table)
	assert.Equal(t, int64(3600), cfg.Last)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "static", cfg.Directory.Driver)
	assert.Equal(t, "text", cfg.Report.Format)
}

func TestConfigValidateKeepsExplicitEmptyIgnoreList(t *testing.T) {
	cfg := &Config{Legacy: LegacyConfig{BaseURL: "http://legacy", IgnorePrefixes: []string{}}}

	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Legacy.IgnorePrefixes)
}

func TestConfigValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing legacy url", cfg: Config{}},
		{name: "unknown directory", cfg: Config{
			Legacy:    LegacyConfig{BaseURL: "http://legacy"},
			Directory: DirectoryConfig{Driver: "ldap"},
		}},
		{name: "sqlite without dsn", cfg: Config{
			Legacy:    LegacyConfig{BaseURL: "http://legacy"},
			Directory: DirectoryConfig{Driver: "sqlite"},
		}},
		{name: "cnpg without connection", cfg: Config{
			Legacy:    LegacyConfig{BaseURL: "http://legacy"},
			Directory: DirectoryConfig{Driver: "cnpg"},
		}},
		{name: "bad report format", cfg: Config{
			Legacy: LegacyConfig{BaseURL: "http://legacy"},
			Report: ReportConfig{Format: "xml"},
		}},
		{name: "nats without url", cfg: Config{
			Legacy: LegacyConfig{BaseURL: "http://legacy"},
			Report: ReportConfig{NATS: &NATSConfig{}},
		}},
		{name: "negative last", cfg: Config{
			Legacy: LegacyConfig{BaseURL: "http://legacy"},
			Last:   -5,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestDurationUnmarshal(t *testing.T) {
	var v struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a":"45s","b":1000}`), &v))
	assert.Equal(t, Duration(45*time.Second), v.A)
	assert.Equal(t, Duration(1000), v.B)

	require.Error(t, json.Unmarshal([]byte(`{"a":"soon"}`), &v))
	require.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}
