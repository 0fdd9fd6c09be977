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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const staticConfig = `{
  "legacy": {"base_url": "http://legacy.invalid/snmp"},
  "directory": {
    "driver": "static",
    "devices": [{"name": "r1", "oidsets": [{"name": "FastPollHC", "frequency": 30}]}]
  },
  "logging": {"level": "error"}
}`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ifcompare.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer

	code = run(context.Background(), args, &out, &errOut)

	return code, out.String(), errOut.String()
}

func TestRunWindowErrorsExitOne(t *testing.T) {
	cfg := writeConfig(t, staticConfig)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"begin only", []string{"-config", cfg, "-b", "1000", "r1"}, "must specify both begin and end"},
		{"end only", []string{"-config", cfg, "-end", "4000", "r1"}, "must specify both begin and end"},
		{"end before begin", []string{"-config", cfg, "-b", "4000", "-e", "1000", "r1"}, "must be after begin"},
		{"empty window", []string{"-config", cfg, "-b", "4000", "-e", "4000", "r1"}, "must be after begin"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tc.args...)
			assert.Equal(t, exitConfig, code)
			assert.Contains(t, stderr, tc.want)
			assert.Empty(t, stdout)
		})
	}
}

func TestRunConfigErrorsExitOne(t *testing.T) {
	code, _, stderr := runCLI(t, "-config", filepath.Join(t.TempDir(), "missing.json"), "r1")
	assert.Equal(t, exitConfig, code)
	assert.Contains(t, stderr, "configuration error")

	code, _, _ = runCLI(t, "-config", writeConfig(t, `{"legacy": {}}`), "r1")
	assert.Equal(t, exitConfig, code)

	code, _, stderr = runCLI(t, "-config", writeConfig(t, staticConfig))
	assert.Equal(t, exitConfig, code)
	assert.Contains(t, stderr, "at least one device")

	code, _, stderr = runCLI(t, "-config", writeConfig(t, staticConfig), "r1")
	assert.Equal(t, exitConfig, code)
	assert.Contains(t, stderr, "new_store.cnpg")

	code, _, _ = runCLI(t, "-bogus")
	assert.Equal(t, exitConfig, code)
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "-version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "ifcompare dev (build: dev)\n", stdout)
}

func TestRunDryRunSkipsUnknownDevice(t *testing.T) {
	cfg := writeConfig(t, staticConfig)

	code, stdout, stderr := runCLI(t, "-config", cfg, "-n", "-b", "1000", "-e", "4000", "ghost", "r1")
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "skipped ghost: unknown device")
	assert.Contains(t, stdout, "planned r1 * in")
	assert.Contains(t, stdout, "GET http://legacy.invalid/snmp/r1/interface/*/out?begin=1000&end=4000")
	assert.Contains(t, stdout, "devices=2 skipped_devices=1 ok=0 skipped=1 errors=0 planned=2")
}

func TestRunDryRunJSON(t *testing.T) {
	cfg := writeConfig(t, staticConfig)

	code, stdout, stderr := runCLI(t, "-config", cfg, "-n", "-l", "600", "-format", "json", "r1")
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, `"type":"summary"`)
	assert.Contains(t, stdout, `"status":"planned"`)
}

func TestParseArgsBounds(t *testing.T) {
	var stderr bytes.Buffer

	opts, err := parseArgs([]string{"-begin", "10", "-e", "20", "-D", "r1", "r2"}, &stderr)
	require.NoError(t, err)

	begin, end := opts.bounds()
	require.NotNil(t, begin)
	require.NotNil(t, end)
	assert.Equal(t, int64(10), *begin)
	assert.Equal(t, int64(20), *end)
	assert.True(t, opts.debug)
	assert.Equal(t, []string{"r1", "r2"}, opts.devices)

	opts, err = parseArgs([]string{"r1"}, &stderr)
	require.NoError(t, err)

	begin, end = opts.bounds()
	assert.Nil(t, begin)
	assert.Nil(t, end)
}
