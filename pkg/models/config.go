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
	"fmt"
	"time"

	"github.com/carverauto/ifcompare/pkg/logger"
)

// Duration is a time.Duration that reads "30s" style strings from JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d Duration) String() string { return time.Duration(d).String() }

const (
	DefaultOIDSet         = "FastPollHC"
	DefaultCF             = "average"
	DefaultLastSeconds    = 3600
	DefaultLegacyTimeout  = Duration(30 * time.Second)
	DefaultBaseRateTable  = "base_rates"
	DefaultNATSSubject    = "ifcompare.comparisons"
	DefaultNATSStream     = "IFCOMPARE"
	DefaultReportFormat   = "text"
	DefaultDirectoryStore = "static"
)

// DefaultIgnorePrefixes lists interface name prefixes never reconciled.
var DefaultIgnorePrefixes = []string{"lo0"}

// Config is the full process configuration handed to the reconciler.
type Config struct {
	Legacy    LegacyConfig    `json:"legacy"`
	NewStore  NewStoreConfig  `json:"new_store"`
	Directory DirectoryConfig `json:"directory"`
	Report    ReportConfig    `json:"report"`
	OIDSet    string          `json:"oidset"`
	Last      int64           `json:"last"`    // seconds
	Workers   int             `json:"workers"` // devices processed concurrently
	Logging   *logger.Config  `json:"logging"`
	Tracing   *TracingConfig  `json:"tracing,omitempty"`
}

// LegacyConfig points at the legacy REST store.
type LegacyConfig struct {
	BaseURL            string   `json:"base_url"`
	IgnorePrefixes     []string `json:"ignore_prefixes"`
	Timeout            Duration `json:"timeout"`
	InsecureSkipVerify bool     `json:"insecure_skip_verify"`
}

// NewStoreConfig points at the new time-series engine.
type NewStoreConfig struct {
	CNPG  *CNPGDatabase `json:"cnpg"`
	Table string        `json:"table"`
	CF    string        `json:"cf"`
}

// DirectoryConfig selects where device/oidset metadata is read from.
// Driver is one of static, sqlite, mysql or cnpg.
type DirectoryConfig struct {
	Driver  string         `json:"driver"`
	DSN     string         `json:"dsn,omitempty"`
	CNPG    *CNPGDatabase  `json:"cnpg,omitempty"`
	Devices []DeviceRecord `json:"devices,omitempty"`
}

// ReportConfig controls where comparisons are emitted.
type ReportConfig struct {
	Format string      `json:"format"` // text or json
	NATS   *NATSConfig `json:"nats,omitempty"`
}

// NATSConfig enables publishing comparisons to JetStream.
type NATSConfig struct {
	URL       string `json:"url"`
	Stream    string `json:"stream"`
	Subject   string `json:"subject"`
	CredsFile string `json:"creds_file,omitempty"`
}

// TracingConfig enables OTLP trace export.
type TracingConfig struct {
	Enabled  bool              `json:"enabled"`
	Endpoint string            `json:"endpoint"`
	Insecure bool              `json:"insecure"`
	Headers  map[string]string `json:"headers,omitempty"`
}

// CNPGDatabase describes a Postgres/Timescale connection.
type CNPGDatabase struct {
	Host               string            `json:"host"`
	Port               int               `json:"port"`
	Database           string            `json:"database"`
	Username           string            `json:"username"`
	Password           string            `json:"password,omitempty"`
	SSLMode            string            `json:"ssl_mode"`
	ApplicationName    string            `json:"application_name,omitempty"`
	MaxConnections     int32             `json:"max_connections,omitempty"`
	MinConnections     int32             `json:"min_connections,omitempty"`
	MaxConnLifetime    Duration          `json:"max_conn_lifetime,omitempty"`
	HealthCheckPeriod  Duration          `json:"health_check_period,omitempty"`
	StatementTimeout   Duration          `json:"statement_timeout,omitempty"`
	ExtraRuntimeParams map[string]string `json:"extra_runtime_params,omitempty"`
	TLS                *TLSConfig        `json:"tls,omitempty"`
	CertDir            string            `json:"cert_dir,omitempty"`
}

// TLSConfig holds client certificate paths, relative to CertDir when not absolute.
type TLSConfig struct {
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
	CAFile   string `json:"ca_file"`
}

var (
	errLegacyURLRequired   = fmt.Errorf("%w: legacy.base_url is required", ErrConfiguration)
	errUnknownDirectory    = fmt.Errorf("%w: unknown directory driver", ErrConfiguration)
	errDirectoryDSN        = fmt.Errorf("%w: directory.dsn is required", ErrConfiguration)
	errDirectoryCNPG       = fmt.Errorf("%w: directory.cnpg is required", ErrConfiguration)
	errUnknownReportFormat = fmt.Errorf("%w: unknown report format", ErrConfiguration)
	errNegativeLast        = fmt.Errorf("%w: last must be positive", ErrConfiguration)
	errNATSURLRequired     = fmt.Errorf("%w: report.nats.url is required", ErrConfiguration)
)

// Validate fills defaults and rejects configurations that cannot run.
func (c *Config) Validate() error {
	if c.Legacy.BaseURL == "" {
		return errLegacyURLRequired
	}

	if c.Legacy.IgnorePrefixes == nil {
		c.Legacy.IgnorePrefixes = append([]string(nil), DefaultIgnorePrefixes...)
	}

	if c.Legacy.Timeout <= 0 {
		c.Legacy.Timeout = DefaultLegacyTimeout
	}

	if c.NewStore.Table == "" {
		c.NewStore.Table = DefaultBaseRateTable
	}

	if c.NewStore.CF == "" {
		c.NewStore.CF = DefaultCF
	}

	if c.OIDSet == "" {
		c.OIDSet = DefaultOIDSet
	}

	if c.Last == 0 {
		c.Last = DefaultLastSeconds
	} else if c.Last < 0 {
		return errNegativeLast
	}

	if c.Workers < 1 {
		c.Workers = 1
	}

	if err := c.Directory.validate(); err != nil {
		return err
	}

	return c.Report.validate()
}

func (d *DirectoryConfig) validate() error {
	if d.Driver == "" {
		d.Driver = DefaultDirectoryStore
	}

	switch d.Driver {
	case "static":
		return nil
	case "sqlite", "mysql":
		if d.DSN == "" {
			return fmt.Errorf("%w for driver %s", errDirectoryDSN, d.Driver)
		}
	case "cnpg":
		if d.CNPG == nil {
			return errDirectoryCNPG
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownDirectory, d.Driver)
	}

	return nil
}

func (r *ReportConfig) validate() error {
	if r.Format == "" {
		r.Format = DefaultReportFormat
	}

	if r.Format != "text" && r.Format != "json" {
		return fmt.Errorf("%w: %q", errUnknownReportFormat, r.Format)
	}

	if r.NATS == nil {
		return nil
	}

	if r.NATS.URL == "" {
		return errNATSURLRequired
	}

	if r.NATS.Stream == "" {
		r.NATS.Stream = DefaultNATSStream
	}

	if r.NATS.Subject == "" {
		r.NATS.Subject = DefaultNATSSubject
	}

	return nil
}
