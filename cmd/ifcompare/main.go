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

// Command ifcompare reconciles interface counters held by the legacy REST
// store against the new time-series store for a list of devices.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/ifcompare/pkg/config"
	"github.com/carverauto/ifcompare/pkg/db"
	"github.com/carverauto/ifcompare/pkg/directory"
	"github.com/carverauto/ifcompare/pkg/legacy"
	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
	"github.com/carverauto/ifcompare/pkg/reconcile"
	"github.com/carverauto/ifcompare/pkg/report"
	"github.com/carverauto/ifcompare/pkg/tsdb"
	"github.com/carverauto/ifcompare/pkg/version"
)

const (
	exitOK     = 0
	exitConfig = 1

	shutdownTimeout = 5 * time.Second
)

var (
	errNoDevices        = fmt.Errorf("%w: at least one device is required", models.ErrConfiguration)
	errNewStoreRequired = fmt.Errorf("%w: new_store.cnpg is required unless -n is given", models.ErrConfiguration)
)

type cliOptions struct {
	debug       bool
	dryRun      bool
	showVersion bool
	begin       int64
	end         int64
	last        int64
	workers     int
	configPath  string
	envPath     string
	format      string
	devices     []string
	set         map[string]bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()

	os.Exit(code)
}

// run returns the process exit code. Only configuration and startup
// failures are non-zero; per-device problems are reported, not fatal.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "ifcompare: %v\n", err)
		return exitConfig
	}

	if opts.showVersion {
		_, _ = fmt.Fprintf(stdout, "ifcompare %s\n", version.GetFullVersion())
		return exitOK
	}

	if err := execute(ctx, opts, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "ifcompare: %v\n", err)
		return exitConfig
	}

	return exitOK
}

func parseArgs(args []string, stderr io.Writer) (*cliOptions, error) {
	opts := &cliOptions{set: make(map[string]bool)}

	fs := flag.NewFlagSet("ifcompare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: ifcompare [flags] device [device...]\n")
		fs.PrintDefaults()
	}

	fs.BoolVar(&opts.debug, "D", false, "Debug: verbose logging and the new store's raw result in the report")
	fs.BoolVar(&opts.dryRun, "n", false, "Dry run: show what would be requested without calling either store")
	fs.Int64Var(&opts.begin, "b", 0, "Window begin (unix seconds); requires -e")
	fs.Int64Var(&opts.begin, "begin", 0, "Same as -b")
	fs.Int64Var(&opts.end, "e", 0, "Window end (unix seconds); requires -b")
	fs.Int64Var(&opts.end, "end", 0, "Same as -e")
	fs.Int64Var(&opts.last, "l", 0, "Window length in seconds ending now, when -b/-e are absent (default 3600)")
	fs.Int64Var(&opts.last, "last", 0, "Same as -l")
	fs.IntVar(&opts.workers, "workers", 0, "Devices reconciled concurrently (default from config, 1)")
	fs.StringVar(&opts.configPath, "config", "", "Path to JSON config file")
	fs.StringVar(&opts.envPath, "env", "", "Path to .env file (default .env when present)")
	fs.StringVar(&opts.format, "format", "", "Report format: text or json (default from config, text)")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	opts.devices = fs.Args()

	return opts, nil
}

// bounds returns the explicitly given window bounds, nil where absent.
func (o *cliOptions) bounds() (begin, end *int64) {
	if o.set["b"] || o.set["begin"] {
		begin = &o.begin
	}

	if o.set["e"] || o.set["end"] {
		end = &o.end
	}

	return begin, end
}

func (o *cliOptions) apply(cfg *models.Config) error {
	if o.workers > 0 {
		cfg.Workers = o.workers
	}

	if o.format != "" {
		cfg.Report.Format = o.format
	}

	if o.set["l"] || o.set["last"] {
		cfg.Last = o.last
	}

	if cfg.Logging == nil {
		cfg.Logging = logger.DefaultConfig()
	}

	if o.debug {
		cfg.Logging.Debug = true
	}

	return cfg.Validate()
}

func execute(ctx context.Context, opts *cliOptions, stdout io.Writer) error {
	cfg, err := config.NewLoader(nil).Load(ctx, opts.configPath, opts.envPath)
	if err != nil {
		return err
	}

	if err = opts.apply(cfg); err != nil {
		return err
	}

	begin, end := opts.bounds()

	window, err := reconcile.ResolveWindow(begin, end, cfg.Last, time.Now())
	if err != nil {
		return err
	}

	if len(opts.devices) == 0 {
		return errNoDevices
	}

	if !opts.dryRun && cfg.NewStore.CNPG == nil {
		return errNewStoreRequired
	}

	log, err := logger.CreateComponentLogger("ifcompare", cfg.Logging)
	if err != nil {
		return fmt.Errorf("%w: logging: %w", models.ErrConfiguration, err)
	}

	if cfg.Tracing != nil && cfg.Tracing.Enabled {
		tp, err := logger.InitializeTracing(ctx, logger.TracingConfig{
			ServiceName:    "ifcompare",
			ServiceVersion: version.GetVersion(),
			Endpoint:       cfg.Tracing.Endpoint,
			Insecure:       cfg.Tracing.Insecure,
			Headers:        cfg.Tracing.Headers,
			Logger:         log,
		})
		if err != nil {
			return fmt.Errorf("%w: tracing: %w", models.ErrConfiguration, err)
		}

		defer shutdownTracing(tp.Shutdown, log)
	}

	deps, cleanup, err := buildDependencies(ctx, cfg, opts, stdout, log)
	defer cleanup()

	if err != nil {
		return err
	}

	driver, err := reconcile.NewDriver(deps, reconcile.Options{
		OIDSet:  cfg.OIDSet,
		Workers: cfg.Workers,
		DryRun:  opts.dryRun,
	}, log)
	if err != nil {
		return err
	}

	_, err = driver.Run(ctx, opts.devices, window)

	return err
}

// buildDependencies wires the backends. cleanup is always safe to call.
func buildDependencies(
	ctx context.Context, cfg *models.Config, opts *cliOptions, stdout io.Writer, log logger.Logger,
) (reconcile.Dependencies, func(), error) {
	var closers []func()

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	dir, err := directory.New(ctx, &cfg.Directory, log)
	if err != nil {
		return reconcile.Dependencies{}, cleanup, fmt.Errorf("%w: directory: %w", models.ErrConfiguration, err)
	}

	closers = append(closers, func() {
		if err := dir.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close directory")
		}
	})

	client, err := legacy.NewClient(&cfg.Legacy, nil, log)
	if err != nil {
		return reconcile.Dependencies{}, cleanup, fmt.Errorf("%w: legacy: %w", models.ErrConfiguration, err)
	}

	var engine tsdb.Engine = tsdb.DryRunEngine{}

	if !opts.dryRun {
		pool, err := db.NewCNPGPool(ctx, cfg.NewStore.CNPG, log)
		if err != nil {
			return reconcile.Dependencies{}, cleanup, fmt.Errorf("%w: new store: %w", models.ErrConfiguration, err)
		}

		closers = append(closers, pool.Close)
		engine = tsdb.NewCNPGEngine(pool, cfg.NewStore.Table, log)
	}

	reporter, err := report.New(cfg.Report.Format, stdout, opts.debug)
	if err != nil {
		return reconcile.Dependencies{}, cleanup, fmt.Errorf("%w: %w", models.ErrConfiguration, err)
	}

	if cfg.Report.NATS != nil && !opts.dryRun {
		nc, err := report.ConnectNATS(cfg.Report.NATS, log)
		if err != nil {
			return reconcile.Dependencies{}, cleanup, fmt.Errorf("%w: nats: %w", models.ErrConfiguration, err)
		}

		closers = append(closers, func() {
			if err := nc.Drain(); err != nil {
				log.Warn().Err(err).Msg("Failed to drain NATS connection")
			}
		})

		published, err := report.NewNATS(ctx, nc, cfg.Report.NATS, opts.debug, log)
		if err != nil {
			return reconcile.Dependencies{}, cleanup, fmt.Errorf("%w: nats: %w", models.ErrConfiguration, err)
		}

		reporter = report.Multi{reporter, published}
	}

	return reconcile.Dependencies{
		Directory:  dir,
		Interfaces: client,
		Legacy:     client,
		NewStore:   tsdb.NewSource(engine, cfg.NewStore.CF, log),
		Reporter:   reporter,
	}, cleanup, nil
}

func shutdownTracing(shutdown func(context.Context) error, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to flush traces")
	}
}
