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

// Package reconcile drives a migration check: for each device it lists the
// legacy interfaces, fetches both directions from the legacy store and the
// same window from the new store, and hands the pair to a Reporter.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/carverauto/ifcompare/pkg/compare"
	"github.com/carverauto/ifcompare/pkg/logger"
	"github.com/carverauto/ifcompare/pkg/models"
)

var errMissingDependency = errors.New("reconcile: missing dependency")

// Dependencies are the collaborators a Driver orchestrates.
type Dependencies struct {
	Directory  DeviceResolver
	Interfaces InterfaceLister
	Legacy     SeriesSource
	NewStore   SeriesSource
	Reporter   Reporter
}

// Options tune a Driver.
type Options struct {
	OIDSet    string  // polling group compared on every device
	Workers   int     // devices processed concurrently
	DryRun    bool    // resolve devices and describe requests without calling either store
	Tolerance float64 // relative tolerance for matching values
}

// Driver runs reconciliations. It holds no per-run state, so one Driver can
// serve several runs.
type Driver struct {
	deps   Dependencies
	opts   Options
	logger logger.Logger
	tracer trace.Tracer
	now    func() time.Time
	runID  func() string
}

// NewDriver validates deps and applies option defaults.
func NewDriver(deps Dependencies, opts Options, log logger.Logger) (*Driver, error) {
	if deps.Directory == nil || deps.Interfaces == nil || deps.Legacy == nil ||
		deps.NewStore == nil || deps.Reporter == nil {
		return nil, errMissingDependency
	}

	if opts.OIDSet == "" {
		opts.OIDSet = models.DefaultOIDSet
	}

	if opts.Workers < 1 {
		opts.Workers = 1
	}

	if opts.Tolerance <= 0 {
		opts.Tolerance = compare.DefaultTolerance
	}

	return &Driver{
		deps:   deps,
		opts:   opts,
		logger: log,
		tracer: logger.GetTracer("ifcompare/reconcile"),
		now:    time.Now,
		runID:  func() string { return uuid.New().String() },
	}, nil
}

// run carries the values shared by every unit of one Run call.
type run struct {
	id     string
	window models.Window
}

// deviceOutcome buffers one device's results until it can be emitted in order.
type deviceOutcome struct {
	results     []models.UnitResult
	comparisons []*models.Comparison
}

func (o *deviceOutcome) add(r models.UnitResult) {
	o.results = append(o.results, r)
}

// Run reconciles devices over window. The only error it returns is a
// configuration error, raised before any backend is contacted; every other
// failure is recorded in the summary and the run continues.
func (d *Driver) Run(ctx context.Context, devices []string, window models.Window) (*models.RunSummary, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	r := &run{id: d.runID(), window: window}
	started := d.now()

	ctx, span := d.tracer.Start(ctx, "reconcile.Run", trace.WithAttributes(
		attribute.String("run_id", r.id),
		attribute.Int("devices", len(devices)),
		attribute.Int64("begin", window.Begin),
		attribute.Int64("end", window.End),
	))
	defer span.End()

	d.logger.Info().
		Str("run_id", r.id).
		Int64("begin", window.Begin).
		Int64("end", window.End).
		Int("devices", len(devices)).
		Int("workers", d.opts.Workers).
		Bool("dry_run", d.opts.DryRun).
		Msg("Starting reconciliation")

	summary := &models.RunSummary{
		RunID:     r.id,
		Window:    window,
		Devices:   len(devices),
		Results:   []models.UnitResult{},
		StartedAt: started,
	}

	flusher := newOrderedFlusher(len(devices), func(o *deviceOutcome) {
		d.emit(ctx, summary, o)
	})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)

	for i, name := range devices {
		g.Go(func() error {
			flusher.complete(i, d.processDevice(gctx, r, name))

			return nil
		})
	}

	_ = g.Wait()

	summary.Duration = models.Duration(d.now().Sub(started))

	if err := d.deps.Reporter.Summary(ctx, summary); err != nil {
		d.logger.Error().Err(err).Str("run_id", r.id).Msg("Failed to emit run summary")
	}

	d.logger.Info().
		Str("run_id", r.id).
		Int("ok", summary.Count(models.StatusOK)).
		Int("skipped", summary.Count(models.StatusSkipped)).
		Int("errors", summary.Count(models.StatusError)).
		Msg("Reconciliation finished")

	return summary, nil
}

func (d *Driver) emit(ctx context.Context, summary *models.RunSummary, o *deviceOutcome) {
	for _, c := range o.comparisons {
		if err := d.deps.Reporter.Report(ctx, c); err != nil {
			d.logger.Error().Err(err).
				Str("device", c.Bundle.Device).
				Str("interface", c.Bundle.Interface).
				Str("direction", string(c.Bundle.Direction)).
				Msg("Failed to emit comparison")
		}
	}

	summary.Results = append(summary.Results, o.results...)
}

func (d *Driver) processDevice(ctx context.Context, r *run, name string) *deviceOutcome {
	out := &deviceOutcome{}

	ctx, span := d.tracer.Start(ctx, "reconcile.device", trace.WithAttributes(attribute.String("device", name)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		out.add(models.UnitResult{Device: name, Status: models.StatusError, Reason: "run cancelled", Err: err})
		return out
	}

	log := d.logger.With().Str("run_id", r.id).Str("device", name).Logger()

	record, err := d.deps.Directory.Device(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrUnknownDevice) {
			log.Warn().Msg("Skipping unknown device")
			out.add(models.UnitResult{Device: name, Status: models.StatusSkipped, Reason: "unknown device", Err: err})

			return out
		}

		log.Error().Err(err).Msg("Directory lookup failed")
		out.add(models.UnitResult{Device: name, Status: models.StatusError, Reason: "directory lookup failed", Err: err})

		return out
	}

	oidset, err := record.OIDSet(d.opts.OIDSet)
	if err != nil {
		log.Warn().Str("oidset", d.opts.OIDSet).Msg("Skipping device without oidset")
		out.add(models.UnitResult{Device: name, Status: models.StatusSkipped,
			Reason: fmt.Sprintf("no oidset %s", d.opts.OIDSet), Err: err})

		return out
	}

	if d.opts.DryRun {
		d.plan(r, name, oidset, out)
		return out
	}

	ifaces, err := d.deps.Interfaces.ListInterfaces(ctx, name)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list legacy interfaces")
		out.add(models.UnitResult{Device: name, Status: models.StatusError, Reason: "interface listing failed", Err: err})

		return out
	}

	if len(ifaces) == 0 {
		log.Info().Msg("No eligible interfaces")
	}

	for _, iface := range ifaces {
		for _, dir := range models.Directions {
			req := models.SeriesRequest{
				Device:    name,
				OIDSet:    oidset.Name,
				Counter:   dir.Counter(),
				Frequency: oidset.Frequency,
				Interface: iface,
				Direction: dir,
				Window:    r.window,
			}

			d.processUnit(ctx, r, &req, out)
		}
	}

	return out
}

// processUnit handles one (device, interface, direction).
func (d *Driver) processUnit(ctx context.Context, r *run, req *models.SeriesRequest, out *deviceOutcome) {
	result := models.UnitResult{Device: req.Device, Interface: req.Interface, Direction: req.Direction}
	log := d.logger.With().
		Str("run_id", r.id).
		Str("device", req.Device).
		Str("interface", req.Interface).
		Str("direction", string(req.Direction)).
		Logger()

	if err := ctx.Err(); err != nil {
		result.Status, result.Reason, result.Err = models.StatusError, "run cancelled", err
		out.add(result)

		return
	}

	legacySeries, err := d.deps.Legacy.FetchSeries(ctx, req)
	switch {
	case errors.Is(err, models.ErrNoData):
		log.Info().Msg("Legacy store returned 404, skipping direction")

		result.Status, result.Reason, result.Err = models.StatusSkipped, "no legacy data", err
		out.add(result)

		return
	case err != nil:
		log.Error().Err(err).Msg("Legacy fetch failed")

		result.Status, result.Reason, result.Err = models.StatusError, "legacy fetch failed", err
		out.add(result)

		return
	}

	bundle := models.NewComparisonBundle(*req, legacySeries)

	current, err := d.deps.NewStore.FetchSeries(ctx, &bundle.SeriesRequest)
	if err != nil {
		log.Error().Err(err).Msg("New store query failed")

		result.Status, result.Reason, result.Err = models.StatusError, "new store query failed", err
		out.add(result)

		return
	}

	diff := compare.Series(bundle.Legacy, current, d.opts.Tolerance)

	log.Debug().
		Int("legacy_points", diff.LegacyCount).
		Int("new_points", diff.NewCount).
		Int("mismatched", diff.Mismatched).
		Msg("Compared series")

	out.comparisons = append(out.comparisons, &models.Comparison{
		RunID:   r.id,
		Bundle:  bundle,
		Current: current,
		Diff:    diff,
	})

	result.Status = models.StatusOK
	out.add(result)
}

// plan records what a real run would request for the device, one result per
// direction, without touching either store.
func (d *Driver) plan(r *run, name string, oidset *models.OIDSet, out *deviceOutcome) {
	for _, dir := range models.Directions {
		req := &models.SeriesRequest{
			Device:    name,
			OIDSet:    oidset.Name,
			Counter:   dir.Counter(),
			Frequency: oidset.Frequency,
			Interface: "*",
			Direction: dir,
			Window:    r.window,
		}

		reason := fmt.Sprintf("%s: %s | %s: %s",
			d.deps.Legacy.Name(), describe(d.deps.Legacy, req),
			d.deps.NewStore.Name(), describe(d.deps.NewStore, req))

		d.logger.Info().Str("run_id", r.id).Str("device", name).Str("plan", reason).Msg("Dry run")

		out.add(models.UnitResult{Device: name, Interface: "*", Direction: dir, Status: models.StatusPlanned, Reason: reason})
	}
}

func describe(src SeriesSource, req *models.SeriesRequest) string {
	if d, ok := src.(describer); ok {
		return d.Describe(req)
	}

	return fmt.Sprintf("%s/%s/%s/%s window=[%d,%d) freq=%ds",
		req.Device, req.OIDSet, req.Counter, req.Interface, req.Window.Begin, req.Window.End, req.Frequency)
}
