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

package reconcile

import (
	"context"

	"github.com/carverauto/ifcompare/pkg/models"
)

//go:generate mockgen -destination=mock_reconcile.go -package=reconcile github.com/carverauto/ifcompare/pkg/reconcile DeviceResolver,InterfaceLister,SeriesSource,Reporter

// DeviceResolver looks devices up in the directory.
type DeviceResolver interface {
	Device(ctx context.Context, name string) (*models.DeviceRecord, error)
}

// InterfaceLister enumerates a device's eligible interfaces.
type InterfaceLister interface {
	ListInterfaces(ctx context.Context, device string) ([]string, error)
}

// SeriesSource fetches one counter series for a path and window. The legacy
// REST store and the new time-series store both implement it.
type SeriesSource interface {
	Name() string
	FetchSeries(ctx context.Context, req *models.SeriesRequest) (*models.Series, error)
}

// Reporter receives comparisons in (device, interface, direction) order and
// the run summary at the end. Calls are never concurrent.
type Reporter interface {
	Report(ctx context.Context, c *models.Comparison) error
	Summary(ctx context.Context, s *models.RunSummary) error
}

// describer is implemented by sources that can render a request for dry runs.
type describer interface {
	Describe(req *models.SeriesRequest) string
}
