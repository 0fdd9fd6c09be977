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

	"github.com/carverauto/ifcompare/pkg/models"
)

// Directory resolves device names to their polling configuration.
type Directory interface {
	// Device returns models.ErrUnknownDevice when name is not known.
	Device(ctx context.Context, name string) (*models.DeviceRecord, error)
	Close() error
}
