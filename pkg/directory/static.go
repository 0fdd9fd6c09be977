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
	"fmt"

	"github.com/carverauto/ifcompare/pkg/models"
)

// Static serves devices listed in the configuration file.
type Static struct {
	devices map[string]models.DeviceRecord
}

// NewStatic indexes devices by name. Later duplicates win.
func NewStatic(devices []models.DeviceRecord) *Static {
	s := &Static{devices: make(map[string]models.DeviceRecord, len(devices))}
	for _, d := range devices {
		s.devices[d.Name] = d
	}

	return s
}

func (s *Static) Device(_ context.Context, name string) (*models.DeviceRecord, error) {
	d, ok := s.devices[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownDevice, name)
	}

	out := d
	out.OIDSets = append([]models.OIDSet(nil), d.OIDSets...)

	return &out, nil
}

func (*Static) Close() error { return nil }
