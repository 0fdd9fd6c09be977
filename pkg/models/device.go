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
	"fmt"
	"strings"
)

// OIDSet is a named group of counters polled together at one frequency.
type OIDSet struct {
	Name      string `json:"name"`
	Frequency int64  `json:"frequency"` // seconds
}

// DeviceRecord is the read-only directory view of a polled device.
type DeviceRecord struct {
	Name    string   `json:"name"`
	OIDSets []OIDSet `json:"oidsets"`
}

// OIDSet resolves a polling group by name on the device.
func (d *DeviceRecord) OIDSet(name string) (*OIDSet, error) {
	for i := range d.OIDSets {
		if d.OIDSets[i].Name == name {
			return &d.OIDSets[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s on device %s", ErrUnknownOIDSet, name, d.Name)
}

// InterfaceDescriptor is an interface as listed by the legacy store.
type InterfaceDescriptor struct {
	Device string `json:"device"`
	Name   string `json:"name"`
	Alias  string `json:"ifAlias"`
	URI    string `json:"uri"`
}

// ID returns the canonical interface identifier, the final segment of the URI.
func (i InterfaceDescriptor) ID() string {
	uri := strings.TrimRight(i.URI, "/")
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		return uri[idx+1:]
	}

	return uri
}
