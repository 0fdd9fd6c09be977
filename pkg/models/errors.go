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

import "errors"

var (
	// ErrConfiguration marks a fatal run configuration problem, such as a
	// begin time supplied without an end time.
	ErrConfiguration = errors.New("configuration error")
	// ErrUnknownDevice is returned when the directory has no such device.
	ErrUnknownDevice = errors.New("unknown device")
	// ErrUnknownOIDSet is returned when a device lacks the requested polling group.
	ErrUnknownOIDSet = errors.New("unknown oidset")
	// ErrNoData is returned when the legacy store has nothing for a direction (HTTP 404).
	ErrNoData = errors.New("no data")
	// ErrTransport wraps network failures and unexpected responses from either backend.
	ErrTransport = errors.New("transport error")

	errInvalidDuration = errors.New("invalid duration")
)
