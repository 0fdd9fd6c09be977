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

package tsdb

import (
	"context"
	"fmt"
)

// DryRunEngine stands in for the real engine when no queries may be issued.
// Describe still works through Source; any query is refused.
type DryRunEngine struct{}

func (DryRunEngine) QueryBaseRateTimerange(_ context.Context, q BaseRateQuery) (*BaseRateResult, error) {
	return nil, fmt.Errorf("%w: %s", errDryRun, q)
}
