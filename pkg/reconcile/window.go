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
	"fmt"
	"time"

	"github.com/carverauto/ifcompare/pkg/models"
)

// ResolveWindow derives the run window. With neither bound given the window
// is the last `last` seconds before now. Supplying exactly one bound, or an
// end that is not after begin, is a configuration error.
func ResolveWindow(begin, end *int64, last int64, now time.Time) (models.Window, error) {
	switch {
	case begin == nil && end == nil:
		if last <= 0 {
			last = models.DefaultLastSeconds
		}

		e := now.Unix()

		return models.Window{Begin: e - last, End: e}, nil
	case begin == nil || end == nil:
		return models.Window{}, fmt.Errorf("%w: must specify both begin and end", models.ErrConfiguration)
	}

	w := models.Window{Begin: *begin, End: *end}
	if err := w.Validate(); err != nil {
		return models.Window{}, err
	}

	return w, nil
}
