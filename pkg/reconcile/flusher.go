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

import "sync"

// orderedFlusher releases device outcomes in device-list order no matter
// which worker finishes first. flush is called under the lock, so reporters
// never see concurrent calls.
type orderedFlusher struct {
	mu       sync.Mutex
	next     int
	outcomes []*deviceOutcome
	flush    func(*deviceOutcome)
}

func newOrderedFlusher(n int, flush func(*deviceOutcome)) *orderedFlusher {
	return &orderedFlusher{outcomes: make([]*deviceOutcome, n), flush: flush}
}

func (f *orderedFlusher) complete(i int, o *deviceOutcome) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.outcomes[i] = o

	for f.next < len(f.outcomes) && f.outcomes[f.next] != nil {
		f.flush(f.outcomes[f.next])
		f.outcomes[f.next] = nil
		f.next++
	}
}
