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

package legacy

import "encoding/json"

// interfaceListResponse is the body of GET {base}/{device}/interface/.
type interfaceListResponse struct {
	Children []interfaceEntry `json:"children"`
}

type interfaceEntry struct {
	Name    string `json:"name"`
	URI     string `json:"uri"`
	IfAlias string `json:"ifAlias"`
}

// samplePayload is the part of a sample response this package understands.
// Everything else is carried through verbatim.
type samplePayload struct {
	Data [][]json.RawMessage `json:"data"`
}
