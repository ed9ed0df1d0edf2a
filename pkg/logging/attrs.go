// Copyright © 2025 Bank-Vaults Maintainers
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import "log/slog"

// flattenAttr calls add for every leaf of attr. Group keys are joined with
// "." and groups without a key are inlined.
func flattenAttr(prefix string, attr slog.Attr, add func(key string, value slog.Value)) {
	value := attr.Value.Resolve()

	if value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix += attr.Key + "."
		}

		for _, child := range value.Group() {
			flattenAttr(prefix, child, add)
		}

		return
	}

	if attr.Key == "" {
		return
	}

	add(prefix+attr.Key, value)
}
