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

// Package environment classifies the runtime context from the ENV variable.
package environment

import (
	"os"
	"strings"
)

// Variable is the environment variable holding the runtime indicator.
const Variable = "ENV"

// Classification is the resolved runtime context.
type Classification string

const (
	Development Classification = "Development"
	Test        Classification = "Test"
	GoogleCloud Classification = "GoogleCloud"
	Azure       Classification = "Azure"
	Production  Classification = "Production"
)

// Parse classifies value. Matching is case-insensitive and every value
// that is not a known context, including the empty string, is Production.
func Parse(value string) Classification {
	switch strings.ToLower(value) {
	case "development":
		return Development
	case "test":
		return Test
	case "googlecloud":
		return GoogleCloud
	case "azure":
		return Azure
	default:
		return Production
	}
}

// Classify reads ENV from the process environment.
func Classify() Classification {
	return Parse(os.Getenv(Variable))
}

// IsLocal reports whether secrets and logs stay on the local machine.
func (c Classification) IsLocal() bool {
	return c == Development || c == Test
}

func (c Classification) String() string {
	return string(c)
}
