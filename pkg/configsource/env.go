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

package configsource

import (
	"context"
	"os"
	"strings"

	"github.com/bank-vaults/secret-selector/pkg/dotenv"
)

// EnvSource copies the process environment into the table.
type EnvSource struct {
	// Optional skips loading when no .env file can be found.
	Optional bool

	discover func() (string, bool)
}

func NewEnvSource(optional bool) *EnvSource {
	return &EnvSource{
		Optional: optional,
		discover: dotenv.Discover,
	}
}

func (s *EnvSource) Load(_ context.Context, table *Table) error {
	if s.Optional {
		if _, ok := s.discover(); !ok {
			return nil
		}
	}

	for _, env := range os.Environ() {
		key, value, _ := strings.Cut(env, "=")
		table.set(key, value)
	}

	return nil
}
