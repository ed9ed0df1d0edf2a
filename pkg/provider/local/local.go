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

package local

import (
	"context"
	"fmt"
	"os"

	"github.com/bank-vaults/secret-selector/pkg/common"
	"github.com/bank-vaults/secret-selector/pkg/environment"
	"github.com/bank-vaults/secret-selector/pkg/provider"
)

const ProviderType = "local"

// Provider reads secrets straight from the process environment.
type Provider struct{}

func NewProvider(_ context.Context, _ *common.Config) (provider.Provider, error) {
	return &Provider{}, nil
}

func (p *Provider) GetSecret(_ context.Context, secretID string) (string, error) {
	value, ok := os.LookupEnv(secretID)
	if !ok {
		return "", fmt.Errorf("%w: environment variable (%s) not found", common.ErrNotFound, secretID)
	}

	return value, nil
}

// Selects matches development and test contexts.
func Selects(env environment.Classification) bool {
	return env.IsLocal()
}
