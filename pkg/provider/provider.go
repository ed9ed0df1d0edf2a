// Copyright © 2023 Bank-Vaults Maintainers
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

package provider

import (
	"context"

	"github.com/bank-vaults/secret-selector/pkg/common"
	"github.com/bank-vaults/secret-selector/pkg/environment"
)

// Factory describes a provider and the runtime contexts it serves.
type Factory struct {
	ProviderType string
	Selects      func(env environment.Classification) bool
	Create       func(ctx context.Context, cfg *common.Config) (Provider, error)
}

// Provider retrieves secret values by identifier from a single backend.
type Provider interface {
	// GetSecret returns the latest value of the secret.
	// Failures wrap common.ErrNotFound or common.ErrAccess where the backend tells them apart.
	GetSecret(ctx context.Context, secretID string) (string, error)
}

// Secret holds a resolved environment assignment.
type Secret struct {
	Key   string
	Value string
}
