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

// Package selector picks the secret provider for the runtime context.
//
// The provider is chosen once, when the Selector is created:
//
//	Development, Test -> local (process environment)
//	Azure             -> Azure Key Vault
//	anything else     -> Google Cloud Secret Manager
//
// Construction errors such as a missing project id or key vault URL are
// returned by New, never deferred to the first lookup.
package selector

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bank-vaults/secret-selector/pkg/common"
	"github.com/bank-vaults/secret-selector/pkg/environment"
	"github.com/bank-vaults/secret-selector/pkg/provider"
	"github.com/bank-vaults/secret-selector/pkg/provider/azure"
	"github.com/bank-vaults/secret-selector/pkg/provider/gcp"
	"github.com/bank-vaults/secret-selector/pkg/provider/local"
)

// Order matters: the first matching factory wins and gcp matches everything.
var factories = []provider.Factory{
	{
		ProviderType: local.ProviderType,
		Selects:      local.Selects,
		Create:       local.NewProvider,
	},
	{
		ProviderType: azure.ProviderType,
		Selects:      azure.Selects,
		Create:       azure.NewProvider,
	},
	{
		ProviderType: gcp.ProviderType,
		Selects:      gcp.Selects,
		Create:       gcp.NewProvider,
	},
}

type Selector struct {
	providerType string
	provider     provider.Provider

	closeOnce sync.Once
	closeErr  error
}

func New(ctx context.Context, cfg *common.Config) (*Selector, error) {
	factory, err := factoryFor(cfg.Environment)
	if err != nil {
		return nil, err
	}

	p, err := factory.Create(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider %s: %w", factory.ProviderType, err)
	}

	return &Selector{
		providerType: factory.ProviderType,
		provider:     p,
	}, nil
}

func factoryFor(env environment.Classification) (provider.Factory, error) {
	for _, factory := range factories {
		if factory.Selects(env) {
			return factory, nil
		}
	}

	return provider.Factory{}, fmt.Errorf("no provider for environment %s", env)
}

// GetSecret forwards the lookup to the selected provider as is.
func (s *Selector) GetSecret(ctx context.Context, secretID string) (string, error) {
	value, err := s.provider.GetSecret(ctx, secretID)
	secretRequests.WithLabelValues(s.providerType, resultLabel(err)).Inc()

	return value, err
}

func (s *Selector) ProviderType() string {
	return s.providerType
}

// Close releases the provider's client, if it holds one. Later calls
// return the first result without closing again.
func (s *Selector) Close() error {
	s.closeOnce.Do(func() {
		if closer, ok := s.provider.(io.Closer); ok {
			s.closeErr = closer.Close()
		}
	})

	return s.closeErr
}
