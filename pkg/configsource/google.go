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
	"fmt"
	"log/slog"

	"github.com/bank-vaults/secret-selector/pkg/provider/gcp"
)

type secretLister interface {
	ListSecrets(ctx context.Context) ([]string, error)
	AccessLatest(ctx context.Context, secretName string) (string, error)
	Close() error
}

// GoogleSource copies every secret of the Google Cloud project into the table.
type GoogleSource struct {
	// Optional swallows every error. The table is then left empty or
	// partially filled, and the two cases cannot be told apart.
	Optional bool

	open func(ctx context.Context) (secretLister, error)
}

func NewGoogleSource(optional bool) *GoogleSource {
	return &GoogleSource{
		Optional: optional,
		open:     openGoogle,
	}
}

func openGoogle(ctx context.Context) (secretLister, error) {
	config, err := googleConfig()
	if err != nil {
		return nil, err
	}

	p, err := gcp.New(ctx, config)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// googleConfig ignores CLOUD_RUN_REGION: every secret of the project is
// listed through the global endpoint, not only the regional ones.
func googleConfig() (*gcp.Config, error) {
	config, err := gcp.LoadConfig()
	if err != nil {
		return nil, err
	}

	return config.ProjectScope(), nil
}

func (s *GoogleSource) Load(ctx context.Context, table *Table) error {
	err := s.load(ctx, table)
	if err != nil && s.Optional {
		slog.Warn("optional google secret manager configuration was not loaded", slog.Any("error", err), slog.Int("keys", table.Len()))

		return nil
	}

	return err
}

func (s *GoogleSource) load(ctx context.Context, table *Table) error {
	lister, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open google secret manager: %w", err)
	}
	defer lister.Close()

	secretNames, err := lister.ListSecrets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list google secrets: %w", err)
	}

	for _, secretName := range secretNames {
		value, err := lister.AccessLatest(ctx, secretName)
		if err != nil {
			return fmt.Errorf("failed to load google secret %s: %w", secretName, err)
		}

		table.set(gcp.SecretID(secretName), value)
	}

	return nil
}
