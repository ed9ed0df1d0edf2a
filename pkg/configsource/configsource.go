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

// Package configsource builds the configuration table at startup.
//
// On GoogleCloud every secret of the project is loaded eagerly; in
// Development the process environment is used. Keys written with "__"
// are exposed with ":" so DB__HOST is read as DB:HOST.
package configsource

import (
	"context"

	"github.com/bank-vaults/secret-selector/pkg/common"
	"github.com/bank-vaults/secret-selector/pkg/environment"
)

type Source interface {
	Load(ctx context.Context, table *Table) error
}

func Build(ctx context.Context, cfg *common.Config) (*Table, error) {
	table := NewTable()

	for _, source := range sourcesFor(cfg) {
		if err := source.Load(ctx, table); err != nil {
			return nil, err
		}
	}

	return table, nil
}

func sourcesFor(cfg *common.Config) []Source {
	switch cfg.Environment {
	case environment.GoogleCloud:
		return []Source{NewGoogleSource(cfg.ConfigOptional)}
	case environment.Development:
		return []Source{NewEnvSource(cfg.ConfigOptional)}
	default:
		return nil
	}
}
