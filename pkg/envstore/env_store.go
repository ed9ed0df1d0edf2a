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

package envstore

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/bank-vaults/secret-selector/pkg/configsource"
	"github.com/bank-vaults/secret-selector/pkg/provider"
)

// SecretPrefix marks an environment value as a reference to a secret id.
const SecretPrefix = "secret:"

type EnvStore struct {
	data map[string]string
}

func NewEnvStore() *EnvStore {
	environ := make(map[string]string, len(os.Environ()))
	for _, env := range os.Environ() {
		name, value, _ := strings.Cut(env, "=")
		environ[name] = value
	}

	return &EnvStore{
		data: environ,
	}
}

// GetSecretReferences maps environment variable keys to the secret ids
// they reference.
func (s *EnvStore) GetSecretReferences() map[string]string {
	references := make(map[string]string)

	for envKey, value := range s.data {
		if secretID, ok := strings.CutPrefix(value, SecretPrefix); ok {
			references[envKey] = secretID
		}
	}

	return references
}

// LoadSecrets resolves every reference with p. All failures are returned
// together so a misconfigured deployment is reported in one go.
func (s *EnvStore) LoadSecrets(ctx context.Context, p provider.Provider, references map[string]string) ([]provider.Secret, error) {
	var secrets []provider.Secret
	var errs error

	for _, envKey := range slices.Sorted(maps.Keys(references)) {
		secretID := references[envKey]

		value, err := p.GetSecret(ctx, secretID)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("failed to load secret %s for %s: %w", secretID, envKey, err))
			continue
		}

		secrets = append(secrets, provider.Secret{
			Key:   envKey,
			Value: value,
		})
	}

	if errs != nil {
		return nil, errs
	}

	return secrets, nil
}

// Environ returns the stored environment with each list of KEY=VALUE
// assignments applied in order, later ones winning.
func (s *EnvStore) Environ(assignments ...[]string) []string {
	environ := maps.Clone(s.data)
	for _, list := range assignments {
		for _, env := range list {
			name, value, _ := strings.Cut(env, "=")
			environ[name] = value
		}
	}

	result := make([]string, 0, len(environ))
	for _, name := range slices.Sorted(maps.Keys(environ)) {
		result = append(result, name+"="+environ[name])
	}

	return result
}

func ConvertSecrets(secrets []provider.Secret) []string {
	secretsEnv := make([]string, 0, len(secrets))
	for _, secret := range secrets {
		secretsEnv = append(secretsEnv, fmt.Sprintf("%s=%s", secret.Key, secret.Value))
	}

	return secretsEnv
}

// ConvertTable turns configuration keys back into environment variable
// names, so DB:HOST is passed on as DB__HOST.
func ConvertTable(table *configsource.Table) []string {
	tableEnv := make([]string, 0, table.Len())
	for _, key := range table.Keys() {
		value, _ := table.Get(key)
		name := strings.ReplaceAll(key, configsource.NestedSeparator, "__")
		tableEnv = append(tableEnv, fmt.Sprintf("%s=%s", name, value))
	}

	return tableEnv
}
