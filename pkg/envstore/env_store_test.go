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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bank-vaults/secret-selector/pkg/common"
	"github.com/bank-vaults/secret-selector/pkg/configsource"
	"github.com/bank-vaults/secret-selector/pkg/provider"
)

type mapProvider map[string]string

func (p mapProvider) GetSecret(_ context.Context, secretID string) (string, error) {
	value, ok := p[secretID]
	if !ok {
		return "", fmt.Errorf("%w: %s", common.ErrNotFound, secretID)
	}

	return value, nil
}

func TestNewEnvStore(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "Non-empty environment",
			env: map[string]string{
				"MYSQL_PASSWORD": "secret:mysql-password",
				"CONNECTION":     "host=db;user=app",
			},
		},
	}

	for _, tt := range tests {
		ttp := tt
		t.Run(ttp.name, func(t *testing.T) {
			for envKey, envVal := range ttp.env {
				t.Setenv(envKey, envVal)
			}

			envStore := NewEnvStore()

			assert.Equal(t, "secret:mysql-password", envStore.data["MYSQL_PASSWORD"], "MYSQL_PASSWORD not found in envStore")
			assert.Equal(t, "host=db;user=app", envStore.data["CONNECTION"], "Value containing '=' must be kept whole")
		})
	}
}

func TestEnvStore_GetSecretReferences(t *testing.T) {
	t.Setenv("MYSQL_PASSWORD", "secret:mysql-password")
	t.Setenv("API_KEY", "secret:api-key")
	t.Setenv("PLAIN", "not-a-reference")
	t.Setenv("FILE_REF", "file:/secrets/key")

	references := NewEnvStore().GetSecretReferences()

	assert.Equal(t, "mysql-password", references["MYSQL_PASSWORD"], "Unexpected secret id")
	assert.Equal(t, "api-key", references["API_KEY"], "Unexpected secret id")
	assert.NotContains(t, references, "PLAIN", "Plain value must not be a reference")
	assert.NotContains(t, references, "FILE_REF", "Other prefixes must not be references")
}

func TestEnvStore_LoadSecrets(t *testing.T) {
	p := mapProvider{
		"mysql-password": "3xtr3ms3cr3t",
		"api-key":        "s3cr3t",
	}

	tests := []struct {
		name        string
		references  map[string]string
		wantSecrets []provider.Secret
		wantErrs    []string
	}{
		{
			name: "All references resolved",
			references: map[string]string{
				"MYSQL_PASSWORD": "mysql-password",
				"API_KEY":        "api-key",
			},
			wantSecrets: []provider.Secret{
				{Key: "API_KEY", Value: "s3cr3t"},
				{Key: "MYSQL_PASSWORD", Value: "3xtr3ms3cr3t"},
			},
		},
		{
			name:       "No references",
			references: map[string]string{},
		},
		{
			name: "Every failure is reported",
			references: map[string]string{
				"MYSQL_PASSWORD": "mysql-password",
				"MISSING_A":      "missing-a",
				"MISSING_B":      "missing-b",
			},
			wantErrs: []string{
				"failed to load secret missing-a for MISSING_A: secret not found: missing-a",
				"failed to load secret missing-b for MISSING_B: secret not found: missing-b",
			},
		},
	}

	for _, tt := range tests {
		ttp := tt
		t.Run(ttp.name, func(t *testing.T) {
			secrets, err := NewEnvStore().LoadSecrets(context.Background(), p, ttp.references)
			if ttp.wantErrs != nil {
				require.Error(t, err, "Expected an error")
				assert.ErrorIs(t, err, common.ErrNotFound, "Unexpected error kind")
				for _, wantErr := range ttp.wantErrs {
					assert.Contains(t, err.Error(), wantErr, "Missing error")
				}
				assert.Nil(t, secrets, "No secrets expected on failure")
				return
			}

			require.NoError(t, err, "Unexpected error")
			assert.Equal(t, ttp.wantSecrets, secrets, "Unexpected secrets")
		})
	}
}

func TestEnvStore_Environ(t *testing.T) {
	envStore := &EnvStore{data: map[string]string{
		"MYSQL_PASSWORD": "secret:mysql-password",
		"PATH":           "/usr/bin",
	}}

	environ := envStore.Environ(
		[]string{"DB__HOST=db.internal", "PATH=/bin"},
		[]string{"MYSQL_PASSWORD=3xtr3ms3cr3t"},
	)

	assert.Equal(t, []string{
		"DB__HOST=db.internal",
		"MYSQL_PASSWORD=3xtr3ms3cr3t",
		"PATH=/bin",
	}, environ, "Unexpected environment")
}

func TestConvertSecrets(t *testing.T) {
	secretsEnv := ConvertSecrets([]provider.Secret{
		{Key: "MYSQL_PASSWORD", Value: "3xtr3ms3cr3t"},
		{Key: "TOKEN", Value: "a=b"},
	})

	assert.Equal(t, []string{"MYSQL_PASSWORD=3xtr3ms3cr3t", "TOKEN=a=b"}, secretsEnv, "Unexpected secrets")
}

func TestConvertTable(t *testing.T) {
	table := configsource.NewTableFrom(map[string]string{
		"DB__HOST":              "db.internal",
		"Logging:Level:Default": "Warning",
		"API_KEY":               "s3cr3t",
	})

	assert.Equal(t, []string{
		"API_KEY=s3cr3t",
		"DB__HOST=db.internal",
		"Logging__Level__Default=Warning",
	}, ConvertTable(table), "Unexpected environment")
}
