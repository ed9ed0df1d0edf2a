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

package azure

import (
	"fmt"
	"net/url"
	"os"

	"github.com/bank-vaults/secret-selector/pkg/common"
)

type Config struct {
	KeyVaultURL string `json:"key_vault_url"`
}

func LoadConfig() (*Config, error) {
	keyVaultURL := os.Getenv(common.AzureKeyVaultEnv)
	if keyVaultURL == "" {
		return nil, fmt.Errorf("%w: %s environment variable not provided", common.ErrConfiguration, common.AzureKeyVaultEnv)
	}

	u, err := url.Parse(keyVaultURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %s is not a valid key vault URL: %s", common.ErrConfiguration, common.AzureKeyVaultEnv, keyVaultURL)
	}

	return &Config{KeyVaultURL: keyVaultURL}, nil
}
