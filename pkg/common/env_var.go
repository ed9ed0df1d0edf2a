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

package common

import "github.com/bank-vaults/secret-selector/pkg/environment"

const (
	// main
	LogLevelEnv       = "SECRET_SELECTOR_LOG_LEVEL"
	JSONLogEnv        = "SECRET_SELECTOR_JSON_LOG"
	LogServerEnv      = "SECRET_SELECTOR_LOG_SERVER"
	LogTemplateEnv    = "SECRET_SELECTOR_LOG_TEMPLATE"
	DaemonEnv         = "SECRET_SELECTOR_DAEMON"
	DelayEnv          = "SECRET_SELECTOR_DELAY"
	MetricsAddrEnv    = "SECRET_SELECTOR_METRICS_ADDR"
	ConfigOptionalEnv = "SECRET_SELECTOR_CONFIG_OPTIONAL"
	EnvironmentEnv    = environment.Variable

	// google provider
	GoogleProjectIDEnv = "GOOGLE_CLOUD_PROJECT_ID"
	CloudRunRegionEnv  = "CLOUD_RUN_REGION"

	// azure provider
	AzureKeyVaultEnv = "AZURE_KEY_VAULT"
)
