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

import (
	"os"
	"time"

	"github.com/spf13/cast"

	"github.com/bank-vaults/secret-selector/pkg/environment"
)

type Config struct {
	LogLevel       string                     `json:"log_level"`
	JSONLog        bool                       `json:"json_log"`
	LogServer      string                     `json:"log_server"`
	LogTemplate    string                     `json:"log_template"`
	Daemon         bool                       `json:"daemon"`
	Delay          time.Duration              `json:"delay"`
	MetricsAddr    string                     `json:"metrics_addr"`
	ConfigOptional bool                       `json:"config_optional"`
	Environment    environment.Classification `json:"environment"`
	// GoogleProjectID is shared by the google provider and the cloud log sink.
	GoogleProjectID string `json:"google_project_id"`
}

// LoadConfig reads the application configuration from the environment.
// Environment files must already be loaded when this is called.
func LoadConfig() *Config {
	configOptional := true
	if value, ok := os.LookupEnv(ConfigOptionalEnv); ok {
		configOptional = cast.ToBool(value)
	}

	return &Config{
		LogLevel:        os.Getenv(LogLevelEnv),
		JSONLog:         cast.ToBool(os.Getenv(JSONLogEnv)),
		LogServer:       os.Getenv(LogServerEnv),
		LogTemplate:     os.Getenv(LogTemplateEnv),
		Daemon:          cast.ToBool(os.Getenv(DaemonEnv)),
		Delay:           cast.ToDuration(os.Getenv(DelayEnv)),
		MetricsAddr:     os.Getenv(MetricsAddrEnv),
		ConfigOptional:  configOptional,
		Environment:     environment.Classify(),
		GoogleProjectID: os.Getenv(GoogleProjectIDEnv),
	}
}
