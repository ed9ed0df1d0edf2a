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

package gcp

import (
	"fmt"
	"os"

	"github.com/bank-vaults/secret-selector/pkg/common"
)

type Config struct {
	ProjectID string `json:"project_id"`
	// Region selects regional secrets. Empty means global secrets.
	Region string `json:"region"`
}

func LoadConfig() (*Config, error) {
	projectID := os.Getenv(common.GoogleProjectIDEnv)
	if projectID == "" {
		return nil, fmt.Errorf("%w: %s environment variable not provided", common.ErrConfiguration, common.GoogleProjectIDEnv)
	}

	return &Config{
		ProjectID: projectID,
		Region:    os.Getenv(common.CloudRunRegionEnv),
	}, nil
}

// ProjectScope drops the region, so the config covers the global endpoint
// and the project itself.
func (c *Config) ProjectScope() *Config {
	return &Config{ProjectID: c.ProjectID}
}

// parent is the resource every secret of the project lives under.
func (c *Config) parent() string {
	if c.Region != "" {
		return fmt.Sprintf("projects/%s/locations/%s", c.ProjectID, c.Region)
	}

	return fmt.Sprintf("projects/%s", c.ProjectID)
}

// Regional secrets are only served by the regional endpoint.
func (c *Config) endpoint() string {
	if c.Region == "" {
		return ""
	}

	return fmt.Sprintf("secretmanager.%s.rep.googleapis.com:443", c.Region)
}
