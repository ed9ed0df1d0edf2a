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

package selector

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bank-vaults/secret-selector/pkg/common"
)

const (
	resultOK           = "ok"
	resultNotFound     = "not_found"
	resultAccessDenied = "access_denied"
	resultError        = "error"
)

var secretRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "secret_selector",
		Name:      "secret_requests_total",
		Help:      "Number of secret lookups forwarded to the active provider.",
	},
	[]string{"provider", "result"},
)

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, common.ErrNotFound):
		return resultNotFound
	case errors.Is(err, common.ErrAccess):
		return resultAccessDenied
	default:
		return resultError
	}
}
