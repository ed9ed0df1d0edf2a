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

import "errors"

// Errors returned by providers and bootstrap code. Match them with errors.Is.
var (
	// ErrConfiguration is returned at construction time when a required
	// locator (project id, key vault URL) is missing or invalid.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound is returned when the secret has no value in the backing store.
	ErrNotFound = errors.New("secret not found")

	// ErrAccess is returned when the backend rejects the caller's identity.
	ErrAccess = errors.New("secret access denied")
)
