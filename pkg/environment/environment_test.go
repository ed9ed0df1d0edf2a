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

package environment

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		want      Classification
		wantLocal bool
	}{
		{name: "Lower case development", value: "development", want: Development, wantLocal: true},
		{name: "Title case development", value: "Development", want: Development, wantLocal: true},
		{name: "Test", value: "Test", want: Test, wantLocal: true},
		{name: "Google Cloud", value: "GoogleCloud", want: GoogleCloud},
		{name: "Azure", value: "azure", want: Azure},
		{name: "Upper case azure", value: "AZURE", want: Azure},
		{name: "Empty value", value: "", want: Production},
		{name: "Unknown value", value: "staging", want: Production},
		{name: "Padded value is not trimmed", value: " test", want: Production},
	}

	for _, tt := range tests {
		ttp := tt
		t.Run(ttp.name, func(t *testing.T) {
			got := Parse(ttp.value)

			assert.Equal(t, ttp.want, got, "Unexpected classification")
			assert.Equal(t, ttp.wantLocal, got.IsLocal(), "Unexpected local flag")
		})
	}
}

func TestClassify(t *testing.T) {
	t.Run("Unset ENV defaults to production", func(t *testing.T) {
		t.Setenv(Variable, "")
		os.Unsetenv(Variable)

		assert.Equal(t, Production, Classify(), "Unexpected classification")
	})

	t.Run("ENV is read from the process environment", func(t *testing.T) {
		t.Setenv(Variable, "Development")

		assert.Equal(t, Development, Classify(), "Unexpected classification")
	})
}
