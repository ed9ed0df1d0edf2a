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

package configsource

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	// NestedSeparator separates the levels of a configuration key.
	NestedSeparator = ":"

	// secret and environment variable names cannot contain ":"
	flatSeparator = "__"
)

// Table is a flat key/value configuration snapshot. It is filled once at
// startup and never refreshed.
type Table struct {
	data map[string]string
}

func NewTable() *Table {
	return &Table{data: make(map[string]string)}
}

// NewTableFrom builds a table from data, rewriting "__" in keys.
func NewTableFrom(data map[string]string) *Table {
	t := NewTable()
	for key, value := range data {
		t.set(key, value)
	}

	return t
}

func (t *Table) set(key, value string) {
	t.data[strings.ReplaceAll(key, flatSeparator, NestedSeparator)] = value
}

func (t *Table) Get(key string) (string, bool) {
	value, ok := t.data[key]
	return value, ok
}

func (t *Table) Len() int {
	return len(t.data)
}

// Keys returns the keys in sorted order.
func (t *Table) Keys() []string {
	return slices.Sorted(maps.Keys(t.data))
}

// Data returns a copy of the table.
func (t *Table) Data() map[string]string {
	return maps.Clone(t.data)
}

// Viper exposes the table for hierarchical lookups, e.g. v.Sub("db").GetString("host").
// Viper keys are case-insensitive. A key cannot hold both a value and
// children: when the table has DB and DB:HOST, the view keeps DB:HOST and
// DB becomes a section. Get still returns both.
func (t *Table) Viper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(NestedSeparator))
	for _, key := range t.Keys() {
		v.Set(key, t.data[key])
	}

	return v
}
