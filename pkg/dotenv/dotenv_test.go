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

package dotenv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "Failed to write env file")

	return path
}

func unsetAfterTest(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{name: "Assignment", line: "A=1", wantKey: "A", wantValue: "1", wantOK: true},
		{name: "Value with equals sign is skipped", line: "B=2=3", wantOK: false},
		{name: "No equals sign", line: "MALFORMED", wantOK: false},
		{name: "Empty line", line: "", wantOK: false},
		{name: "Empty value", line: "A=", wantOK: false},
		{name: "Empty key", line: "=1", wantOK: false},
		{name: "Doubled separator collapses", line: "A==1", wantKey: "A", wantValue: "1", wantOK: true},
		{name: "Windows line ending", line: "A=1\r", wantKey: "A", wantValue: "1", wantOK: true},
		{name: "Spaces are kept", line: "GREETING=hello world", wantKey: "GREETING", wantValue: "hello world", wantOK: true},
	}

	for _, tt := range tests {
		ttp := tt
		t.Run(ttp.name, func(t *testing.T) {
			key, value, ok := parseLine(ttp.line)

			assert.Equal(t, ttp.wantOK, ok, "Unexpected parse result")
			assert.Equal(t, ttp.wantKey, key, "Unexpected key")
			assert.Equal(t, ttp.wantValue, value, "Unexpected value")
		})
	}
}

func TestLoadFile(t *testing.T) {
	unsetAfterTest(t, "DOTENV_A", "DOTENV_B", "MALFORMED", "DOTENV_C")
	t.Setenv("DOTENV_C", "old")

	path := writeEnvFile(t, t.TempDir(), "DOTENV_A=1\nDOTENV_B=2=3\nMALFORMED\nDOTENV_C=4")

	err := LoadFile(path)
	require.NoError(t, err, "Unexpected error")

	assert.Equal(t, "1", os.Getenv("DOTENV_A"), "DOTENV_A must be set")
	assert.Equal(t, "4", os.Getenv("DOTENV_C"), "DOTENV_C must be overwritten")

	_, ok := os.LookupEnv("DOTENV_B")
	assert.False(t, ok, "DOTENV_B must be skipped")

	_, ok = os.LookupEnv("MALFORMED")
	assert.False(t, ok, "MALFORMED must be skipped")
}

func TestLoadFileLongLine(t *testing.T) {
	unsetAfterTest(t, "DOTENV_A", "DOTENV_CERT", "DOTENV_C")

	cert := strings.Repeat("x", 70*1024)
	path := writeEnvFile(t, t.TempDir(), "DOTENV_A=1\nDOTENV_CERT="+cert+"\r\nDOTENV_C=4\n")

	err := LoadFile(path)
	require.NoError(t, err, "Long lines must not fail loading")

	assert.Equal(t, "1", os.Getenv("DOTENV_A"), "DOTENV_A must be set")
	assert.Equal(t, cert, os.Getenv("DOTENV_CERT"), "DOTENV_CERT must be set in full")
	assert.Equal(t, "4", os.Getenv("DOTENV_C"), "Lines after a long line must be set")
}

func TestLoadFileMissing(t *testing.T) {
	err := LoadFile(filepath.Join(t.TempDir(), FileName))

	assert.ErrorIs(t, err, os.ErrNotExist, "Unexpected error")
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "app", "bin")
	require.NoError(t, os.MkdirAll(nested, 0o755), "Failed to create directories")

	t.Run("No file", func(t *testing.T) {
		// a .env above the temp dir may exist on the host
		if path, ok := Find(nested); ok {
			assert.NotContains(t, path, root, "Unexpected file found")
		}
	})

	t.Run("File in parent directory", func(t *testing.T) {
		want := writeEnvFile(t, filepath.Join(root, "app"), "A=1")

		got, ok := Find(nested)

		assert.True(t, ok, "Expected a file")
		assert.Equal(t, want, got, "Unexpected file")
	})

	t.Run("Closest file wins", func(t *testing.T) {
		want := writeEnvFile(t, nested, "A=2")

		got, ok := Find(nested)

		assert.True(t, ok, "Expected a file")
		assert.Equal(t, want, got, "Unexpected file")
	})

	t.Run("Directory named .env is ignored", func(t *testing.T) {
		dir := filepath.Join(root, "other")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, FileName), 0o755), "Failed to create directory")

		got, ok := Find(dir)
		if ok {
			assert.NotEqual(t, filepath.Join(dir, FileName), got, "Directory must not be returned")
		}
	})
}

func TestLoadFromWorkingDirectory(t *testing.T) {
	unsetAfterTest(t, "DOTENV_WD")

	dir := t.TempDir()
	writeEnvFile(t, dir, "DOTENV_WD=from-wd\n")
	t.Chdir(dir)

	err := Load()
	require.NoError(t, err, "Unexpected error")

	// The test binary lives outside dir, but the executable's tree may
	// hold its own .env, which is searched first.
	if path, _ := Find(filepath.Dir(mustExecutable(t))); path == "" {
		assert.Equal(t, "from-wd", os.Getenv("DOTENV_WD"), "Unexpected value")
	}
}

func mustExecutable(t *testing.T) string {
	t.Helper()

	executable, err := os.Executable()
	require.NoError(t, err, "Failed to resolve executable")

	return executable
}
