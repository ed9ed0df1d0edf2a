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

// Package dotenv loads KEY=VALUE files into the process environment.
//
// The format has no quoting, escaping or comments. A line is used only when
// splitting it on every "=" leaves exactly two non-empty parts, so values
// containing "=" are skipped.
package dotenv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const FileName = ".env"

// Find walks upward from start to the filesystem root and returns the
// first .env file found.
func Find(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Discover searches from the directory of the running executable first,
// then from the working directory.
func Discover() (string, bool) {
	for _, start := range searchRoots() {
		if path, ok := Find(start); ok {
			return path, true
		}
	}

	return "", false
}

func searchRoots() []string {
	var roots []string

	if executable, err := os.Executable(); err == nil {
		roots = append(roots, filepath.Dir(executable))
	}

	if wd, err := os.Getwd(); err == nil {
		roots = append(roots, wd)
	}

	return roots
}

// Load applies the discovered .env file. A missing file is not an error.
func Load() error {
	path, ok := Discover()
	if !ok {
		return nil
	}

	return LoadFile(path)
}

// LoadFile sets every valid assignment of path, overwriting existing values.
func LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open env file: %w", err)
	}
	defer file.Close()

	// lines have no length limit, certificates and keys may be long
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read env file: %w", err)
		}

		if key, value, ok := parseLine(strings.TrimSuffix(line, "\n")); ok {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set environment variable %s: %w", key, err)
			}
		}

		if err != nil {
			return nil
		}
	}
}

func parseLine(line string) (string, string, bool) {
	parts := strings.FieldsFunc(strings.TrimSuffix(line, "\r"), func(r rune) bool {
		return r == '='
	})
	if len(parts) != 2 {
		return "", "", false
	}

	return parts[0], parts[1], true
}
