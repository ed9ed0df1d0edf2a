// Copyright © 2023 Bank-Vaults Maintainers
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

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/bank-vaults/secret-selector/pkg/common"
	"github.com/bank-vaults/secret-selector/pkg/configsource"
	"github.com/bank-vaults/secret-selector/pkg/dotenv"
	"github.com/bank-vaults/secret-selector/pkg/envstore"
	"github.com/bank-vaults/secret-selector/pkg/logging"
	"github.com/bank-vaults/secret-selector/pkg/selector"
)

func main() {
	// .env values must be in place before anything reads the environment
	if err := dotenv.Load(); err != nil {
		slog.Error(fmt.Errorf("failed to load .env file: %w", err).Error())

		os.Exit(1)
	}

	config := common.LoadConfig()
	ctx := context.Background()

	logger, closeLogging, err := logging.Setup(ctx, config)
	if err != nil {
		slog.Error(fmt.Errorf("failed to set up logging: %w", err).Error())

		os.Exit(1)
	}
	closeLogging = sync.OnceValue(closeLogging)

	exitCode := run(ctx, logger, config, closeLogging)

	if err := closeLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
	}

	os.Exit(exitCode)
}

func run(ctx context.Context, logger *slog.Logger, config *common.Config, closeLogging func() error) int {
	binaryPath, binaryArgs, err := ExtractEntrypoint(os.Args)
	if err != nil {
		logger.Error(fmt.Errorf("failed to extract entrypoint: %w", err).Error())

		return 1
	}

	table, err := configsource.Build(ctx, config)
	if err != nil {
		logger.Error(fmt.Errorf("failed to load configuration: %w", err).Error())

		return 1
	}
	logger.Info("configuration loaded", slog.Int("keys", table.Len()), slog.String("environment", config.Environment.String()))

	secretSelector, err := selector.New(ctx, config)
	if err != nil {
		logger.Error(fmt.Errorf("failed to create secret selector: %w", err).Error())

		return 1
	}
	defer secretSelector.Close()

	envStore := envstore.NewEnvStore()
	references := envStore.GetSecretReferences()

	secrets, err := envStore.LoadSecrets(ctx, secretSelector, references)
	if err != nil {
		logger.Error(fmt.Errorf("failed to load secrets from provider: %w", err).Error(), slog.String("provider", secretSelector.ProviderType()))

		return 1
	}
	logger.Info("secrets loaded", slog.Int("count", len(secrets)), slog.String("provider", secretSelector.ProviderType()))

	environ := envStore.Environ(envstore.ConvertTable(table), envstore.ConvertSecrets(secrets))

	if config.Delay > 0 {
		logger.Info(fmt.Sprintf("sleeping for %s...", config.Delay))
		time.Sleep(config.Delay)
	}

	entrypoint := append([]string{binaryPath}, binaryArgs...)
	logger.Info("spawning process", slog.String("entrypoint", fmt.Sprint(entrypoint)))

	if config.Daemon {
		return runDaemon(ctx, logger, config, entrypoint, environ)
	}

	// Exec never returns on success, so release resources first
	secretSelector.Close()
	if err := closeLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
	}

	err = syscall.Exec(binaryPath, entrypoint, environ)
	if err != nil {
		logger.Error(fmt.Errorf("failed to exec process: %w", err).Error(), slog.String("entrypoint", fmt.Sprint(entrypoint)))

		return 1
	}

	return 0
}

// ExtractEntrypoint resolves the command to run from the process arguments.
func ExtractEntrypoint(args []string) (string, []string, error) {
	if len(args) <= 1 {
		return "", nil, errors.New("no args provided")
	}

	binaryPath, err := exec.LookPath(args[1])
	if err != nil {
		return "", nil, fmt.Errorf("binary %s not found", args[1])
	}

	return binaryPath, args[2:], nil
}
