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

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bank-vaults/secret-selector/pkg/common"
	"github.com/bank-vaults/secret-selector/pkg/logging"
)

// runDaemon keeps the process alive as the parent of the entrypoint,
// forwarding signals and serving metrics until the child exits.
func runDaemon(ctx context.Context, logger *slog.Logger, config *common.Config, entrypoint []string, environ []string) int {
	logger.Info("in daemon mode...")

	if config.MetricsAddr != "" {
		server := newMetricsServer(config.MetricsAddr, logger)

		go func() {
			logger.Info("serving metrics", slog.String("addr", config.MetricsAddr))

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn(fmt.Errorf("failed to serve metrics: %w", err).Error())
			}
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			_ = server.Shutdown(shutdownCtx)
		}()
	}

	cmd := exec.Command(entrypoint[0], entrypoint[1:]...)
	cmd.Env = environ
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stdout

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs)

	err := cmd.Start()
	if err != nil {
		logger.Error(fmt.Errorf("failed to start process: %w", err).Error(), slog.String("entrypoint", fmt.Sprint(entrypoint)))

		return 1
	}

	go func() {
		for sig := range sigs {
			// We don't want to signal a non-running process.
			if cmd.ProcessState != nil && cmd.ProcessState.Exited() {
				break
			}

			err := cmd.Process.Signal(sig)
			if err != nil {
				logger.Warn(fmt.Errorf("failed to signal process: %w", err).Error(), slog.String("signal", sig.String()))
			} else {
				logger.Info("received signal", slog.String("signal", sig.String()))
			}
		}
	}()

	err = cmd.Wait()

	signal.Stop(sigs)
	close(sigs)

	if err != nil {
		exitCode := -1
		// try to get the original exit code if possible
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			exitCode = exitError.ExitCode()
		}

		logger.Error(fmt.Errorf("failed to exec process: %w", err).Error(), slog.String("entrypoint", fmt.Sprint(entrypoint)))

		return exitCode
	}

	return cmd.ProcessState.ExitCode()
}

func newMetricsServer(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logging.For(logger, "net/http").Handler(), slog.LevelError),
	}
}
