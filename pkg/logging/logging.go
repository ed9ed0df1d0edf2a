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

// Package logging configures the process-wide slog logger.
//
// Records are filtered by Rules, then routed: debug and info to stdout,
// warn and error to stderr. Outside Development and Test every record is
// also sent to Google Cloud Logging, which requires GOOGLE_CLOUD_PROJECT_ID.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"slices"

	slogmulti "github.com/samber/slog-multi"
	slogsyslog "github.com/samber/slog-syslog"

	"github.com/bank-vaults/secret-selector/pkg/common"
)

const appName = "secret-selector"

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Setup builds the logger described by cfg and installs it as the slog
// default. The returned function flushes and closes the cloud sink.
func Setup(ctx context.Context, cfg *common.Config) (*slog.Logger, func() error, error) {
	return SetupWithRules(ctx, cfg, DefaultRules())
}

// SetupWithRules is Setup with custom filtering rules. The minimum level
// of rules is replaced by the configured log level when one is set.
func SetupWithRules(ctx context.Context, cfg *common.Config, rules Rules) (*slog.Logger, func() error, error) {
	if cfg.LogLevel != "" {
		var level slog.Level

		// Silently keep the rules' level on invalid input
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
			rules.MinLevel = level
		}
	}

	levelFilter := func(levels ...slog.Level) func(ctx context.Context, r slog.Record) bool {
		return func(_ context.Context, r slog.Record) bool {
			return slices.Contains(levels, r.Level)
		}
	}

	router := slogmulti.Router()

	if cfg.JSONLog {
		// Send logs with level higher than warning to stderr
		router = router.Add(
			traceHandler{slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})},
			levelFilter(slog.LevelWarn, slog.LevelError),
		)

		// Send info and debug logs to stdout
		router = router.Add(
			traceHandler{slog.NewJSONHandler(stdout, &slog.HandlerOptions{Level: slog.LevelDebug})},
			levelFilter(slog.LevelDebug, slog.LevelInfo),
		)
	} else {
		tmpl, err := parseTemplate(cfg.LogTemplate)
		if err != nil {
			return nil, nil, err
		}

		// Send logs with level higher than warning to stderr
		router = router.Add(
			newTemplateHandler(stderr, tmpl, slog.LevelWarn),
			levelFilter(slog.LevelWarn, slog.LevelError),
		)

		// Send info and debug logs to stdout
		router = router.Add(
			newTemplateHandler(stdout, tmpl, slog.LevelDebug),
			levelFilter(slog.LevelDebug, slog.LevelInfo),
		)
	}

	if cfg.LogServer != "" {
		writer, err := net.Dial("udp", cfg.LogServer)

		// We silently ignore syslog connection errors for the lack of a better solution
		if err == nil {
			router = router.Add(slogsyslog.Option{Level: slog.LevelDebug, Writer: writer}.NewSyslogHandler())
		}
	}

	installBridges()

	closeSinks := func() error { return nil }

	if !cfg.Environment.IsLocal() {
		if cfg.GoogleProjectID == "" {
			return nil, nil, fmt.Errorf("%w: %s environment variable is required for cloud logging in %s", common.ErrConfiguration, common.GoogleProjectIDEnv, cfg.Environment)
		}

		sink, closeSink, err := newCloudSink(ctx, cfg.GoogleProjectID)
		if err != nil {
			return nil, nil, err
		}

		router = router.Add(newCloudHandler(sink, cfg.GoogleProjectID))
		closeSinks = closeSink
	}

	logger := slog.New(newRuleHandler(router.Handler(), rules))
	logger = logger.With(slog.String("app", appName))

	slog.SetDefault(logger)

	return logger, closeSinks, nil
}
