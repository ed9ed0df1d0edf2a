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

package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	azlog "github.com/Azure/azure-sdk-for-go/sdk/azcore/log"
	"google.golang.org/grpc/grpclog"
)

const (
	grpcSource  = "google.golang.org/grpc"
	azureSource = "github.com/Azure/azure-sdk-for-go"
)

// installBridges sends the SDKs' own logs through the default logger so
// Rules apply to them. It must run before any gRPC client is created; the
// default logger is looked up on every record, so it may be replaced later.
func installBridges() {
	grpclog.SetLoggerV2(grpcLogger{logger: defaultFor(grpcSource)})

	azureLogger := defaultFor(azureSource)
	azlog.SetListener(func(event azlog.Event, message string) {
		azureLogger().Info(message, slog.String("event", string(event)))
	})
}

func defaultFor(source string) func() *slog.Logger {
	return func() *slog.Logger {
		return For(slog.Default(), source)
	}
}

// grpcLogger implements grpclog.LoggerV2 on top of slog.
type grpcLogger struct {
	logger func() *slog.Logger
}

var _ grpclog.LoggerV2 = grpcLogger{}

func (l grpcLogger) log(level slog.Level, message string) {
	l.logger().Log(context.Background(), level, message)
}

func (l grpcLogger) Info(args ...any)                 { l.log(slog.LevelInfo, fmt.Sprint(args...)) }
func (l grpcLogger) Infoln(args ...any)               { l.log(slog.LevelInfo, fmt.Sprint(args...)) }
func (l grpcLogger) Infof(format string, args ...any) { l.log(slog.LevelInfo, fmt.Sprintf(format, args...)) }

func (l grpcLogger) Warning(args ...any)   { l.log(slog.LevelWarn, fmt.Sprint(args...)) }
func (l grpcLogger) Warningln(args ...any) { l.log(slog.LevelWarn, fmt.Sprint(args...)) }
func (l grpcLogger) Warningf(format string, args ...any) {
	l.log(slog.LevelWarn, fmt.Sprintf(format, args...))
}

func (l grpcLogger) Error(args ...any)   { l.log(slog.LevelError, fmt.Sprint(args...)) }
func (l grpcLogger) Errorln(args ...any) { l.log(slog.LevelError, fmt.Sprint(args...)) }
func (l grpcLogger) Errorf(format string, args ...any) {
	l.log(slog.LevelError, fmt.Sprintf(format, args...))
}

func (l grpcLogger) Fatal(args ...any) {
	l.log(slog.LevelError, fmt.Sprint(args...))
	os.Exit(1)
}

func (l grpcLogger) Fatalln(args ...any) {
	l.log(slog.LevelError, fmt.Sprint(args...))
	os.Exit(1)
}

func (l grpcLogger) Fatalf(format string, args ...any) {
	l.log(slog.LevelError, fmt.Sprintf(format, args...))
	os.Exit(1)
}

// V reports whether verbose logging at level is on. Verbose gRPC logs are
// debug records.
func (l grpcLogger) V(int) bool {
	return l.logger().Enabled(context.Background(), slog.LevelDebug)
}
