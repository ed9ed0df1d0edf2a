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

	cloudlogging "cloud.google.com/go/logging"
)

const cloudLogName = "secret-selector"

type entryLogger interface {
	Log(entry cloudlogging.Entry)
}

// newCloudSink is replaced in tests.
var newCloudSink = func(ctx context.Context, projectID string) (entryLogger, func() error, error) {
	client, err := cloudlogging.NewClient(ctx, "projects/"+projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cloud logging client: %w", err)
	}

	// the process logger may route to this client, so report on stderr
	client.OnError = func(err error) {
		fmt.Fprintf(os.Stderr, "cloud logging: %v\n", err)
	}

	return client.Logger(cloudLogName), client.Close, nil
}

// cloudHandler writes records to Google Cloud Logging as structured entries.
type cloudHandler struct {
	logger    entryLogger
	projectID string
	attrs     []slog.Attr
	prefix    string
}

func newCloudHandler(logger entryLogger, projectID string) *cloudHandler {
	return &cloudHandler{logger: logger, projectID: projectID}
}

func (h *cloudHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *cloudHandler) Handle(ctx context.Context, record slog.Record) error {
	payload := map[string]any{"message": record.Message}
	labels := map[string]string{}

	add := func(key string, value slog.Value) {
		if key == SourceKey {
			labels[SourceKey] = value.String()
			return
		}

		if err, ok := value.Any().(error); ok {
			payload[key] = err.Error()
			return
		}

		payload[key] = value.Any()
	}

	for _, attr := range h.attrs {
		flattenAttr("", attr, add)
	}
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(h.prefix, attr, add)
		return true
	})

	entry := cloudlogging.Entry{
		Timestamp: record.Time,
		Severity:  severity(record.Level),
		Payload:   payload,
		Labels:    labels,
	}

	if traceID, spanID := spanFields(ctx); traceID != "" {
		entry.Trace = fmt.Sprintf("projects/%s/traces/%s", h.projectID, traceID)
		entry.SpanID = spanID
	}

	h.logger.Log(entry)

	return nil
}

func (h *cloudHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.prefix + attr.Key, Value: attr.Value})
	}

	return &clone
}

func (h *cloudHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."

	return &clone
}

func severity(level slog.Level) cloudlogging.Severity {
	switch {
	case level < slog.LevelInfo:
		return cloudlogging.Debug
	case level < slog.LevelWarn:
		return cloudlogging.Info
	case level < slog.LevelError:
		return cloudlogging.Warning
	default:
		return cloudlogging.Error
	}
}
