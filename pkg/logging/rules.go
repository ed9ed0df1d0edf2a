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
	"log/slog"
	"slices"
	"strings"
)

// SourceKey is the attribute naming the component a record comes from.
const SourceKey = "source"

// Rules decide which records are written, based on their source.
type Rules struct {
	// MinLevel applies to every source without an override.
	MinLevel slog.Level

	// Overrides maps a source prefix to its minimum level. The longest
	// matching prefix wins.
	Overrides map[string]slog.Level

	// Excluded sources are never written.
	Excluded []string
}

func DefaultRules() Rules {
	return Rules{
		MinLevel: slog.LevelInfo,
		Overrides: map[string]slog.Level{
			"google.golang.org/grpc":            slog.LevelWarn,
			"cloud.google.com/go":               slog.LevelWarn,
			"github.com/Azure/azure-sdk-for-go": slog.LevelError,
		},
		Excluded: []string{
			"net/http",
		},
	}
}

// For returns a logger whose records are attributed to source.
func For(logger *slog.Logger, source string) *slog.Logger {
	return logger.With(slog.String(SourceKey, source))
}

func (r Rules) levelFor(source string) slog.Level {
	level, matched := r.MinLevel, ""
	for prefix, override := range r.Overrides {
		if hasSourcePrefix(source, prefix) && len(prefix) > len(matched) {
			level, matched = override, prefix
		}
	}

	return level
}

func (r Rules) allows(source string, level slog.Level) bool {
	if slices.Contains(r.Excluded, source) {
		return false
	}

	return level >= r.levelFor(source)
}

// hasSourcePrefix matches whole path segments, so "net/http" does not
// cover "net/httptest".
func hasSourcePrefix(source, prefix string) bool {
	if !strings.HasPrefix(source, prefix) {
		return false
	}

	return len(source) == len(prefix) || source[len(prefix)] == '/' || source[len(prefix)] == '.'
}

// ruleHandler drops the records Rules do not allow before they reach any sink.
type ruleHandler struct {
	next   slog.Handler
	rules  Rules
	source string
}

func newRuleHandler(next slog.Handler, rules Rules) *ruleHandler {
	return &ruleHandler{next: next, rules: rules}
}

func (h *ruleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.rules.allows(h.source, level) && h.next.Enabled(ctx, level)
}

func (h *ruleHandler) Handle(ctx context.Context, record slog.Record) error {
	source := h.source
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == SourceKey {
			source = attr.Value.String()
			return false
		}

		return true
	})

	if !h.rules.allows(source, record.Level) {
		return nil
	}

	return h.next.Handle(ctx, record)
}

func (h *ruleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	source := h.source
	for _, attr := range attrs {
		if attr.Key == SourceKey {
			source = attr.Value.String()
		}
	}

	return &ruleHandler{next: h.next.WithAttrs(attrs), rules: h.rules, source: source}
}

func (h *ruleHandler) WithGroup(name string) slog.Handler {
	return &ruleHandler{next: h.next.WithGroup(name), rules: h.rules, source: h.source}
}
