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
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// DefaultTemplate renders timestamp, level, trace id, source, message,
// attributes and error.
const DefaultTemplate = `{{ .Time | date "2006-01-02 15:04:05.000 -07:00" }} [{{ .Level }}] {{ .TraceID | default "-" }} {{ .Source | default "-" }}: {{ .Message }}{{ with .Attrs }} {{ . }}{{ end }}{{ with .Error }}` + "\n{{ . }}{{ end }}\n"

// ConsoleRecord is the data available to console templates.
type ConsoleRecord struct {
	Time    time.Time
	Level   string
	TraceID string
	SpanID  string
	Source  string
	Message string
	Attrs   string
	Error   string
}

func parseTemplate(text string) (*template.Template, error) {
	if text == "" {
		text = DefaultTemplate
	}

	tmpl, err := template.New("console").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log template: %w", err)
	}

	return tmpl, nil
}

type templateHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	tmpl   *template.Template
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

func newTemplateHandler(w io.Writer, tmpl *template.Template, level slog.Leveler) *templateHandler {
	return &templateHandler{
		mu:    &sync.Mutex{},
		w:     w,
		tmpl:  tmpl,
		level: level,
	}
}

func (h *templateHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *templateHandler) Handle(ctx context.Context, record slog.Record) error {
	data := ConsoleRecord{
		Time:    record.Time,
		Level:   shortLevel(record.Level),
		Message: record.Message,
	}
	data.TraceID, data.SpanID = spanFields(ctx)

	var attrs []string
	add := func(key string, value slog.Value) {
		switch {
		case key == SourceKey:
			data.Source = value.String()
		case key == "error" || key == "err":
			data.Error = value.String()
		default:
			attrs = append(attrs, key+"="+quoteIfNeeded(value.String()))
		}
	}

	for _, attr := range h.attrs {
		flattenAttr("", attr, add)
	}
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(h.prefix, attr, add)
		return true
	})
	data.Attrs = strings.Join(attrs, " ")

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render log record: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *templateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.prefix + attr.Key, Value: attr.Value})
	}

	return &clone
}

func (h *templateHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."

	return &clone
}

func shortLevel(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DBG"
	case level < slog.LevelWarn:
		return "INF"
	case level < slog.LevelError:
		return "WRN"
	default:
		return "ERR"
	}
}

func quoteIfNeeded(value string) string {
	if value == "" || strings.ContainsAny(value, " \t\n\"=") {
		return strconv.Quote(value)
	}

	return value
}
