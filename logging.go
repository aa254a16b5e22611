package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log level: unsupported value %q", s)
}

// consoleHandler writes one "LEVEL message key=value ..." line per record.
type consoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	group  string
	badges map[slog.Level]string
	// before runs ahead of every write; the terminal uses it to end a
	// progress line.
	before func()
}

func newConsoleHandler(w io.Writer, level slog.Leveler, before func()) *consoleHandler {
	r := lipgloss.NewRenderer(w)
	badge := func(text, color string) string {
		return r.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(text)
	}
	return &consoleHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		badges: map[slog.Level]string{
			slog.LevelDebug: badge("DEBUG", "#00BFFF"),
			slog.LevelInfo:  badge("INFO", "#5865F2"),
			slog.LevelWarn:  badge("WARN", "#FFA500"),
			slog.LevelError: badge("ERROR", "#FF0000"),
		},
		before: before,
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	badge, ok := h.badges[r.Level]
	if !ok {
		badge = r.Level.String()
	}
	buf.WriteString(badge)
	// Pad to the widest level name so messages line up.
	buf.WriteString(strings.Repeat(" ", max(1, 6-len(r.Level.String()))))
	buf.WriteString(r.Message)

	write := func(a slog.Attr) {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			return
		}
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		val := a.Value.String()
		if strings.ContainsAny(val, " \t") {
			val = fmt.Sprintf("%q", val)
		}
		fmt.Fprintf(&buf, " %s=%s", key, val)
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.before != nil {
		h.before()
	}
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &c
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	if c.group != "" {
		c.group += "." + name
	} else {
		c.group = name
	}
	return &c
}

// newLogger builds the run logger. With a log file configured records are
// appended there as plain text; otherwise they go to the console handler on
// stderr. The returned close func is never nil.
func newLogger(cfg Logging, stderr io.Writer, before func()) (*slog.Logger, func() error, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	if cfg.File == "" {
		return slog.New(newConsoleHandler(stderr, levelVar, before)), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("ensure log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar})), f.Close, nil
}
